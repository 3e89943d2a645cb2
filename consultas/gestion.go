package consultas

// ListarGestiones devuelve la consulta del listado de gestiones con los
// nombres de cliente, usuario, tipo de gestión y resultado.
func ListarGestiones() string {
	return Select(
		Como("ges.id_gestion", "id_gestion"),
		Como("cli.id_cliente", "id_cliente"),
		Como("ges.comentarios", "comentarios"),
		Como(NombreCompleto("cli"), "nombre_cliente"),
		Como(NombreCompleto("usu"), "nombre_usuario"),
		Como("tge.nombre_tipo_gestion", "nombre_tipo_gestion"),
		Como("res.nombre_resultado", "nombre_resultado"),
		Como("ges.fecha_registro", "fecha_registro"),
	).
		From("gestion", "ges").
		From("usuario", "usu").
		From("cliente", "cli").
		From("tipo_gestion", "tge").
		From("resultado", "res").
		Where(Igual("ges.id_usuario", "usu.id_usuario")).
		Where(Igual("ges.id_cliente", "cli.id_cliente")).
		Where(Igual("ges.id_tipo_gestion", "tge.id_tipo_gestion")).
		Where(Igual("ges.id_resultado", "res.id_resultado")).
		OrderBy("ges.id_gestion").
		String()
}
