// models/gestion.go
package models

// Gestion representa una interacción registrada con un cliente.
// Referencia usuario, cliente, tipo_gestion y resultado por clave foránea.
type Gestion struct {
	IDGestion     int    `json:"id_gestion,omitempty"`
	IDUsuario     int    `json:"id_usuario"`
	IDCliente     int    `json:"id_cliente"`
	IDTipoGestion int    `json:"id_tipo_gestion"`
	IDResultado   int    `json:"id_resultado"`
	Comentarios   string `json:"comentarios"`
	FechaRegistro string `json:"fecha_registro,omitempty"`
}

// GestionDetalle es una fila del listado de gestiones ya unida con los
// nombres de cliente, usuario, tipo de gestión y resultado.
type GestionDetalle struct {
	IDGestion         int    `json:"id_gestion"`
	IDCliente         int    `json:"id_cliente"`
	Comentarios       string `json:"comentarios"`
	NombreCliente     string `json:"nombre_cliente"`
	NombreUsuario     string `json:"nombre_usuario"`
	NombreTipoGestion string `json:"nombre_tipo_gestion"`
	NombreResultado   string `json:"nombre_resultado"`
	FechaRegistro     string `json:"fecha_registro"`
}
