package web

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"crm/api"
	"crm/models"
	"crm/utils"
	"crm/vistas"
)

func moduloGestion(w *Web) *entidad[models.Gestion] {
	e := &entidad[models.Gestion]{
		w:        w,
		ruta:     api.TablaGestion,
		titulo:   "Gestiones",
		singular: "gestión",
		pregunta: "¿Desea eliminar esta gestión?",
		recurso:  api.Gestiones(w.API),
		encabezados: []string{
			"ID", "Cliente", "Usuario", "Tipo de gestión", "Resultado", "Comentarios", "Fecha registro",
		},
		nombre: func(v models.Gestion) string {
			return fmt.Sprintf("N° %d %s", v.IDGestion, v.Comentarios)
		},
		leer:   leerGestion,
		fechar: func(v *models.Gestion, fecha string) { v.FechaRegistro = fecha },
	}
	e.listar = func(ctx context.Context) ([]vistas.Fila, error) {
		detalle, err := api.ListarGestionesDetalle(ctx, w.API)
		if err != nil {
			return nil, err
		}
		filas := make([]vistas.Fila, 0, len(detalle))
		for _, d := range detalle {
			filas = append(filas, filaGestion(d))
		}
		return filas, nil
	}
	e.campos = func(ctx context.Context, v models.Gestion) ([]vistas.Campo, error) {
		return camposGestion(ctx, w.API, v)
	}
	return e
}

func filaGestion(d models.GestionDetalle) vistas.Fila {
	return vistas.Fila{ID: d.IDGestion, Celdas: []string{
		strconv.Itoa(d.IDGestion),
		d.NombreCliente,
		d.NombreUsuario,
		d.NombreTipoGestion,
		d.NombreResultado,
		d.Comentarios,
		utils.FormatearFechaHora(d.FechaRegistro),
	}}
}

func leerGestion(f url.Values) (models.Gestion, error) {
	v := models.Gestion{Comentarios: strings.TrimSpace(f.Get("comentarios"))}
	var err error
	if v.IDUsuario, err = enteroFormulario(f, "id_usuario"); err != nil {
		return v, err
	}
	if v.IDCliente, err = enteroFormulario(f, "id_cliente"); err != nil {
		return v, err
	}
	if v.IDTipoGestion, err = enteroFormulario(f, "id_tipo_gestion"); err != nil {
		return v, err
	}
	if v.IDResultado, err = enteroFormulario(f, "id_resultado"); err != nil {
		return v, err
	}
	return v, nil
}

// camposGestion carga las cuatro listas desplegables en paralelo, cada una
// con el tamaño fijo de api.DefaultSize.
func camposGestion(ctx context.Context, c *api.Client, v models.Gestion) ([]vistas.Campo, error) {
	var (
		usuarios   []models.Usuario
		clientes   []models.Cliente
		tipos      []models.TipoGestion
		resultados []models.Resultado
	)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		usuarios, err = api.Usuarios(c).Listar(ctx)
		return err
	})
	g.Go(func() (err error) {
		clientes, err = api.Clientes(c).Listar(ctx)
		return err
	})
	g.Go(func() (err error) {
		tipos, err = api.TiposGestion(c).Listar(ctx)
		return err
	})
	g.Go(func() (err error) {
		resultados, err = api.Resultados(c).Listar(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	opUsuarios := make([]vistas.Opcion, 0, len(usuarios))
	for _, u := range usuarios {
		opUsuarios = append(opUsuarios, vistas.Opcion{Valor: u.IDUsuario, Texto: u.Apellidos + " " + u.Nombres, Seleccionada: u.IDUsuario == v.IDUsuario})
	}
	opClientes := make([]vistas.Opcion, 0, len(clientes))
	for _, cl := range clientes {
		opClientes = append(opClientes, vistas.Opcion{Valor: cl.IDCliente, Texto: cl.Apellidos + " " + cl.Nombres, Seleccionada: cl.IDCliente == v.IDCliente})
	}
	opTipos := make([]vistas.Opcion, 0, len(tipos))
	for _, t := range tipos {
		opTipos = append(opTipos, vistas.Opcion{Valor: t.IDTipoGestion, Texto: t.NombreTipoGestion, Seleccionada: t.IDTipoGestion == v.IDTipoGestion})
	}
	opResultados := make([]vistas.Opcion, 0, len(resultados))
	for _, r := range resultados {
		opResultados = append(opResultados, vistas.Opcion{Valor: r.IDResultado, Texto: r.NombreResultado, Seleccionada: r.IDResultado == v.IDResultado})
	}

	return []vistas.Campo{
		{Nombre: "id_usuario", Etiqueta: "Usuario", Opciones: opUsuarios},
		{Nombre: "id_cliente", Etiqueta: "Cliente", Opciones: opClientes},
		{Nombre: "id_tipo_gestion", Etiqueta: "Tipo de gestión", Opciones: opTipos},
		{Nombre: "id_resultado", Etiqueta: "Resultado", Opciones: opResultados},
		{Nombre: "comentarios", Etiqueta: "Comentarios", Valor: v.Comentarios, Multilinea: true},
	}, nil
}
