package web

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"crm/api"
	"crm/models"
	"crm/utils"
	"crm/vistas"
)

func moduloUsuario(w *Web) *entidad[models.Usuario] {
	return &entidad[models.Usuario]{
		w:           w,
		ruta:        api.TablaUsuario,
		titulo:      "Usuarios",
		singular:    "usuario",
		pregunta:    "¿Desea eliminar este usuario?",
		recurso:     api.Usuarios(w.API),
		encabezados: []string{"ID", "Nombres", "Apellidos", "Email", "Fecha registro"},
		fila: func(v models.Usuario) vistas.Fila {
			return vistas.Fila{ID: v.IDUsuario, Celdas: []string{
				strconv.Itoa(v.IDUsuario), v.Nombres, v.Apellidos, v.Email,
				utils.FormatearFechaHora(v.FechaRegistro),
			}}
		},
		nombre: func(v models.Usuario) string { return v.Apellidos + " " + v.Nombres },
		campos: func(_ context.Context, v models.Usuario) ([]vistas.Campo, error) {
			return []vistas.Campo{
				{Nombre: "nombres", Etiqueta: "Nombres", Valor: v.Nombres},
				{Nombre: "apellidos", Etiqueta: "Apellidos", Valor: v.Apellidos},
				{Nombre: "email", Etiqueta: "Email", Valor: v.Email},
			}, nil
		},
		leer: func(f url.Values) (models.Usuario, error) {
			v := models.Usuario{
				Nombres:   strings.TrimSpace(f.Get("nombres")),
				Apellidos: strings.TrimSpace(f.Get("apellidos")),
				Email:     strings.TrimSpace(f.Get("email")),
			}
			return v, nil
		},
		fechar: func(v *models.Usuario, fecha string) { v.FechaRegistro = fecha },
	}
}
