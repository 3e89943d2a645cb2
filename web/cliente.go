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

func moduloCliente(w *Web) *entidad[models.Cliente] {
	return &entidad[models.Cliente]{
		w:           w,
		ruta:        api.TablaCliente,
		titulo:      "Clientes",
		singular:    "cliente",
		pregunta:    "¿Desea eliminar este cliente?",
		recurso:     api.Clientes(w.API),
		encabezados: []string{"ID", "Nombres", "Apellidos", "Email", "Celular", "Fecha registro"},
		fila: func(v models.Cliente) vistas.Fila {
			return vistas.Fila{ID: v.IDCliente, Celdas: []string{
				strconv.Itoa(v.IDCliente), v.Nombres, v.Apellidos, v.Email, v.Celular,
				utils.FormatearFechaHora(v.FechaRegistro),
			}}
		},
		nombre: func(v models.Cliente) string { return v.Apellidos + " " + v.Nombres },
		campos: func(_ context.Context, v models.Cliente) ([]vistas.Campo, error) {
			return []vistas.Campo{
				{Nombre: "nombres", Etiqueta: "Nombres", Valor: v.Nombres},
				{Nombre: "apellidos", Etiqueta: "Apellidos", Valor: v.Apellidos},
				{Nombre: "email", Etiqueta: "Email", Valor: v.Email},
				{Nombre: "celular", Etiqueta: "Celular", Valor: v.Celular},
			}, nil
		},
		leer: func(f url.Values) (models.Cliente, error) {
			v := models.Cliente{
				Nombres:   strings.TrimSpace(f.Get("nombres")),
				Apellidos: strings.TrimSpace(f.Get("apellidos")),
				Email:     strings.TrimSpace(f.Get("email")),
				Celular:   strings.TrimSpace(f.Get("celular")),
			}
			return v, nil
		},
		fechar: func(v *models.Cliente, fecha string) { v.FechaRegistro = fecha },
	}
}
