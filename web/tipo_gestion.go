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

func moduloTipoGestion(w *Web) *entidad[models.TipoGestion] {
	return &entidad[models.TipoGestion]{
		w:           w,
		ruta:        api.TablaTipoGestion,
		titulo:      "Tipos de gestión",
		singular:    "tipo de gestión",
		pregunta:    "¿Desea eliminar este tipo de gestión?",
		recurso:     api.TiposGestion(w.API),
		encabezados: []string{"ID", "Nombre", "Fecha registro"},
		fila: func(v models.TipoGestion) vistas.Fila {
			return vistas.Fila{ID: v.IDTipoGestion, Celdas: []string{
				strconv.Itoa(v.IDTipoGestion), v.NombreTipoGestion, utils.FormatearFechaHora(v.FechaRegistro),
			}}
		},
		nombre: func(v models.TipoGestion) string { return v.NombreTipoGestion },
		campos: func(_ context.Context, v models.TipoGestion) ([]vistas.Campo, error) {
			return []vistas.Campo{{Nombre: "nombre_tipo_gestion", Etiqueta: "Nombre del tipo de gestión", Valor: v.NombreTipoGestion}}, nil
		},
		leer: func(f url.Values) (models.TipoGestion, error) {
			v := models.TipoGestion{NombreTipoGestion: strings.TrimSpace(f.Get("nombre_tipo_gestion"))}
			return v, nil
		},
		fechar: func(v *models.TipoGestion, fecha string) { v.FechaRegistro = fecha },
	}
}
