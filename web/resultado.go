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

func moduloResultado(w *Web) *entidad[models.Resultado] {
	return &entidad[models.Resultado]{
		w:           w,
		ruta:        api.TablaResultado,
		titulo:      "Resultados",
		singular:    "resultado",
		pregunta:    "¿Desea eliminar este resultado?",
		recurso:     api.Resultados(w.API),
		encabezados: []string{"ID", "Nombre", "Fecha registro"},
		fila: func(v models.Resultado) vistas.Fila {
			return vistas.Fila{ID: v.IDResultado, Celdas: []string{
				strconv.Itoa(v.IDResultado), v.NombreResultado, utils.FormatearFechaHora(v.FechaRegistro),
			}}
		},
		nombre: func(v models.Resultado) string { return v.NombreResultado },
		campos: func(_ context.Context, v models.Resultado) ([]vistas.Campo, error) {
			return []vistas.Campo{{Nombre: "nombre_resultado", Etiqueta: "Nombre del resultado", Valor: v.NombreResultado}}, nil
		},
		leer: func(f url.Values) (models.Resultado, error) {
			v := models.Resultado{NombreResultado: strings.TrimSpace(f.Get("nombre_resultado"))}
			return v, nil
		},
		fechar: func(v *models.Resultado, fecha string) { v.FechaRegistro = fecha },
	}
}
