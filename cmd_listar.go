package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"crm/api"
	"crm/db"
	"crm/utils"
)

var tamano int

var listarCmd = &cobra.Command{
	Use:       "listar <entidad>",
	Short:     "Lista los registros de una entidad en la terminal",
	Args:      cobra.ExactArgs(1),
	ValidArgs: entidades(),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, ok := db.BuscarTabla(args[0])
		if !ok {
			return fmt.Errorf("entidad desconocida %q (use una de: %s)", args[0], strings.Join(entidades(), ", "))
		}
		c, err := nuevoCliente()
		if err != nil {
			return err
		}
		var filas []map[string]json.RawMessage
		if err := c.Listar(cmd.Context(), t.Nombre, tamano, &filas); err != nil {
			return err
		}
		return imprimirTabla(cmd.OutOrStdout(), t.Seleccion(), celdasRegistros(t.Seleccion(), filas))
	},
}

var gestionesCmd = &cobra.Command{
	Use:   "gestiones",
	Short: "Lista las gestiones con nombres de cliente, usuario, tipo y resultado",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := nuevoCliente()
		if err != nil {
			return err
		}
		detalle, err := api.ListarGestionesDetalle(cmd.Context(), c)
		if err != nil {
			return err
		}
		filas := make([][]string, 0, len(detalle))
		for _, d := range detalle {
			filas = append(filas, []string{
				strconv.Itoa(d.IDGestion), d.NombreCliente, d.NombreUsuario, d.NombreTipoGestion,
				d.NombreResultado, d.Comentarios, utils.FormatearFechaHora(d.FechaRegistro),
			})
		}
		encabezados := []string{"ID", "Cliente", "Usuario", "Tipo", "Resultado", "Comentarios", "Fecha"}
		return imprimirTabla(cmd.OutOrStdout(), encabezados, filas)
	},
}

func init() {
	listarCmd.Flags().IntVar(&tamano, "size", api.DefaultSize, "Valor de _size enviado al API")
}

func entidades() []string {
	nombres := make([]string, 0, len(db.Tablas))
	for n := range db.Tablas {
		nombres = append(nombres, n)
	}
	sort.Strings(nombres)
	return nombres
}

// celdasRegistros ordena los valores de cada registro según columnas.
func celdasRegistros(columnas []string, registros []map[string]json.RawMessage) [][]string {
	filas := make([][]string, 0, len(registros))
	for _, reg := range registros {
		fila := make([]string, len(columnas))
		for i, col := range columnas {
			fila[i] = celda(reg[col])
			if col == "fecha_registro" {
				fila[i] = utils.FormatearFechaHora(fila[i])
			}
		}
		filas = append(filas, fila)
	}
	return filas
}

func celda(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

var (
	estiloEncabezado = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	estiloCelda      = lipgloss.NewStyle().Padding(0, 1)
	estiloBorde      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func imprimirTabla(w io.Writer, encabezados []string, filas [][]string) error {
	if len(filas) == 0 {
		_, err := fmt.Fprintln(w, "Sin registros")
		return err
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(estiloBorde).
		StyleFunc(func(fila, col int) lipgloss.Style {
			if fila == table.HeaderRow {
				return estiloEncabezado
			}
			return estiloCelda
		}).
		Headers(encabezados...).
		Rows(filas...)
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
