package api

import (
	"context"
	"fmt"

	"crm/consultas"
	"crm/models"
)

// Nombres de tabla expuestos por el proxy.
const (
	TablaResultado   = "resultado"
	TablaTipoGestion = "tipo_gestion"
	TablaGestion     = "gestion"
	TablaCliente     = "cliente"
	TablaUsuario     = "usuario"
)

// Recurso liga una tabla del proxy con su tipo de modelo.
type Recurso[T any] struct {
	c     *Client
	tabla string
}

// NuevoRecurso crea un recurso tipado sobre tabla.
func NuevoRecurso[T any](c *Client, tabla string) *Recurso[T] {
	return &Recurso[T]{c: c, tabla: tabla}
}

func Resultados(c *Client) *Recurso[models.Resultado] { return NuevoRecurso[models.Resultado](c, TablaResultado) }
func TiposGestion(c *Client) *Recurso[models.TipoGestion] { return NuevoRecurso[models.TipoGestion](c, TablaTipoGestion) }
func Gestiones(c *Client) *Recurso[models.Gestion] { return NuevoRecurso[models.Gestion](c, TablaGestion) }
func Clientes(c *Client) *Recurso[models.Cliente] { return NuevoRecurso[models.Cliente](c, TablaCliente) }
func Usuarios(c *Client) *Recurso[models.Usuario] { return NuevoRecurso[models.Usuario](c, TablaUsuario) }

func (r *Recurso[T]) Tabla() string { return r.tabla }

// Listar trae hasta DefaultSize registros.
func (r *Recurso[T]) Listar(ctx context.Context) ([]T, error) {
	var lista []T
	if err := r.c.Listar(ctx, r.tabla, DefaultSize, &lista); err != nil {
		return nil, err
	}
	return lista, nil
}

// Obtener trae un registro por id. Devuelve ErrNoEncontrado si el arreglo viene vacío.
func (r *Recurso[T]) Obtener(ctx context.Context, id int) (T, error) {
	var cero T
	var lista []T
	if err := r.c.Obtener(ctx, r.tabla, id, &lista); err != nil {
		return cero, err
	}
	if len(lista) == 0 {
		return cero, fmt.Errorf("%s %d: %w", r.tabla, id, ErrNoEncontrado)
	}
	return lista[0], nil
}

func (r *Recurso[T]) Crear(ctx context.Context, v T) (Respuesta, error) {
	return r.c.Crear(ctx, r.tabla, v)
}

// Actualizar envía cambios como PATCH. cambios puede ser el modelo o un mapa parcial.
func (r *Recurso[T]) Actualizar(ctx context.Context, id int, cambios any) (Respuesta, error) {
	return r.c.Actualizar(ctx, r.tabla, id, cambios)
}

func (r *Recurso[T]) Eliminar(ctx context.Context, id int) (Respuesta, error) {
	return r.c.Eliminar(ctx, r.tabla, id)
}

// ListarGestionesDetalle ejecuta la consulta de unión de gestiones en /dynamic.
func ListarGestionesDetalle(ctx context.Context, c *Client) ([]models.GestionDetalle, error) {
	var filas []models.GestionDetalle
	if err := c.Dinamica(ctx, consultas.ListarGestiones(), &filas); err != nil {
		return nil, err
	}
	return filas, nil
}
