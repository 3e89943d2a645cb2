// Package api es el cliente HTTP del proxy REST/SQL: /api/{tabla} y /dynamic.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultSize es el tamaño de página fijo con el que se piden los listados.
const DefaultSize = 200

var (
	// ErrRechazado indica que el servidor respondió 400 (restricción violada, dato inválido).
	ErrRechazado = errors.New("solicitud rechazada por el servidor")
	// ErrNoEncontrado indica que GET /api/{tabla}/{id} devolvió un arreglo vacío.
	ErrNoEncontrado = errors.New("registro no encontrado")
)

// ErrorAPI describe una respuesta no exitosa del servidor.
type ErrorAPI struct {
	Metodo  string
	Ruta    string
	Estado  int
	Mensaje string
}

func (e *ErrorAPI) Error() string {
	if e.Mensaje == "" {
		return fmt.Sprintf("%s %s: estado %d", e.Metodo, e.Ruta, e.Estado)
	}
	return fmt.Sprintf("%s %s: estado %d: %s", e.Metodo, e.Ruta, e.Estado, e.Mensaje)
}

// Is hace que errors.Is(err, ErrRechazado) sea verdadero para respuestas 400.
func (e *ErrorAPI) Is(target error) bool {
	return target == ErrRechazado && e.Estado == http.StatusBadRequest
}

// Client habla con el proxy REST/SQL.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient crea un cliente contra baseURL (por ejemplo "http://localhost:8080").
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:   strings.TrimRight(baseURL, "/"),
		http:   &http.Client{Timeout: 15 * time.Second},
		logger: zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL devuelve la URL base sin barra final.
func (c *Client) BaseURL() string { return c.base }

// Respuesta es el cuerpo que devuelve el servidor tras un INSERT, UPDATE o DELETE.
type Respuesta struct {
	AffectedRows int64 `json:"affectedRows"`
	InsertID     int64 `json:"insertId,omitempty"`
}

// Listar hace GET /api/{tabla}?_size={size} y decodifica el arreglo en destino.
func (c *Client) Listar(ctx context.Context, tabla string, size int, destino any) error {
	if size <= 0 {
		size = DefaultSize
	}
	q := url.Values{}
	q.Set("_size", strconv.Itoa(size))
	return c.hacer(ctx, http.MethodGet, "/api/"+url.PathEscape(tabla)+"?"+q.Encode(), nil, destino)
}

// Obtener hace GET /api/{tabla}/{id}. El servidor responde con un arreglo.
func (c *Client) Obtener(ctx context.Context, tabla string, id int, destino any) error {
	return c.hacer(ctx, http.MethodGet, rutaRegistro(tabla, id), nil, destino)
}

// Crear hace POST /api/{tabla} con cuerpo JSON.
func (c *Client) Crear(ctx context.Context, tabla string, cuerpo any) (Respuesta, error) {
	var r Respuesta
	err := c.hacer(ctx, http.MethodPost, "/api/"+url.PathEscape(tabla), cuerpo, &r)
	return r, err
}

// Actualizar hace PATCH /api/{tabla}/{id} con cuerpo JSON.
func (c *Client) Actualizar(ctx context.Context, tabla string, id int, cuerpo any) (Respuesta, error) {
	var r Respuesta
	err := c.hacer(ctx, http.MethodPatch, rutaRegistro(tabla, id), cuerpo, &r)
	return r, err
}

// Eliminar hace DELETE /api/{tabla}/{id}.
func (c *Client) Eliminar(ctx context.Context, tabla string, id int) (Respuesta, error) {
	var r Respuesta
	err := c.hacer(ctx, http.MethodDelete, rutaRegistro(tabla, id), nil, &r)
	return r, err
}

// Dinamica envía una consulta SQL al endpoint /dynamic y decodifica las filas en destino.
func (c *Client) Dinamica(ctx context.Context, consulta string, destino any) error {
	cuerpo := map[string]string{"query": consulta}
	return c.hacer(ctx, http.MethodPost, "/dynamic", cuerpo, destino)
}

func rutaRegistro(tabla string, id int) string {
	return "/api/" + url.PathEscape(tabla) + "/" + strconv.Itoa(id)
}

func (c *Client) hacer(ctx context.Context, metodo, ruta string, cuerpo, destino any) error {
	var body io.Reader
	if cuerpo != nil {
		raw, err := json.Marshal(cuerpo)
		if err != nil {
			return fmt.Errorf("codificando cuerpo de %s %s: %w", metodo, ruta, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, metodo, c.base+ruta, body)
	if err != nil {
		return fmt.Errorf("creando solicitud %s %s: %w", metodo, ruta, err)
	}
	if cuerpo != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	inicio := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("Error llamando al API", zap.String("metodo", metodo), zap.String("ruta", ruta), zap.Error(err))
		return fmt.Errorf("%s %s: %w", metodo, ruta, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Respuesta del API",
		zap.String("metodo", metodo),
		zap.String("ruta", ruta),
		zap.Int("estado", resp.StatusCode),
		zap.Duration("duracion", time.Since(inicio)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ErrorAPI{
			Metodo:  metodo,
			Ruta:    ruta,
			Estado:  resp.StatusCode,
			Mensaje: leerMensaje(resp.Body),
		}
	}

	if destino == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(destino); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decodificando respuesta de %s %s: %w", metodo, ruta, err)
	}
	return nil
}

// leerMensaje extrae "error" de un cuerpo JSON o, si no lo es, el texto plano.
func leerMensaje(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var cuerpo struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(raw, &cuerpo) == nil && cuerpo.Error != "" {
		return cuerpo.Error
	}
	return strings.TrimSpace(string(raw))
}
