package db

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"modernc.org/sqlite" // registra el driver "sqlite"
)

//go:embed esquemas/sqlite.sql
var esquemaSQLite string

// SQLite es el almacén embebido para desarrollo y pruebas.
type SQLite struct {
	db     *sql.DB
	logger *zap.Logger
	d      dialecto
}

// AbrirSQLite abre (o crea) la base en ruta. ":memory:" abre una base en memoria.
func AbrirSQLite(ruta string, logger *zap.Logger) (*SQLite, error) {
	if ruta == "" {
		ruta = "crm.db"
	}
	dsn := "file::memory:?_pragma=foreign_keys(1)"
	if ruta != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(ruta), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("creando directorio de %s: %w", ruta, err)
		}
		dsn = "file:" + ruta + "?_pragma=foreign_keys(1)"
	}
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("abriendo sqlite: %w", err)
	}
	// Una sola conexión: la base en memoria vive en ella y SQLite serializa las escrituras.
	conn.SetMaxOpenConns(1)
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("comprobando sqlite: %w", err)
	}
	logger.Info("Base sqlite abierta", zap.String("ruta", ruta))
	return &SQLite{db: conn, logger: logger, d: marcadorSQLite}, nil
}

func (s *SQLite) Close() { _ = s.db.Close() }

func (s *SQLite) Migrar(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, esquemaSQLite); err != nil {
		return fmt.Errorf("aplicando esquema sqlite: %w", err)
	}
	return nil
}

func (s *SQLite) Listar(ctx context.Context, t Tabla, limite, desplazamiento int) ([]Fila, error) {
	rows, err := s.db.QueryContext(ctx, s.d.listar(t), limite, desplazamiento)
	if err != nil {
		return nil, fmt.Errorf("listando %s: %w", t.Nombre, err)
	}
	return leerFilasSQL(rows)
}

func (s *SQLite) Obtener(ctx context.Context, t Tabla, id int64) ([]Fila, error) {
	rows, err := s.db.QueryContext(ctx, s.d.obtener(t), id)
	if err != nil {
		return nil, fmt.Errorf("obteniendo %s %d: %w", t.Nombre, id, err)
	}
	return leerFilasSQL(rows)
}

func (s *SQLite) Insertar(ctx context.Context, t Tabla, valores map[string]any) (int64, error) {
	cols, args, err := t.Filtrar(valores)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := s.db.QueryRowContext(ctx, s.d.insertar(t, cols), args...).Scan(&id); err != nil {
		return 0, errorSQLite(err)
	}
	return id, nil
}

func (s *SQLite) Actualizar(ctx context.Context, t Tabla, id int64, valores map[string]any) (int64, error) {
	cols, args, err := t.Filtrar(valores)
	if err != nil {
		return 0, err
	}
	res, err := s.db.ExecContext(ctx, s.d.actualizar(t, cols), append(args, id)...)
	if err != nil {
		return 0, errorSQLite(err)
	}
	return res.RowsAffected()
}

func (s *SQLite) Eliminar(ctx context.Context, t Tabla, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.d.eliminar(t), id)
	if err != nil {
		return 0, errorSQLite(err)
	}
	return res.RowsAffected()
}

func (s *SQLite) Dinamica(ctx context.Context, consulta string, params []any) ([]Fila, error) {
	rows, err := s.db.QueryContext(ctx, consulta, params...)
	if err != nil {
		return nil, errorSQLite(err)
	}
	filas, err := leerFilasSQL(rows)
	if err != nil {
		return nil, errorSQLite(err)
	}
	return filas, nil
}

func leerFilasSQL(rows *sql.Rows) ([]Fila, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	filas := []Fila{}
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		filas = append(filas, Fila{Columnas: cols, Valores: vals})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filas, nil
}

// errorSQLite conserva el código extendido de SQLite (787 es una violación de clave foránea).
func errorSQLite(err error) error {
	var sqErr *sqlite.Error
	if errors.As(err, &sqErr) {
		return &ErrorSQL{Codigo: fmt.Sprintf("sqlite_%d", sqErr.Code()), Err: err}
	}
	return &ErrorSQL{Err: err}
}
