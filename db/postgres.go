package db

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

//go:embed esquemas/postgres.sql
var esquemaPostgres string

// Postgres es el almacén sobre un pool de pgx.
type Postgres struct {
	Pool   *pgxpool.Pool
	logger *zap.Logger
	d      dialecto
}

// ConectarPostgres crea el pool contra dsn y comprueba la conexión.
func ConectarPostgres(ctx context.Context, dsn string, logger *zap.Logger) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creando pool de postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("comprobando conexión a postgres: %w", err)
	}
	logger.Info("Pool postgres conectado", zap.String("base", pool.Config().ConnConfig.Database))
	return &Postgres{Pool: pool, logger: logger, d: marcadorPostgres}, nil
}

func (p *Postgres) Close() { p.Pool.Close() }

// Migrar crea las tablas si no existen.
func (p *Postgres) Migrar(ctx context.Context) error {
	if _, err := p.Pool.Exec(ctx, esquemaPostgres); err != nil {
		return fmt.Errorf("aplicando esquema postgres: %w", err)
	}
	return nil
}

func (p *Postgres) Listar(ctx context.Context, t Tabla, limite, desplazamiento int) ([]Fila, error) {
	rows, err := p.Pool.Query(ctx, p.d.listar(t), limite, desplazamiento)
	if err != nil {
		return nil, fmt.Errorf("listando %s: %w", t.Nombre, err)
	}
	return leerFilasPgx(rows)
}

func (p *Postgres) Obtener(ctx context.Context, t Tabla, id int64) ([]Fila, error) {
	rows, err := p.Pool.Query(ctx, p.d.obtener(t), id)
	if err != nil {
		return nil, fmt.Errorf("obteniendo %s %d: %w", t.Nombre, id, err)
	}
	return leerFilasPgx(rows)
}

func (p *Postgres) Insertar(ctx context.Context, t Tabla, valores map[string]any) (int64, error) {
	cols, args, err := t.Filtrar(valores)
	if err != nil {
		return 0, err
	}
	var id int64
	if err := p.Pool.QueryRow(ctx, p.d.insertar(t, cols), args...).Scan(&id); err != nil {
		return 0, errorPostgres(err)
	}
	return id, nil
}

func (p *Postgres) Actualizar(ctx context.Context, t Tabla, id int64, valores map[string]any) (int64, error) {
	cols, args, err := t.Filtrar(valores)
	if err != nil {
		return 0, err
	}
	tag, err := p.Pool.Exec(ctx, p.d.actualizar(t, cols), append(args, id)...)
	if err != nil {
		return 0, errorPostgres(err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Eliminar(ctx context.Context, t Tabla, id int64) (int64, error) {
	tag, err := p.Pool.Exec(ctx, p.d.eliminar(t), id)
	if err != nil {
		return 0, errorPostgres(err)
	}
	return tag.RowsAffected(), nil
}

func (p *Postgres) Dinamica(ctx context.Context, consulta string, params []any) ([]Fila, error) {
	rows, err := p.Pool.Query(ctx, consulta, params...)
	if err != nil {
		return nil, errorPostgres(err)
	}
	filas, err := leerFilasPgx(rows)
	if err != nil {
		return nil, errorPostgres(err)
	}
	return filas, nil
}

func leerFilasPgx(rows pgx.Rows) ([]Fila, error) {
	defer rows.Close()
	campos := rows.FieldDescriptions()
	cols := make([]string, len(campos))
	for i, c := range campos {
		cols[i] = c.Name
	}
	filas := []Fila{}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, err
		}
		filas = append(filas, Fila{Columnas: cols, Valores: vals})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return filas, nil
}

// errorPostgres traduce un *pgconn.PgError a ErrorSQL con el nombre de la
// condición (por ejemplo foreign_key_violation).
func errorPostgres(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &ErrorSQL{Codigo: pq.ErrorCode(pgErr.Code).Name(), Err: err}
	}
	return &ErrorSQL{Err: err}
}
