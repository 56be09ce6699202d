package mcp

import (
	"context"
	"fmt"

	"github.com/2beens/gymbot/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const gymSchema = "gym"

// gymTables in the order they are described to the model.
var gymTables = []string{"muscle_groups", "exercises", "repetitions", "weights", "workout_stats", "supersets"}

type SchemaRepo interface {
	GetGymColumns(ctx context.Context) ([]SchemaColumn, error)
}

// SchemaColumn is one information_schema.columns row of a gym table.
type SchemaColumn struct {
	TableSchema string  `db:"table_schema"`
	TableName   string  `db:"table_name"`
	ColumnName  string  `db:"column_name"`
	DataType    string  `db:"data_type"`
	IsNullable  string  `db:"is_nullable"`
	ColumnDef   *string `db:"column_default"`
}

type poolSchemaRepo struct {
	db *pgxpool.Pool
}

func NewPoolSchemaRepo(db *pgxpool.Pool) SchemaRepo {
	return &poolSchemaRepo{db: db}
}

func (r *poolSchemaRepo) GetGymColumns(ctx context.Context) (_ []SchemaColumn, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.mcp.gym_columns")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT table_schema::text AS table_schema,
				table_name::text AS table_name,
				column_name::text AS column_name,
				data_type::text AS data_type,
				is_nullable::text AS is_nullable,
				column_default::text AS column_default
			FROM information_schema.columns
			WHERE table_schema = $1 AND table_name = ANY($2)
			ORDER BY table_name, ordinal_position;`,
		gymSchema, gymTables,
	)
	if err != nil {
		return nil, fmt.Errorf("gym columns [query]: %w", err)
	}

	cols, err := pgx.CollectRows(rows, pgx.RowToStructByName[SchemaColumn])
	if err != nil {
		return nil, fmt.Errorf("gym columns [collect]: %w", err)
	}

	span.SetAttributes(attribute.Int("columns", len(cols)))
	return cols, nil
}
