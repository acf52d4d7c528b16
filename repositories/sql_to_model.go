package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/cockroachdb/errors"
	"github.com/jackc/pgx/v5"

	"github.com/qatrackplus/qatrack-backend/models"
)

func NewQueryBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// ExecBuilder renders the query and executes it, for statements whose rows are
// not read back.
func ExecBuilder(ctx context.Context, exec Executor, builder squirrel.Sqlizer) error {
	query, args, err := builder.ToSql()
	if err != nil {
		return errors.Wrap(err, "can't build sql query")
	}
	_, err = exec.Exec(ctx, query, args...)
	return errors.Wrap(err, "error executing sql query")
}

// SqlToListOfModels executes the query and adapts every returned row through
// the db model type.
func SqlToListOfModels[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) ([]Model, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "error executing sql query")
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Model, error) {
		dbModel, err := pgx.RowToStructByName[DBModel](row)
		if err != nil {
			var zero Model
			return zero, errors.Wrap(err, fmt.Sprintf("error scanning row to struct %T", dbModel))
		}
		return adapter(dbModel)
	})
}

// SqlToOptionalModel is SqlToListOfModels for queries expected to return zero
// or one row; zero rows yields nil.
func SqlToOptionalModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (*Model, error) {
	results, err := SqlToListOfModels(ctx, exec, builder, adapter)
	if err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		return nil, nil
	case 1:
		return &results[0], nil
	}
	return nil, errors.Newf("expected 0 or 1 row, got %d", len(results))
}

// SqlToModel is SqlToOptionalModel with zero rows mapped to a NotFoundError.
func SqlToModel[DBModel, Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(dbModel DBModel) (Model, error),
) (Model, error) {
	model, err := SqlToOptionalModel(ctx, exec, builder, adapter)
	var zero Model
	if err != nil {
		return zero, err
	}
	if model == nil {
		return zero, errors.Wrap(models.NotFoundError, fmt.Sprintf("found no object of type %T", zero))
	}
	return *model, nil
}

// SqlToRow executes the query and adapts a single row with a custom scanner,
// for projections that do not map onto a db model struct.
func SqlToRow[Model any](
	ctx context.Context,
	exec Executor,
	builder squirrel.Sqlizer,
	adapter func(row pgx.CollectableRow) (Model, error),
) (Model, error) {
	var zero Model

	query, args, err := builder.ToSql()
	if err != nil {
		return zero, errors.Wrap(err, "can't build sql query")
	}

	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return zero, errors.Wrap(err, "error executing sql query")
	}
	defer rows.Close()

	if !rows.Next() {
		return zero, errors.Wrap(models.NotFoundError, "query returned no rows")
	}
	return adapter(rows)
}
