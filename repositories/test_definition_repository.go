package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"

	"github.com/qatrackplus/qatrack-backend/models"
	"github.com/qatrackplus/qatrack-backend/repositories/dbmodels"
)

func (repo *QaDbRepository) GetTestDefinitionById(ctx context.Context, exec Executor,
	testId string,
) (models.TestDefinition, error) {
	return SqlToModel(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestDefinitionColumn...).
			From(dbmodels.TABLE_TEST_DEFINITIONS).
			Where(squirrel.Eq{"id": testId}),
		dbmodels.AdaptTestDefinition,
	)
}

func (repo *QaDbRepository) ListTestDefinitions(ctx context.Context, exec Executor) ([]models.TestDefinition, error) {
	return SqlToListOfModels(
		ctx,
		exec,
		NewQueryBuilder().
			Select(dbmodels.SelectTestDefinitionColumn...).
			From(dbmodels.TABLE_TEST_DEFINITIONS).
			OrderBy("slug"),
		dbmodels.AdaptTestDefinition,
	)
}

func (repo *QaDbRepository) CreateTestDefinition(ctx context.Context, exec Executor,
	input models.CreateTestDefinitionInput, newTestId string,
) error {
	return ExecBuilder(
		ctx,
		exec,
		NewQueryBuilder().
			Insert(dbmodels.TABLE_TEST_DEFINITIONS).
			Columns(
				"id",
				"name",
				"slug",
				"description",
				"type",
				"procedure",
				"constant_value",
				"choices",
				"format_string",
			).
			Values(
				newTestId,
				input.Name,
				input.Slug,
				input.Description,
				string(input.Type),
				input.Procedure,
				input.ConstantValue,
				input.Choices,
				input.FormatString,
			),
	)
}

func (repo *QaDbRepository) UpdateTestDefinition(ctx context.Context, exec Executor,
	input models.UpdateTestDefinitionInput,
) error {
	query := NewQueryBuilder().
		Update(dbmodels.TABLE_TEST_DEFINITIONS).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": input.Id})

	if input.Name != nil {
		query = query.Set("name", *input.Name)
	}
	if input.Description != nil {
		query = query.Set("description", *input.Description)
	}
	if input.Procedure != nil {
		query = query.Set("procedure", *input.Procedure)
	}
	if input.ConstantValue != nil {
		query = query.Set("constant_value", *input.ConstantValue)
	}
	if input.Choices != nil {
		query = query.Set("choices", input.Choices)
	}
	if input.FormatString != nil {
		query = query.Set("format_string", *input.FormatString)
	}

	return ExecBuilder(ctx, exec, query)
}
