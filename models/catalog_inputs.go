package models

// CreateTestDefinitionInput carries the admin-facing fields of a new test.
type CreateTestDefinitionInput struct {
	Name          string
	Slug          string
	Description   string
	Type          TestType
	Procedure     string
	ConstantValue *float64
	Choices       []string
	FormatString  string
}

type UpdateTestDefinitionInput struct {
	Id            string
	Name          *string
	Description   *string
	Procedure     *string
	ConstantValue *float64
	Choices       []string
	FormatString  *string
}

// CreateTestListItemInput references an existing test or sublist by id.
type CreateTestListItemInput struct {
	Order     int
	TestId    *string
	SublistId *string
}

type CreateTestListInput struct {
	Name        string
	Slug        string
	Description string
	Items       []CreateTestListItemInput
}
