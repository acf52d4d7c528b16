package calc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProcedureSimpleAssignment(t *testing.T) {
	procedure, err := ParseProcedure("result = temp_1 + temp_2")
	require.NoError(t, err)
	require.Len(t, procedure.Statements, 1)

	statement := procedure.Statements[0]
	assert.Equal(t, "result", statement.Target)
	assert.Equal(t, 1, statement.Line)
	assert.Equal(t, FUNC_ADD, statement.Expr.Function)
	assert.Equal(t, FUNC_VARIABLE, statement.Expr.Children[0].Function)
	assert.Equal(t, FUNC_VARIABLE, statement.Expr.Children[1].Function)
}

func TestParseProcedureMultipleStatements(t *testing.T) {
	procedure, err := ParseProcedure(`
# intermediate values
scale = 2.5
offset = -1

result = scale * raw + offset
`)
	require.NoError(t, err)
	require.Len(t, procedure.Statements, 3)
	assert.Equal(t, "scale", procedure.Statements[0].Target)
	assert.Equal(t, "offset", procedure.Statements[1].Target)
	assert.Equal(t, "result", procedure.Statements[2].Target)
	assert.Equal(t, 6, procedure.Statements[2].Line)
}

func TestParseProcedurePrecedence(t *testing.T) {
	procedure, err := ParseProcedure("result = a + b * c")
	require.NoError(t, err)

	expr := procedure.Statements[0].Expr
	assert.Equal(t, FUNC_ADD, expr.Function)
	assert.Equal(t, FUNC_MULTIPLY, expr.Children[1].Function)
}

func TestParseProcedurePowerIsRightAssociative(t *testing.T) {
	procedure, err := ParseProcedure("result = a ** b ** c")
	require.NoError(t, err)

	expr := procedure.Statements[0].Expr
	assert.Equal(t, FUNC_POWER, expr.Function)
	assert.Equal(t, FUNC_VARIABLE, expr.Children[0].Function)
	assert.Equal(t, FUNC_POWER, expr.Children[1].Function)
}

func TestParseProcedureCallAndIndex(t *testing.T) {
	procedure, err := ParseProcedure("result = json.load(FILE)['readings'][0]")
	require.NoError(t, err)

	expr := procedure.Statements[0].Expr
	require.Equal(t, FUNC_INDEX, expr.Function)
	require.Equal(t, FUNC_INDEX, expr.Children[0].Function)

	call := expr.Children[0].Children[0]
	require.Equal(t, FUNC_CALL, call.Function)
	assert.Equal(t, "json.load", call.NamedChildren[CallArgumentName].Constant)
	require.Len(t, call.Children, 1)
	assert.Equal(t, FUNC_VARIABLE, call.Children[0].Function)
}

func TestParseProcedureStringFormat(t *testing.T) {
	procedure, err := ParseProcedure("result = 'value is %s' % some_test")
	require.NoError(t, err)

	expr := procedure.Statements[0].Expr
	assert.Equal(t, FUNC_MODULO, expr.Function)
	assert.Equal(t, "value is %s", expr.Children[0].Constant)
}

func TestParseProcedureLiterals(t *testing.T) {
	procedure, err := ParseProcedure(`
ok = True
nope = False
nothing = None
result = pi
`)
	require.NoError(t, err)
	require.Len(t, procedure.Statements, 4)
	assert.Equal(t, true, procedure.Statements[0].Expr.Constant)
	assert.Equal(t, false, procedure.Statements[1].Expr.Constant)
	assert.Nil(t, procedure.Statements[2].Expr.Constant)
}

func TestParseProcedureErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", "   \n\n"},
		{"missing assignment", "result"},
		{"missing expression", "result ="},
		{"dangling operator", "result = a +"},
		{"unterminated paren", "result = (a + b"},
		{"unterminated index", "result = a[0"},
		{"call on literal", "result = 3(a)"},
		{"unterminated string", "result = 'oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProcedure(tt.source)
			assert.Error(t, err)
		})
	}
}

func TestParseProcedureReportsLineNumbers(t *testing.T) {
	_, err := ParseProcedure("a = 1\nresult = a +")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
