package calc_eval

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

type mapReader map[string]any

func (r mapReader) ReadVariable(name string) (any, error) {
	if value, ok := r[name]; ok {
		return value, nil
	}
	return nil, errors.Wrapf(calc.ErrUndefinedVariable, "'%s'", name)
}

type attachmentRecorder struct {
	files map[string]any
}

func (r *attachmentRecorder) WriteFile(filename string, content any) error {
	if r.files == nil {
		r.files = make(map[string]any)
	}
	r.files[filename] = content
	return nil
}

func mustParse(t *testing.T, source string) calc.Procedure {
	t.Helper()
	procedure, err := calc.ParseProcedure(source)
	require.NoError(t, err)
	return procedure
}

func TestRunProcedureArithmetic(t *testing.T) {
	procedure := mustParse(t, "result = (temp_1 + temp_2) / 2")
	reader := mapReader{"temp_1": 20.0, "temp_2": 22.0}

	run, err := RunProcedure(procedure, reader, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 21.0, run.Value)
	assert.Empty(t, run.Comment)
}

func TestRunProcedureLocalsShadowTestValues(t *testing.T) {
	procedure := mustParse(t, `
temp_1 = 100
result = temp_1
`)
	reader := mapReader{"temp_1": 20.0}

	run, err := RunProcedure(procedure, reader, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, run.Value)
}

func TestRunProcedureComment(t *testing.T) {
	procedure := mustParse(t, `
result = dose * 2
comment = 'doubled the measured dose'
`)
	reader := mapReader{"dose": 1.5}

	run, err := RunProcedure(procedure, reader, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3.0, run.Value)
	assert.Equal(t, "doubled the measured dose", run.Comment)
}

func TestRunProcedureNoResult(t *testing.T) {
	procedure := mustParse(t, "something = 1")

	_, err := RunProcedure(procedure, mapReader{}, nil, nil)
	assert.ErrorIs(t, err, calc.ErrNoResultAssigned)
}

func TestRunProcedureBindings(t *testing.T) {
	procedure := mustParse(t, "result = json.load(FILE)['baz']['baz1']")
	bindings := map[string]any{
		"FILE": calc.FileHandle{
			Filename: "data.json",
			Data:     []byte(`{"baz": {"baz1": "qux"}}`),
		},
	}

	run, err := RunProcedure(procedure, mapReader{}, nil, bindings)
	require.NoError(t, err)
	assert.Equal(t, "qux", run.Value)
}

func TestRunProcedureStringFormat(t *testing.T) {
	procedure := mustParse(t, "result = 'hello %s' % name")
	reader := mapReader{"name": "world"}

	run, err := RunProcedure(procedure, reader, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", run.Value)
}

func TestRunProcedureBuiltins(t *testing.T) {
	reader := mapReader{"a": 3.0, "b": 4.0, "values": []any{1.0, 2.0, 3.0, 4.0}}

	tests := []struct {
		source   string
		expected float64
	}{
		{"result = sqrt(a ** 2 + b ** 2)", 5},
		{"result = max(a, b, 2)", 4},
		{"result = mean(values)", 2.5},
		{"result = median(values)", 2.5},
		{"result = round(a / 2)", 2},
		{"result = abs(-a)", 3},
		{"result = len(values)", 4},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			run, err := RunProcedure(mustParse(t, tt.source), reader, nil, nil)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, run.Value, 1e-9)
		})
	}
}

func TestRunProcedureWriteFile(t *testing.T) {
	procedure := mustParse(t, `
written = UTILS.write_file('summary.txt', 'all good')
result = 1
`)
	recorder := &attachmentRecorder{}

	run, err := RunProcedure(procedure, mapReader{}, recorder, nil)
	require.NoError(t, err)
	assert.Equal(t, 1.0, run.Value)
	assert.Equal(t, "all good", recorder.files["summary.txt"])
}

func TestRunProcedureDivisionByZero(t *testing.T) {
	procedure := mustParse(t, "result = a / b")
	reader := mapReader{"a": 1.0, "b": 0.0}

	_, err := RunProcedure(procedure, reader, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, calc.ErrDivisionByZero)
	assert.Contains(t, err.Error(), "line 1: ZeroDivisionError")
}

func TestRunProcedureUndefinedVariable(t *testing.T) {
	procedure := mustParse(t, "a = 1\nresult = missing + a")

	_, err := RunProcedure(procedure, mapReader{}, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, calc.ErrUndefinedVariable)
	assert.Contains(t, err.Error(), "line 2: NameError")
}

func TestRunProcedureBooleanComparison(t *testing.T) {
	procedure := mustParse(t, "result = measured <= limit")
	reader := mapReader{"measured": 2.0, "limit": 3.0}

	run, err := RunProcedure(procedure, reader, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, true, run.Value)
}
