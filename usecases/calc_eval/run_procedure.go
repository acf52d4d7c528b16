package calc_eval

import (
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models/calc"
	"github.com/qatrackplus/qatrack-backend/usecases/calc_eval/evaluate"
)

const (
	resultVariable  = "result"
	commentVariable = "comment"
)

// ProcedureRun is the outcome of executing one calculation procedure: the
// value assigned to `result` and, when the procedure set one, a comment.
type ProcedureRun struct {
	Value   any
	Comment string
}

// RunProcedure executes a parsed procedure statement by statement. Names
// resolve against procedure locals first, then the extra bindings (FILE),
// then the caller-supplied reader over test values. Errors are tagged with
// the offending source line and error kind; sentinel errors stay unwrappable.
func RunProcedure(
	procedure calc.Procedure,
	variables evaluate.VariableReader,
	utils evaluate.AttachmentWriter,
	bindings map[string]any,
) (ProcedureRun, error) {
	locals := make(map[string]any)
	reader := chainedReader{
		locals:   locals,
		bindings: bindings,
		fallback: variables,
	}
	environment := NewCalcEvaluationEnvironment(reader, utils)

	for _, statement := range procedure.Statements {
		value, err := EvaluateNode(environment, statement.Expr)
		if err != nil {
			return ProcedureRun{}, errors.Wrapf(err, "line %d: %s", statement.Line, calc.ErrorKind(err))
		}
		locals[statement.Target] = value
	}

	result, ok := locals[resultVariable]
	if !ok {
		return ProcedureRun{}, calc.ErrNoResultAssigned
	}

	run := ProcedureRun{Value: result}
	if comment, ok := locals[commentVariable].(string); ok {
		run.Comment = comment
	}
	return run, nil
}

type chainedReader struct {
	locals   map[string]any
	bindings map[string]any
	fallback evaluate.VariableReader
}

func (r chainedReader) ReadVariable(name string) (any, error) {
	if value, ok := r.locals[name]; ok {
		return value, nil
	}
	if value, ok := r.bindings[name]; ok {
		return value, nil
	}
	if r.fallback != nil {
		return r.fallback.ReadVariable(name)
	}
	return nil, errors.Wrapf(calc.ErrUndefinedVariable, "'%s'", name)
}
