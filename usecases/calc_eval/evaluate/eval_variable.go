package evaluate

import "github.com/qatrackplus/qatrack-backend/models/calc"

// VariableReader resolves a name to a value. The composite performer plugs in
// an implementation that consults procedure locals, already-resolved test
// values and, for composite references, triggers resolution of the referenced
// test on the fly.
type VariableReader interface {
	ReadVariable(name string) (any, error)
}

type Variable struct {
	Reader VariableReader
}

func NewVariable(reader VariableReader) Variable {
	return Variable{Reader: reader}
}

func (f Variable) Evaluate(arguments calc.Arguments) (any, []error) {
	name, err := AdaptNamedArgument(arguments.NamedArgs, calc.VariableArgumentName, ToString)
	if err != nil {
		return MakeEvaluateError(err)
	}

	value, err := f.Reader.ReadVariable(name)
	if err != nil {
		return MakeEvaluateError(err)
	}
	return MakeEvaluateResult(value)
}
