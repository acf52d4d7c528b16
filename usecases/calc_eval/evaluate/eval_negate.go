package evaluate

import "github.com/qatrackplus/qatrack-backend/models/calc"

type Negate struct{}

func (f Negate) Evaluate(arguments calc.Arguments) (any, []error) {
	if err := verifyNumberOfArguments(arguments.Args, 1); err != nil {
		return MakeEvaluateError(err)
	}
	value, err := ToFloat64(arguments.Args[0])
	if err != nil {
		return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
	}
	return MakeEvaluateResult(-value)
}
