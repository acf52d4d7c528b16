package evaluate

import (
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

type Equal struct {
	Function calc.Function
}

func NewEqual(f calc.Function) Equal {
	return Equal{Function: f}
}

func (f Equal) Evaluate(arguments calc.Arguments) (any, []error) {
	leftAny, rightAny, err := leftAndRight(arguments.Args)
	if err != nil {
		return MakeEvaluateError(err)
	}

	equal, err := valuesEqual(leftAny, rightAny)
	if err != nil {
		return MakeEvaluateError(err)
	}

	if f.Function == calc.FUNC_NOT_EQUAL {
		return MakeEvaluateResult(!equal)
	}
	return MakeEvaluateResult(equal)
}

func valuesEqual(left, right any) (bool, error) {
	if l, r, errs := adaptLeftAndRight(left, right, ToFloat64); len(errs) == 0 {
		return l == r, nil
	}
	if l, r, errs := adaptLeftAndRight(left, right, ToString); len(errs) == 0 {
		return l == r, nil
	}
	return false, errors.New("arguments must both be numbers, booleans or strings")
}
