package evaluate

import (
	"fmt"
	"time"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

type Comparison struct {
	Function calc.Function
}

func NewComparison(f calc.Function) Comparison {
	return Comparison{Function: f}
}

func (f Comparison) Evaluate(arguments calc.Arguments) (any, []error) {
	leftAny, rightAny, err := leftAndRight(arguments.Args)
	if err != nil {
		return MakeEvaluateError(err)
	}

	if left, right, errs := adaptLeftAndRight(leftAny, rightAny, ToFloat64); len(errs) == 0 {
		return MakeEvaluateResult(f.comparisonFloatFunction(left, right))
	}

	if left, right, errs := adaptLeftAndRight(leftAny, rightAny, toTime); len(errs) == 0 {
		return MakeEvaluateResult(f.comparisonTimeFunction(left, right))
	}

	return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
}

func (f Comparison) comparisonFloatFunction(l, r float64) (bool, error) {
	switch f.Function {
	case calc.FUNC_GREATER:
		return l > r, nil
	case calc.FUNC_GREATER_OR_EQUAL:
		return l >= r, nil
	case calc.FUNC_LESS:
		return l < r, nil
	case calc.FUNC_LESS_OR_EQUAL:
		return l <= r, nil
	default:
		return false, fmt.Errorf("Comparison does not support %s function", f.Function.DebugString())
	}
}

func (f Comparison) comparisonTimeFunction(l, r time.Time) (bool, error) {
	switch f.Function {
	case calc.FUNC_GREATER:
		return l.After(r), nil
	case calc.FUNC_GREATER_OR_EQUAL:
		return l.After(r) || l.Equal(r), nil
	case calc.FUNC_LESS:
		return l.Before(r), nil
	case calc.FUNC_LESS_OR_EQUAL:
		return l.Before(r) || l.Equal(r), nil
	default:
		return false, fmt.Errorf("Comparison does not support %s function", f.Function.DebugString())
	}
}

func toTime(v any) (time.Time, error) {
	t, ok := v.(time.Time)
	if !ok {
		return time.Time{}, fmt.Errorf("value %v is not a time", v)
	}
	return t, nil
}
