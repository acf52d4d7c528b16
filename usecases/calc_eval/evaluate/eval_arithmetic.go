package evaluate

import (
	"fmt"
	"math"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

type Arithmetic struct {
	Function calc.Function
}

func NewArithmetic(f calc.Function) Arithmetic {
	return Arithmetic{Function: f}
}

func (f Arithmetic) Evaluate(arguments calc.Arguments) (any, []error) {
	leftAny, rightAny, err := leftAndRight(arguments.Args)
	if err != nil {
		return MakeEvaluateError(err)
	}

	if f.Function == calc.FUNC_ADD {
		// string + string concatenates
		if left, right, errs := adaptLeftAndRight(leftAny, rightAny, ToString); len(errs) == 0 {
			return MakeEvaluateResult(left + right)
		}
	}

	left, right, errs := adaptLeftAndRight(leftAny, rightAny, ToFloat64)
	if len(errs) > 0 {
		return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
	}
	return MakeEvaluateResult(f.arithmeticEval(left, right))
}

func (f Arithmetic) arithmeticEval(l, r float64) (float64, error) {
	switch f.Function {
	case calc.FUNC_ADD:
		return l + r, nil
	case calc.FUNC_SUBTRACT:
		return l - r, nil
	case calc.FUNC_MULTIPLY:
		return l * r, nil
	case calc.FUNC_DIVIDE:
		if r == 0 {
			return 0, calc.ErrDivisionByZero
		}
		return l / r, nil
	case calc.FUNC_POWER:
		return math.Pow(l, r), nil
	default:
		return 0, fmt.Errorf("Arithmetic does not support %s function", f.Function.DebugString())
	}
}
