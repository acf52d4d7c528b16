package evaluate

import (
	"fmt"
	"math"
	"strings"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

// Modulo is numeric remainder, or string interpolation when the left operand
// is a string ('hello %s' % value), mirroring the operator of the language
// procedures are written in.
type Modulo struct{}

func (f Modulo) Evaluate(arguments calc.Arguments) (any, []error) {
	leftAny, rightAny, err := leftAndRight(arguments.Args)
	if err != nil {
		return MakeEvaluateError(err)
	}

	if format, ok := leftAny.(string); ok {
		return MakeEvaluateResult(interpolate(format, rightAny))
	}

	left, right, errs := adaptLeftAndRight(leftAny, rightAny, ToFloat64)
	if len(errs) > 0 {
		return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
	}
	if right == 0 {
		return MakeEvaluateError(calc.ErrDivisionByZero)
	}
	return MakeEvaluateResult(math.Mod(left, right))
}

// interpolate supports a single %s/%d/%f-style verb with one argument.
func interpolate(format string, arg any) (string, error) {
	goFormat := strings.ReplaceAll(format, "%s", "%v")

	if strings.Contains(goFormat, "%d") {
		number, err := ToFloat64(arg)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf(goFormat, int64(number)), nil
	}

	rendered := fmt.Sprintf(goFormat, arg)
	if strings.Contains(rendered, "%!") {
		return "", fmt.Errorf("cannot format %v with '%s'", arg, format)
	}
	return rendered, nil
}
