package evaluate

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

// AttachmentWriter is the UTILS binding exposed to calculation procedures: it
// registers a user-visible attachment against the test being evaluated
// without altering its primary value.
type AttachmentWriter interface {
	WriteFile(filename string, content any) error
}

// FunctionCall dispatches named calls to the whitelisted builtin library, to
// json.load over the FILE handle, and to UTILS helpers. Nothing outside this
// registry is callable from a procedure.
type FunctionCall struct {
	Utils AttachmentWriter
}

func NewFunctionCall(utils AttachmentWriter) FunctionCall {
	return FunctionCall{Utils: utils}
}

func (f FunctionCall) Evaluate(arguments calc.Arguments) (any, []error) {
	name, err := AdaptNamedArgument(arguments.NamedArgs, calc.CallArgumentName, ToString)
	if err != nil {
		return MakeEvaluateError(err)
	}

	if strings.HasPrefix(name, "UTILS.") {
		return f.evaluateUtils(strings.TrimPrefix(name, "UTILS."), arguments.Args)
	}

	if name == "json.load" || name == "json.loads" {
		return evaluateJSONLoad(arguments.Args)
	}

	builtin, found := builtins[strings.TrimPrefix(name, "math.")]
	if !found {
		return MakeEvaluateError(errors.Wrapf(calc.ErrUndefinedFunction, "'%s'", name))
	}
	return builtin(arguments.Args)
}

func (f FunctionCall) evaluateUtils(helper string, args []any) (any, []error) {
	if helper != "write_file" {
		return MakeEvaluateError(errors.Wrapf(calc.ErrUndefinedFunction, "'UTILS.%s'", helper))
	}
	if err := verifyNumberOfArguments(args, 2); err != nil {
		return MakeEvaluateError(err)
	}
	filename, err := ToString(args[0])
	if err != nil {
		return MakeEvaluateError(calc.ErrArgumentMustBeString)
	}
	if f.Utils == nil {
		return MakeEvaluateError(errors.New("UTILS is not available in this context"))
	}
	if err := f.Utils.WriteFile(filename, args[1]); err != nil {
		return MakeEvaluateError(err)
	}
	return MakeEvaluateResult(nil)
}

func evaluateJSONLoad(args []any) (any, []error) {
	if err := verifyNumberOfArguments(args, 1); err != nil {
		return MakeEvaluateError(err)
	}

	var data []byte
	switch arg := args[0].(type) {
	case calc.FileHandle:
		data = arg.Data
	case string:
		data = []byte(arg)
	default:
		return MakeEvaluateError(calc.ErrArgumentMustBeFile)
	}

	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return MakeEvaluateError(errors.Wrap(err, "invalid json"))
	}
	return MakeEvaluateResult(decoded)
}

type builtinFunc func(args []any) (any, []error)

var builtins = map[string]builtinFunc{
	"sqrt":  unaryMath(math.Sqrt),
	"abs":   unaryMath(math.Abs),
	"floor": unaryMath(math.Floor),
	"ceil":  unaryMath(math.Ceil),
	"exp":   unaryMath(math.Exp),
	"log":   unaryMath(math.Log),
	"log10": unaryMath(math.Log10),
	"sin":   unaryMath(math.Sin),
	"cos":   unaryMath(math.Cos),
	"tan":   unaryMath(math.Tan),

	"round": evaluateRound,
	"pow":   evaluatePow,
	"len":   evaluateLen,

	"min":    aggregate(func(vs []float64) float64 { return vs[0] }, true),
	"max":    aggregate(func(vs []float64) float64 { return vs[len(vs)-1] }, true),
	"sum":    aggregate(sum, false),
	"mean":   aggregate(mean, false),
	"avg":    aggregate(mean, false),
	"median": aggregate(median, true),
	"stdev":  aggregate(stdev, false),
}

func unaryMath(f func(float64) float64) builtinFunc {
	return func(args []any) (any, []error) {
		if err := verifyNumberOfArguments(args, 1); err != nil {
			return MakeEvaluateError(err)
		}
		value, err := ToFloat64(args[0])
		if err != nil {
			return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
		}
		return MakeEvaluateResult(f(value))
	}
}

func evaluateRound(args []any) (any, []error) {
	if len(args) != 1 && len(args) != 2 {
		return MakeEvaluateError(errors.Wrap(calc.ErrWrongNumberOfArguments, "round expects 1 or 2 arguments"))
	}
	value, err := ToFloat64(args[0])
	if err != nil {
		return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
	}
	digits := 0.0
	if len(args) == 2 {
		if digits, err = ToFloat64(args[1]); err != nil {
			return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
		}
	}
	scale := math.Pow(10, digits)
	return MakeEvaluateResult(math.Round(value*scale) / scale)
}

func evaluatePow(args []any) (any, []error) {
	if err := verifyNumberOfArguments(args, 2); err != nil {
		return MakeEvaluateError(err)
	}
	base, errBase := ToFloat64(args[0])
	exponent, errExp := ToFloat64(args[1])
	if errBase != nil || errExp != nil {
		return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
	}
	return MakeEvaluateResult(math.Pow(base, exponent))
}

func evaluateLen(args []any) (any, []error) {
	if err := verifyNumberOfArguments(args, 1); err != nil {
		return MakeEvaluateError(err)
	}
	switch arg := args[0].(type) {
	case string:
		return MakeEvaluateResult(float64(len(arg)))
	case []any:
		return MakeEvaluateResult(float64(len(arg)))
	case map[string]any:
		return MakeEvaluateResult(float64(len(arg)))
	default:
		return MakeEvaluateError(errors.Newf("len does not support %T", args[0]))
	}
}

// aggregate builds a builtin over variadic numbers or a single list of
// numbers. sorted controls whether the values are sorted before f runs.
func aggregate(f func(sorted []float64) float64, sorted bool) builtinFunc {
	return func(args []any) (any, []error) {
		if len(args) == 1 {
			if list, ok := args[0].([]any); ok {
				args = list
			}
		}
		if len(args) == 0 {
			return MakeEvaluateError(errors.Wrap(calc.ErrWrongNumberOfArguments, "expected at least one value"))
		}

		values := make([]float64, len(args))
		for i, arg := range args {
			value, err := ToFloat64(arg)
			if err != nil {
				return MakeEvaluateError(calc.ErrArgumentMustBeIntOrFloat)
			}
			values[i] = value
		}
		if sorted {
			sort.Float64s(values)
		}
		return MakeEvaluateResult(f(values))
	}
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	return sum(values) / float64(len(values))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// stdev is the sample standard deviation.
func stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	m := mean(values)
	total := 0.0
	for _, v := range values {
		total += (v - m) * (v - m)
	}
	return math.Sqrt(total / float64(len(values)-1))
}
