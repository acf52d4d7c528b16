package calc

import "github.com/cockroachdb/errors"

var (
	ErrUndefinedFunction        = errors.New("undefined function")
	ErrUndefinedVariable        = errors.New("undefined variable")
	ErrWrongNumberOfArguments   = errors.New("wrong number of arguments")
	ErrMissingNamedArgument     = errors.New("missing named argument")
	ErrArgumentMustBeIntOrFloat = errors.New("arguments must be an integer or a float")
	ErrArgumentMustBeString     = errors.New("argument must be a string")
	ErrArgumentMustBeMapOrList  = errors.New("argument must be a mapping or a list")
	ErrArgumentMustBeFile       = errors.New("argument must be a file handle")
	ErrDivisionByZero           = errors.New("division by zero")
	ErrNoResultAssigned         = errors.New("procedure did not assign a result variable")
	ErrCyclicDependency         = errors.New("cyclic test dependency")
)

// ErrorKind names the category of an evaluation error. It fills the
// exception-type segment of the per-test error a user sees, as in
// "Invalid Test Procedure: <slug>, line N: <kind>: <message>".
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrUndefinedVariable), errors.Is(err, ErrUndefinedFunction):
		return "NameError"
	case errors.Is(err, ErrWrongNumberOfArguments),
		errors.Is(err, ErrMissingNamedArgument),
		errors.Is(err, ErrArgumentMustBeIntOrFloat),
		errors.Is(err, ErrArgumentMustBeString),
		errors.Is(err, ErrArgumentMustBeMapOrList),
		errors.Is(err, ErrArgumentMustBeFile):
		return "TypeError"
	case errors.Is(err, ErrDivisionByZero):
		return "ZeroDivisionError"
	}
	return "EvaluationError"
}
