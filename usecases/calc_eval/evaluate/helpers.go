package evaluate

import (
	"fmt"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

func leftAndRight(args []any) (any, any, error) {
	if err := verifyNumberOfArguments(args, 2); err != nil {
		return nil, nil, err
	}
	return args[0], args[1], nil
}

type FuncAdaptArgument[T any] func(argument any) (T, error)

func adaptLeftAndRight[T any](left any, right any, adapt FuncAdaptArgument[T]) (T, T, []error) {
	leftT, errLeft := adapt(left)
	rightT, errRight := adapt(right)

	errs := filterNilErrors(errLeft, errRight)
	if len(errs) > 0 {
		var zero T
		return zero, zero, errs
	}

	return leftT, rightT, nil
}

func verifyNumberOfArguments(args []any, required int) error {
	if len(args) != required {
		return fmt.Errorf("expects %d operands, got %d: %w",
			required, len(args), calc.ErrWrongNumberOfArguments)
	}
	return nil
}

func AdaptNamedArgument[T any](namedArgs map[string]any, name string, adapter FuncAdaptArgument[T]) (T, error) {
	value, ok := namedArgs[name]
	if !ok {
		var zero T
		return zero, fmt.Errorf("named argument '%s': %w", name, calc.ErrMissingNamedArgument)
	}
	return adapter(value)
}

func MakeEvaluateResult(result any, errs ...error) (any, []error) {
	return result, filterNilErrors(errs...)
}

func MakeEvaluateError(err error) (any, []error) {
	return nil, []error{err}
}

func filterNilErrors(errs ...error) []error {
	result := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			result = append(result, err)
		}
	}
	return result
}
