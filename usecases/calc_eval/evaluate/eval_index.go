package evaluate

import (
	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models/calc"
)

// Index evaluates container[key] for maps (string keys) and lists (integer
// keys), the shapes json.load produces.
type Index struct{}

func (f Index) Evaluate(arguments calc.Arguments) (any, []error) {
	containerAny, keyAny, err := leftAndRight(arguments.Args)
	if err != nil {
		return MakeEvaluateError(err)
	}

	switch container := containerAny.(type) {
	case map[string]any:
		key, ok := keyAny.(string)
		if !ok {
			return MakeEvaluateError(errors.Newf("mapping key %v must be a string", keyAny))
		}
		value, found := container[key]
		if !found {
			return MakeEvaluateError(errors.Newf("key '%s' not found", key))
		}
		return MakeEvaluateResult(value)

	case []any:
		index, err := ToFloat64(keyAny)
		if err != nil {
			return MakeEvaluateError(errors.Newf("list index %v must be an integer", keyAny))
		}
		i := int(index)
		if i < 0 || i >= len(container) {
			return MakeEvaluateError(errors.Newf("list index %d out of range", i))
		}
		return MakeEvaluateResult(container[i])

	default:
		return MakeEvaluateError(calc.ErrArgumentMustBeMapOrList)
	}
}
