package evaluate

import "github.com/cockroachdb/errors"

func ToFloat64(v any) (float64, error) {
	switch v := v.(type) {
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float32:
		return float64(v), nil
	case float64:
		return v, nil
	case bool:
		// booleans enter the evaluation context as 0/1
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errors.Newf("value %v cannot be converted to float64", v)
	}
}

func ToString(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.Newf("value %v cannot be converted to string", v)
	}
	return s, nil
}
