package evaluate

import "github.com/qatrackplus/qatrack-backend/models/calc"

type Evaluator interface {
	Evaluate(arguments calc.Arguments) (any, []error)
}
