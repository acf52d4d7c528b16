package calc_eval

import (
	"github.com/qatrackplus/qatrack-backend/models/calc"
)

// EvaluateNode evaluates an expression tree bottom-up. The first error
// encountered stops the evaluation of that branch; per-procedure error
// handling happens in RunProcedure.
func EvaluateNode(environment CalcEvaluationEnvironment, node calc.Node) (any, error) {
	// Early exit for constant, because it should have no children.
	if node.Function == calc.FUNC_CONSTANT {
		return node.Constant, nil
	}

	args := make([]any, len(node.Children))
	for i, child := range node.Children {
		childValue, err := EvaluateNode(environment, child)
		if err != nil {
			return nil, err
		}
		args[i] = childValue
	}

	namedArgs := make(map[string]any, len(node.NamedChildren))
	for name, child := range node.NamedChildren {
		childValue, err := EvaluateNode(environment, child)
		if err != nil {
			return nil, err
		}
		namedArgs[name] = childValue
	}

	evaluator, err := environment.GetEvaluator(node.Function)
	if err != nil {
		return nil, err
	}

	value, errs := evaluator.Evaluate(calc.Arguments{Args: args, NamedArgs: namedArgs})
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return value, nil
}
