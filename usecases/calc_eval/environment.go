package calc_eval

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/qatrackplus/qatrack-backend/models/calc"
	"github.com/qatrackplus/qatrack-backend/usecases/calc_eval/evaluate"
)

type CalcEvaluationEnvironment struct {
	availableFunctions map[calc.Function]evaluate.Evaluator
}

func (environment *CalcEvaluationEnvironment) AddEvaluator(function calc.Function, evaluator evaluate.Evaluator) {
	if _, ok := environment.availableFunctions[function]; ok {
		panic(fmt.Sprintf("function '%s' is already registered", function.DebugString()))
	}
	environment.availableFunctions[function] = evaluator
}

func (environment *CalcEvaluationEnvironment) GetEvaluator(function calc.Function) (evaluate.Evaluator, error) {
	if evaluator, ok := environment.availableFunctions[function]; ok {
		return evaluator, nil
	}
	return nil, errors.Newf("function '%s' is not available", function.DebugString())
}

// NewCalcEvaluationEnvironment builds the evaluation environment for one
// procedure execution: pure operators, the whitelisted builtin library, the
// variable reader (locals, resolved test values, FILE) and the UTILS
// attachment writer. Nothing else is reachable from procedure code.
func NewCalcEvaluationEnvironment(
	variables evaluate.VariableReader,
	utils evaluate.AttachmentWriter,
) CalcEvaluationEnvironment {
	environment := CalcEvaluationEnvironment{
		availableFunctions: make(map[calc.Function]evaluate.Evaluator),
	}

	environment.AddEvaluator(calc.FUNC_ADD, evaluate.NewArithmetic(calc.FUNC_ADD))
	environment.AddEvaluator(calc.FUNC_SUBTRACT, evaluate.NewArithmetic(calc.FUNC_SUBTRACT))
	environment.AddEvaluator(calc.FUNC_MULTIPLY, evaluate.NewArithmetic(calc.FUNC_MULTIPLY))
	environment.AddEvaluator(calc.FUNC_DIVIDE, evaluate.NewArithmetic(calc.FUNC_DIVIDE))
	environment.AddEvaluator(calc.FUNC_POWER, evaluate.NewArithmetic(calc.FUNC_POWER))
	environment.AddEvaluator(calc.FUNC_MODULO, evaluate.Modulo{})
	environment.AddEvaluator(calc.FUNC_NEGATE, evaluate.Negate{})
	environment.AddEvaluator(calc.FUNC_GREATER, evaluate.NewComparison(calc.FUNC_GREATER))
	environment.AddEvaluator(calc.FUNC_GREATER_OR_EQUAL,
		evaluate.NewComparison(calc.FUNC_GREATER_OR_EQUAL))
	environment.AddEvaluator(calc.FUNC_LESS, evaluate.NewComparison(calc.FUNC_LESS))
	environment.AddEvaluator(calc.FUNC_LESS_OR_EQUAL,
		evaluate.NewComparison(calc.FUNC_LESS_OR_EQUAL))
	environment.AddEvaluator(calc.FUNC_EQUAL, evaluate.NewEqual(calc.FUNC_EQUAL))
	environment.AddEvaluator(calc.FUNC_NOT_EQUAL, evaluate.NewEqual(calc.FUNC_NOT_EQUAL))
	environment.AddEvaluator(calc.FUNC_INDEX, evaluate.Index{})
	environment.AddEvaluator(calc.FUNC_CALL, evaluate.NewFunctionCall(utils))
	environment.AddEvaluator(calc.FUNC_VARIABLE, evaluate.NewVariable(variables))

	return environment
}
