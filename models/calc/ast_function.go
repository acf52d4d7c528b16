package calc

import "fmt"

type Function int

const (
	FUNC_CONSTANT Function = iota
	FUNC_VARIABLE
	FUNC_ADD
	FUNC_SUBTRACT
	FUNC_MULTIPLY
	FUNC_DIVIDE
	FUNC_MODULO
	FUNC_POWER
	FUNC_NEGATE
	FUNC_GREATER
	FUNC_GREATER_OR_EQUAL
	FUNC_LESS
	FUNC_LESS_OR_EQUAL
	FUNC_EQUAL
	FUNC_NOT_EQUAL
	FUNC_INDEX
	FUNC_CALL
)

func (f Function) DebugString() string {
	switch f {
	case FUNC_CONSTANT:
		return "CONSTANT"
	case FUNC_VARIABLE:
		return "FUNC_VARIABLE"
	case FUNC_ADD:
		return "FUNC_ADD"
	case FUNC_SUBTRACT:
		return "FUNC_SUBTRACT"
	case FUNC_MULTIPLY:
		return "FUNC_MULTIPLY"
	case FUNC_DIVIDE:
		return "FUNC_DIVIDE"
	case FUNC_MODULO:
		return "FUNC_MODULO"
	case FUNC_POWER:
		return "FUNC_POWER"
	case FUNC_NEGATE:
		return "FUNC_NEGATE"
	case FUNC_GREATER:
		return "FUNC_GREATER"
	case FUNC_GREATER_OR_EQUAL:
		return "FUNC_GREATER_OR_EQUAL"
	case FUNC_LESS:
		return "FUNC_LESS"
	case FUNC_LESS_OR_EQUAL:
		return "FUNC_LESS_OR_EQUAL"
	case FUNC_EQUAL:
		return "FUNC_EQUAL"
	case FUNC_NOT_EQUAL:
		return "FUNC_NOT_EQUAL"
	case FUNC_INDEX:
		return "FUNC_INDEX"
	case FUNC_CALL:
		return "FUNC_CALL"
	default:
		return fmt.Sprintf("Invalid function: %d", f)
	}
}

const (
	VariableArgumentName = "name"
	CallArgumentName     = "name"
)

func NewNodeVariable(name string) Node {
	return Node{Function: FUNC_VARIABLE}.
		AddNamedChild(VariableArgumentName, Node{Constant: name})
}

func NewNodeCall(name string, args ...Node) Node {
	node := Node{Function: FUNC_CALL}.
		AddNamedChild(CallArgumentName, Node{Constant: name})
	for _, arg := range args {
		node = node.AddChild(arg)
	}
	return node
}
