package calc

type Arguments struct {
	Args      []any
	NamedArgs map[string]any
}
