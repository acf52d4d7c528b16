package calc

// Statement is one `name = expr` line of a calculation procedure.
type Statement struct {
	Target string
	Expr   Node
	Line   int
}

// Procedure is a parsed calculation procedure: a sequence of assignments, the
// last relevant one being to the variable `result`.
type Procedure struct {
	Statements []Statement
}

// FileHandle is the FILE binding given to upload-test procedures: the decoded
// upload payload held in memory.
type FileHandle struct {
	Filename string
	Data     []byte
}
