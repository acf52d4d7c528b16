package calc

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/cockroachdb/errors"
)

type tokenKind int

const (
	tkEOF tokenKind = iota
	tkNewline
	tkIdent
	tkNumber
	tkString
	tkOp
)

type token struct {
	kind   tokenKind
	text   string
	number float64
	line   int
}

// two-character operators, checked before single-character ones
var doubleOps = []string{"**", "==", "!=", ">=", "<="}

const singleOps = "=+-*/%()[],<>"

func tokenize(source string) ([]token, error) {
	var tokens []token
	line := 1
	runes := []rune(source)
	i := 0

	emit := func(t token) {
		t.line = line
		tokens = append(tokens, t)
	}

	for i < len(runes) {
		r := runes[i]

		switch {
		case r == ' ' || r == '\t' || r == '\r':
			i++

		case r == '#':
			for i < len(runes) && runes[i] != '\n' {
				i++
			}

		case r == '\n':
			// collapse runs of blank lines into one newline token
			if len(tokens) > 0 && tokens[len(tokens)-1].kind != tkNewline {
				emit(token{kind: tkNewline})
			}
			line++
			i++

		case r == '\'' || r == '"':
			quote := r
			i++
			var sb strings.Builder
			closed := false
			for i < len(runes) {
				c := runes[i]
				if c == '\\' && i+1 < len(runes) {
					i++
					switch runes[i] {
					case 'n':
						sb.WriteRune('\n')
					case 't':
						sb.WriteRune('\t')
					default:
						sb.WriteRune(runes[i])
					}
					i++
					continue
				}
				if c == quote {
					closed = true
					i++
					break
				}
				if c == '\n' {
					break
				}
				sb.WriteRune(c)
				i++
			}
			if !closed {
				return nil, errors.Newf("line %d: unterminated string literal", line)
			}
			emit(token{kind: tkString, text: sb.String()})

		case unicode.IsDigit(r) || (r == '.' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			start := i
			for i < len(runes) && (unicode.IsDigit(runes[i]) || runes[i] == '.' ||
				runes[i] == 'e' || runes[i] == 'E' ||
				((runes[i] == '+' || runes[i] == '-') && (runes[i-1] == 'e' || runes[i-1] == 'E'))) {
				i++
			}
			text := string(runes[start:i])
			number, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, errors.Newf("line %d: invalid number '%s'", line, text)
			}
			emit(token{kind: tkNumber, text: text, number: number})

		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) ||
				runes[i] == '_' || runes[i] == '.') {
				i++
			}
			emit(token{kind: tkIdent, text: string(runes[start:i])})

		default:
			if i+1 < len(runes) {
				double := string(runes[i : i+2])
				found := false
				for _, op := range doubleOps {
					if double == op {
						emit(token{kind: tkOp, text: op})
						i += 2
						found = true
						break
					}
				}
				if found {
					continue
				}
			}
			if strings.ContainsRune(singleOps, r) {
				emit(token{kind: tkOp, text: string(r)})
				i++
				continue
			}
			return nil, errors.Newf("line %d: unexpected character '%c'", line, r)
		}
	}

	emit(token{kind: tkEOF})
	return tokens, nil
}
