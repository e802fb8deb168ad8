package rewriter

import "github.com/viant/typedoc/inspector/python"

// Insertion describes where a docstring goes for one function header
type Insertion struct {
	Colon   int    // index of the ':' ending the header
	At      int    // index of the newline ending the header line, text is inserted before it
	Indent  string // indentation of the function body
	Newline string // newline sequence used by the header line
}

// Locate scans tokens from the function start for the header terminator and the body indentation
func Locate(tokens []python.Token, start int) (*Insertion, error) {
	if start < 0 || start >= len(tokens) {
		return nil, internalError("function token %d out of range", start)
	}
	ret := &Insertion{Colon: -1, At: -1}
	depth := 0
header:
	for i := start; i < len(tokens); i++ {
		token := tokens[i]
		if token.Kind != python.KindOp {
			continue
		}
		switch token.Text {
		case "(", "[", "{":
			depth++
		case ")", "]", "}":
			depth--
		case ":":
			if depth == 0 {
				ret.Colon = i
				break header
			}
		}
	}
	if ret.Colon == -1 {
		return nil, internalError("header terminator not found after %v", tokens[start].Offset)
	}
	for i := ret.Colon + 1; i < len(tokens); i++ {
		token := tokens[i]
		if token.Kind == python.KindNewline {
			ret.At = i
			ret.Newline = token.Text
			break
		}
		if !token.Kind.IsTrivia() {
			return nil, internalError("unexpected %q after header at %v", token.Text, token.Offset)
		}
	}
	if ret.At == -1 {
		return nil, internalError("header line end not found after %v", tokens[ret.Colon].Offset)
	}
	for i := ret.At + 1; i < len(tokens); i++ {
		if tokens[i].Kind == python.KindIndent {
			ret.Indent = tokens[i].Text
			return ret, nil
		}
	}
	return nil, internalError("body indentation not found after %v", tokens[ret.Colon].Offset)
}
