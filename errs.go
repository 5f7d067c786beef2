package mdexpand

import (
	"fmt"

	"github.com/juju/errors"
)

// Sender tags identify which phase raised an Error, mirroring spec's
// LexError / ParseError / ElabStructureError / RegistryError kinds.
const (
	SenderLexer     = "lexer"
	SenderParser    = "parser"
	SenderElaborate = "elaborate"
	SenderRegistry  = "registry"
	SenderInclude   = "include"
)

// Error is used for every fatal failure raised while lexing, parsing, or
// elaborating an MD file. If you want to return an error from your own
// loader or collaborator, fill in as much as you have; Sender and
// ErrorMsg should always be set.
type Error struct {
	Filename string
	Line     int
	Column   int
	Token    *Token
	Sender   string
	ErrorMsg string
}

// Error returns a nicely formatted error string.
func (e *Error) Error() string {
	s := "[Error"
	if e.Sender != "" {
		s += " (where: " + e.Sender + ")"
	}
	if e.Filename != "" {
		s += " in " + e.Filename
	}
	if e.Line > 0 {
		s += fmt.Sprintf(" | Line %d Col %d", e.Line, e.Column)
		if e.Token != nil {
			s += fmt.Sprintf(" near '%s'", e.Token.Val)
		}
	}
	s += "] " + e.ErrorMsg
	return s
}

// newError constructs an Error and wraps it with juju/errors' Trace so
// that the resulting error records the location where it was created.
func newError(sender, filename string, line, col int, tok *Token, format string, args ...any) error {
	e := &Error{
		Filename: filename,
		Line:     line,
		Column:   col,
		Token:    tok,
		Sender:   sender,
		ErrorMsg: fmt.Sprintf(format, args...),
	}
	return errors.Trace(e)
}

func lexError(filename string, line, col int, format string, args ...any) error {
	return newError(SenderLexer, filename, line, col, nil, format, args...)
}

func parseError(filename string, tok *Token, format string, args ...any) error {
	line, col := 0, 0
	if tok != nil {
		line, col = tok.Line, tok.Col
	}
	return newError(SenderParser, filename, line, col, tok, format, args...)
}
