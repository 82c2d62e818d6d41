// Package parser splits a raw command line into an argument vector,
// optional redirection filenames, a background flag, and a builtin
// classification.
//
// Tokens are separated by whitespace. A token may be wrapped in a
// single matching pair of single or double quotes; the content runs to
// the closing quote with no escape processing. '<' and '>' introduce
// the input and output filename and may each appear at most once. A
// trailing bare '&' token requests background execution.
package parser

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// MaxLine is the longest command line the parser looks at; anything
	// beyond it is ignored.
	MaxLine = 1024

	// MaxArgs bounds the argument vector. Tokens beyond MaxArgs-1
	// arguments stop being collected and the command proceeds with the
	// arguments gathered so far.
	MaxArgs = 128
)

var (
	// ErrAmbiguousRedirect is returned when a redirection operator is
	// repeated for the same direction, or when both directions are
	// pending at once.
	ErrAmbiguousRedirect = errors.New("ambiguous I/O redirection")

	// ErrMissingRedirectFile is returned when a redirection operator is
	// not followed by a filename token.
	ErrMissingRedirectFile = errors.New("must provide file name for redirection")
)

// UnmatchedQuoteError is returned when a quoted token has no closing
// quote.
type UnmatchedQuoteError struct {
	Quote byte
}

func (e UnmatchedQuoteError) Error() string {
	return fmt.Sprintf("unmatched %c", e.Quote)
}

// Builtin classifies the leading argument of a parsed command line.
type Builtin int

const (
	BuiltinNone Builtin = iota
	BuiltinQuit
	BuiltinJobs
	BuiltinBG
	BuiltinFG
)

var builtinNames = []string{
	"none",
	"quit",
	"jobs",
	"bg",
	"fg",
}

// String implements the Stringer interface for Builtin.
func (b Builtin) String() string {
	if int(b) < 0 || int(b) >= len(builtinNames) {
		return builtinNames[0]
	}

	return builtinNames[b]
}

// Tokens is the structured result of parsing one command line.
type Tokens struct {
	Argv       []string
	Infile     string
	Outfile    string
	Background bool
	Builtin    Builtin
}

// Parsing states: which role the next token fills.
const (
	stateNormal  = 0x0
	stateInfile  = 0x1
	stateOutfile = 0x2
)

const whitespace = " \t\r\n"

// ParseLine parses cmdline into Tokens. Malformed input returns a nil
// Tokens and an error; no partial result is produced. An empty or
// whitespace-only line returns zero arguments and no error.
func ParseLine(cmdline string) (*Tokens, error) {
	if len(cmdline) > MaxLine {
		cmdline = cmdline[:MaxLine]
	}

	tok := &Tokens{}
	state := stateNormal

	i := 0
	for i < len(cmdline) {
		// Skip leading whitespace.
		for i < len(cmdline) && strings.IndexByte(whitespace, cmdline[i]) >= 0 {
			i++
		}
		if i >= len(cmdline) {
			break
		}

		switch cmdline[i] {
		case '<':
			if tok.Infile != "" {
				return nil, ErrAmbiguousRedirect
			}
			state |= stateInfile
			i++
			continue
		case '>':
			if tok.Outfile != "" {
				return nil, ErrAmbiguousRedirect
			}
			state |= stateOutfile
			i++
			continue
		}

		var word string

		if q := cmdline[i]; q == '\'' || q == '"' {
			i++
			end := strings.IndexByte(cmdline[i:], q)
			if end < 0 {
				return nil, UnmatchedQuoteError{Quote: q}
			}
			word = cmdline[i : i+end]
			i += end + 1
		} else {
			end := strings.IndexAny(cmdline[i:], whitespace)
			if end < 0 {
				end = len(cmdline) - i
			}
			word = cmdline[i : i+end]
			i += end
		}

		switch state {
		case stateNormal:
			tok.Argv = append(tok.Argv, word)
		case stateInfile:
			tok.Infile = word
		case stateOutfile:
			tok.Outfile = word
		default:
			// Both redirection roles pending at once, e.g. "< > f".
			return nil, ErrAmbiguousRedirect
		}
		state = stateNormal

		if len(tok.Argv) >= MaxArgs-1 {
			break
		}
	}

	if state != stateNormal {
		return nil, ErrMissingRedirectFile
	}

	if len(tok.Argv) == 0 {
		return tok, nil
	}

	switch tok.Argv[0] {
	case "quit":
		tok.Builtin = BuiltinQuit
	case "jobs":
		tok.Builtin = BuiltinJobs
	case "bg":
		tok.Builtin = BuiltinBG
	case "fg":
		tok.Builtin = BuiltinFG
	}

	if tok.Argv[len(tok.Argv)-1] == "&" {
		tok.Background = true
		tok.Argv = tok.Argv[:len(tok.Argv)-1]
	}

	return tok, nil
}
