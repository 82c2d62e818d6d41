package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shellkit/jsh/internal/parser"
)

func parseTestLine(t *testing.T, cmdline string) *parser.Tokens {
	t.Helper()

	tok, err := parser.ParseLine(cmdline)
	if err != nil {
		t.Fatalf("expected not to receive error: got '%v'", err)
	}

	return tok
}

func testArgv(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("expected argv: got %q, want %q", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected argv[%d]: got '%s', want '%s'", i, got[i], want[i])
		}
	}
}

func TestParseLine(t *testing.T) {
	t.Parallel()

	t.Run("Test plain arguments", func(t *testing.T) {
		tok := parseTestLine(t, "ls -l -a /tmp")

		testArgv(t, tok.Argv, []string{"ls", "-l", "-a", "/tmp"})

		if tok.Background {
			t.Error("expected foreground command")
		}

		if tok.Builtin != parser.BuiltinNone {
			t.Errorf("expected no builtin: got '%s'", tok.Builtin)
		}
	})

	t.Run("Test whitespace separators", func(t *testing.T) {
		tok := parseTestLine(t, "echo\ta \r b \n")

		testArgv(t, tok.Argv, []string{"echo", "a", "b"})
	})

	t.Run("Test empty line", func(t *testing.T) {
		for _, line := range []string{"", "   ", "\t \r \n"} {
			tok := parseTestLine(t, line)

			if len(tok.Argv) != 0 {
				t.Errorf("expected no arguments for %q: got %q", line, tok.Argv)
			}
		}
	})

	t.Run("Test quoted tokens", func(t *testing.T) {
		scenarios := map[string]struct {
			cmdline string
			want    []string
		}{
			"Single quotes":    {`echo 'hello world'`, []string{"echo", "hello world"}},
			"Double quotes":    {`echo "hello world"`, []string{"echo", "hello world"}},
			"Empty quotes":     {`echo ""`, []string{"echo", ""}},
			"No escape inside": {`echo 'a\'`, []string{"echo", `a\`}},
			"Quote mid-line":   {`grep "a b" file`, []string{"grep", "a b", "file"}},
		}

		for name, scenario := range scenarios {
			t.Run(name, func(t *testing.T) {
				tok := parseTestLine(t, scenario.cmdline)
				testArgv(t, tok.Argv, scenario.want)
			})
		}
	})

	t.Run("Test unmatched quote", func(t *testing.T) {
		for _, line := range []string{`echo 'oops`, `echo "oops`} {
			tok, err := parser.ParseLine(line)

			var quoteErr parser.UnmatchedQuoteError
			if !errors.As(err, &quoteErr) {
				t.Errorf("expected UnmatchedQuoteError for %q: got '%v'", line, err)
			}

			if tok != nil {
				t.Errorf("expected no partial result for %q: got %+v", line, tok)
			}
		}
	})

	t.Run("Test redirection", func(t *testing.T) {
		tok := parseTestLine(t, "sort < in.txt > out.txt")

		testArgv(t, tok.Argv, []string{"sort"})

		if tok.Infile != "in.txt" {
			t.Errorf("expected infile: got '%s', want 'in.txt'", tok.Infile)
		}

		if tok.Outfile != "out.txt" {
			t.Errorf("expected outfile: got '%s', want 'out.txt'", tok.Outfile)
		}
	})

	t.Run("Test redirection without spaces", func(t *testing.T) {
		tok := parseTestLine(t, "sort <in.txt >out.txt")

		if tok.Infile != "in.txt" || tok.Outfile != "out.txt" {
			t.Errorf(
				"expected redirection files: got '%s' and '%s'",
				tok.Infile,
				tok.Outfile,
			)
		}
	})

	t.Run("Test ambiguous redirection", func(t *testing.T) {
		for _, line := range []string{
			"cat < a < b",
			"cat > a > b",
			"cat < > a",
		} {
			tok, err := parser.ParseLine(line)

			if !errors.Is(err, parser.ErrAmbiguousRedirect) {
				t.Errorf("expected ErrAmbiguousRedirect for %q: got '%v'", line, err)
			}

			if tok != nil {
				t.Errorf("expected no partial result for %q", line)
			}
		}
	})

	t.Run("Test missing redirection filename", func(t *testing.T) {
		for _, line := range []string{"cat <", "cat a >"} {
			tok, err := parser.ParseLine(line)

			if !errors.Is(err, parser.ErrMissingRedirectFile) {
				t.Errorf(
					"expected ErrMissingRedirectFile for %q: got '%v'",
					line,
					err,
				)
			}

			if tok != nil {
				t.Errorf("expected no partial result for %q", line)
			}
		}
	})

	t.Run("Test background marker", func(t *testing.T) {
		tok := parseTestLine(t, "sleep 5 &")

		testArgv(t, tok.Argv, []string{"sleep", "5"})

		if !tok.Background {
			t.Error("expected background command")
		}
	})

	t.Run("Test ampersand not trailing", func(t *testing.T) {
		tok := parseTestLine(t, "echo & hi")

		testArgv(t, tok.Argv, []string{"echo", "&", "hi"})

		if tok.Background {
			t.Error("expected foreground command")
		}
	})

	t.Run("Test builtin classification", func(t *testing.T) {
		scenarios := map[string]struct {
			cmdline string
			want    parser.Builtin
		}{
			"quit":         {"quit", parser.BuiltinQuit},
			"jobs":         {"jobs", parser.BuiltinJobs},
			"bg":           {"bg %1", parser.BuiltinBG},
			"fg":           {"fg %1", parser.BuiltinFG},
			"external":     {"ls", parser.BuiltinNone},
			"not leading":  {"echo quit", parser.BuiltinNone},
			"quoted no-op": {`"quit"`, parser.BuiltinQuit},
		}

		for name, scenario := range scenarios {
			t.Run(name, func(t *testing.T) {
				tok := parseTestLine(t, scenario.cmdline)

				if tok.Builtin != scenario.want {
					t.Errorf(
						"expected builtin: got '%s', want '%s'",
						tok.Builtin,
						scenario.want,
					)
				}
			})
		}
	})

	t.Run("Test excess arguments silently dropped", func(t *testing.T) {
		words := make([]string, parser.MaxArgs+10)
		for i := range words {
			words[i] = "x"
		}

		tok := parseTestLine(t, strings.Join(words, " "))

		if len(tok.Argv) != parser.MaxArgs-1 {
			t.Errorf(
				"expected argument count: got %d, want %d",
				len(tok.Argv),
				parser.MaxArgs-1,
			)
		}
	})

	t.Run("Test overlong line truncated", func(t *testing.T) {
		line := "echo " + strings.Repeat("a", parser.MaxLine)

		tok := parseTestLine(t, line)

		if len(tok.Argv) != 2 {
			t.Fatalf("expected 2 arguments: got %d", len(tok.Argv))
		}

		if len(tok.Argv[1]) != parser.MaxLine-len("echo ") {
			t.Errorf("expected truncated argument: got length %d", len(tok.Argv[1]))
		}
	})
}
