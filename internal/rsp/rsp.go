// Package rsp records bundle options into a response file and expands
// "@file" arguments back into command-line tokens.
package rsp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/fatih/color"

	"github.com/Devon-White/code-bundler/internal/writer"
)

// DefaultFileName is where create-rsp writes its answers.
const DefaultFileName = "responseFile.rsp"

// ErrUnterminatedQuote is returned by Tokenize for an unclosed double quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Question is one prompt of the response-file dialog. A Flag question turns a
// yes answer into the bare option and anything else into nothing.
type Question struct {
	Option string
	Prompt string
	Flag   bool
}

// Questions mirrors the options of the bundle command, in prompt order.
var Questions = []Question{
	{Option: "--output", Prompt: "Enter File output name"},
	{Option: "--language", Prompt: "Enter programming language or to include every language enter all"},
	{Option: "--note", Prompt: "Include source code origin as a comment? (yes/no)", Flag: true},
	{Option: "--sort", Prompt: "Enter the sort order for code files ('name' or 'type'):"},
	{Option: "--remove-empty-lines", Prompt: "Remove empty lines from code files? (yes/no)", Flag: true},
	{Option: "--author", Prompt: "Enter the author's name:"},
}

// LineReader reads user input up to a delimiter.
type LineReader interface {
	ReadString(delim byte) (string, error)
}

// Prompter asks questions on out and reads answers from in.
type Prompter struct {
	in  LineReader
	out io.Writer
}

// NewPrompter wraps in with a buffered reader.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return NewPrompterWithReader(bufio.NewReader(in), out)
}

// NewPrompterWithReader allows injection of a reader for testing.
func NewPrompterWithReader(in LineReader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out}
}

// Ask prints prompt and reads a line, asking again until the answer is
// non-empty. It fails if input ends first.
func (p *Prompter) Ask(prompt string) (string, error) {
	cyan := color.New(color.FgCyan)
	for {
		cyan.Fprintln(p.out, prompt)

		line, err := p.in.ReadString('\n')
		answer := strings.TrimRight(line, "\r\n")
		if strings.TrimSpace(answer) != "" {
			return strings.TrimSpace(answer), nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", fmt.Errorf("no answer for %q: input closed", prompt)
			}
			return "", fmt.Errorf("reading answer: %w", err)
		}
	}
}

// Collect runs through questions and returns the answers as option tokens.
func (p *Prompter) Collect(questions []Question) ([]string, error) {
	var tokens []string
	for _, q := range questions {
		answer, err := p.Ask(q.Prompt)
		if err != nil {
			return nil, err
		}
		if q.Flag {
			if isYes(answer) {
				tokens = append(tokens, q.Option)
			}
			continue
		}
		tokens = append(tokens, q.Option, answer)
	}
	return tokens, nil
}

func isYes(answer string) bool {
	a := strings.ToLower(answer)
	return a == "yes" || a == "y"
}

var quoteEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// Format joins tokens with spaces, quoting the ones Tokenize would split.
// Inside quotes, backslashes and double quotes are escaped with a backslash.
func Format(tokens []string) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		if t == "" || strings.ContainsFunc(t, unicode.IsSpace) || strings.Contains(t, `"`) {
			t = `"` + quoteEscaper.Replace(t) + `"`
		}
		parts[i] = t
	}
	return strings.Join(parts, " ")
}

// Write stores tokens in a response file at path, replacing it.
func Write(path string, tokens []string) error {
	if err := writer.WriteFileAtomic(path, []byte(Format(tokens)+"\n"), 0644); err != nil {
		return fmt.Errorf("writing response file: %w", err)
	}
	return nil
}

// Tokenize splits response-file text on whitespace. Double quotes group a
// token; inside quotes \" and \\ stand for a quote and a backslash. Other
// backslashes are kept as written.
func Tokenize(s string) ([]string, error) {
	var (
		tokens   []string
		cur      strings.Builder
		inQuote  bool
		hasToken bool
	)
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\' && i+1 < len(runes) && (runes[i+1] == '"' || runes[i+1] == '\\'):
			cur.WriteRune(runes[i+1])
			i++
		case r == '"':
			inQuote = !inQuote
			hasToken = true
		case !inQuote && unicode.IsSpace(r):
			if hasToken {
				tokens = append(tokens, cur.String())
				cur.Reset()
				hasToken = false
			}
		default:
			cur.WriteRune(r)
			hasToken = true
		}
	}
	if inQuote {
		return nil, ErrUnterminatedQuote
	}
	if hasToken {
		tokens = append(tokens, cur.String())
	}
	return tokens, nil
}

// ExpandArgs replaces every "@path" argument with the tokens of that file.
// Expansion is not recursive.
func ExpandArgs(args []string) ([]string, error) {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		if len(arg) < 2 || arg[0] != '@' {
			out = append(out, arg)
			continue
		}
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf("reading response file: %w", err)
		}
		tokens, err := Tokenize(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing response file %s: %w", arg[1:], err)
		}
		out = append(out, tokens...)
	}
	return out, nil
}
