package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"finman/internal/core"
)

const inputDateLayout = "2006-01-02"

// prompter reads line-oriented answers from the menu's input stream.
type prompter struct {
	in   *bufio.Scanner
	out  io.Writer
	done bool
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// exhausted reports whether the input stream has ended.
func (p *prompter) exhausted() bool {
	return p.done
}

// line prints the prompt and returns the trimmed answer. An empty
// answer returns fallback.
func (p *prompter) line(prompt, fallback string) string {
	if fallback != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", prompt, fallback)
	} else {
		fmt.Fprintf(p.out, "%s: ", prompt)
	}
	if !p.in.Scan() {
		p.done = true
		return fallback
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return fallback
	}
	return answer
}

// float parses a positive-or-not float; the caller validates range.
func (p *prompter) float(prompt string) (float64, bool) {
	raw := p.line(prompt, "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		fmt.Fprintln(p.out, "Not a number.")
		return 0, false
	}
	return v, true
}

func (p *prompter) int(prompt string) (int, bool) {
	raw := p.line(prompt, "")
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		fmt.Fprintln(p.out, "Not a number.")
		return 0, false
	}
	return v, true
}

// date reads a YYYY-MM-DD date, defaulting to today on empty input.
func (p *prompter) date(prompt string) (time.Time, bool) {
	today := time.Now().UTC().Format(inputDateLayout)
	raw := p.line(prompt+" (YYYY-MM-DD)", today)
	d, err := time.Parse(inputDateLayout, raw)
	if err != nil {
		fmt.Fprintln(p.out, "Invalid date, expected YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}

// optionalDate reads a date that may be left blank; blank means no
// constraint.
func (p *prompter) optionalDate(prompt string) (*time.Time, bool) {
	raw := p.line(prompt+" (YYYY-MM-DD, blank for none)", "")
	if raw == "" {
		return nil, true
	}
	d, err := parseDate(raw)
	if err != nil {
		fmt.Fprintln(p.out, "Invalid date, expected YYYY-MM-DD.")
		return nil, false
	}
	return &d, true
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(inputDateLayout, raw)
}

// category shows a numbered list and returns the chosen entry.
func (p *prompter) category(categories []core.Category) (core.Category, bool) {
	for i, c := range categories {
		fmt.Fprintf(p.out, "  %d. %s\n", i+1, c)
	}
	choice, ok := p.int(fmt.Sprintf("Select category (1-%d)", len(categories)))
	if !ok || choice < 1 || choice > len(categories) {
		fmt.Fprintln(p.out, "Invalid choice.")
		return "", false
	}
	return categories[choice-1], true
}

// kind reads the transaction polarity as a 1/2 choice.
func (p *prompter) kind() (core.Kind, bool) {
	fmt.Fprintln(p.out, "  1. income")
	fmt.Fprintln(p.out, "  2. expense")
	choice, ok := p.int("Select type (1-2)")
	if !ok {
		return "", false
	}
	switch choice {
	case 1:
		return core.Income, true
	case 2:
		return core.Expense, true
	default:
		fmt.Fprintln(p.out, "Invalid choice.")
		return "", false
	}
}
