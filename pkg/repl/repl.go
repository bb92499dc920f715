// Package repl implements the interactive query loop: it reads "<low> <high>"
// lines, prints every indexed interval intersecting each query, and stops on
// the literal "quit" or end of input.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"

	"github.com/Sumatoshi-tech/itree/pkg/intervalio"
)

// DefaultPrompt is printed before every query line.
const DefaultPrompt = "\nEnter an interval (e.g. 3 5) to intersect, quit to stop => "

// quitCommand ends the loop.
const quitCommand = "quit"

// Querier answers intersection queries; *interval.Tree[int] implements it.
type Querier interface {
	FindIntersecting(q intervalio.Interval) []intervalio.Interval
}

// Config holds the I/O endpoints and presentation options of a session.
type Config struct {
	// In supplies query lines.
	In io.Reader
	// Out receives prompts and results.
	Out io.Writer
	// Logger records per-query diagnostics at debug level. Nil uses slog.Default.
	Logger *slog.Logger
	// Prompt overrides DefaultPrompt when non-empty.
	Prompt string
	// Sort orders each answer by low, high and label before printing.
	Sort bool
	// Color enables ANSI colors for prompts and errors.
	Color bool
}

// Session is one run of the interactive loop over a single tree.
type Session struct {
	tree    Querier
	in      *bufio.Scanner
	out     io.Writer
	logger  *slog.Logger
	prompt  *color.Color
	failure *color.Color
	text    string
	sort    bool
	queries int
}

// New creates a session over tree.
func New(tree Querier, cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	text := cfg.Prompt
	if text == "" {
		text = DefaultPrompt
	}

	prompt := color.New(color.FgCyan)
	failure := color.New(color.FgRed)

	if cfg.Color {
		prompt.EnableColor()
		failure.EnableColor()
	} else {
		prompt.DisableColor()
		failure.DisableColor()
	}

	return &Session{
		tree:    tree,
		in:      bufio.NewScanner(cfg.In),
		out:     cfg.Out,
		logger:  logger,
		prompt:  prompt,
		failure: failure,
		text:    text,
		sort:    cfg.Sort,
	}
}

// Queries returns the number of queries answered so far.
func (s *Session) Queries() int {
	return s.queries
}

// Run prompts for and answers queries until "quit", end of input, or ctx is
// canceled. Malformed lines are reported and the loop continues. Returns nil
// on "quit" and end of input, and ctx.Err() on cancellation.
func (s *Session) Run(ctx context.Context) error {
	for {
		err := ctx.Err()
		if err != nil {
			return err
		}

		_, err = s.prompt.Fprint(s.out, s.text)
		if err != nil {
			return fmt.Errorf("write prompt: %w", err)
		}

		if !s.in.Scan() {
			break
		}

		line := strings.TrimSpace(s.in.Text())

		switch line {
		case quitCommand:
			return nil
		case "":
			continue
		}

		err = s.answer(ctx, line)
		if err != nil {
			return err
		}
	}

	err := s.in.Err()
	if err != nil {
		return fmt.Errorf("read query: %w", err)
	}

	return nil
}

func (s *Session) answer(ctx context.Context, line string) error {
	q, err := intervalio.ParseQuery(line)
	if err != nil {
		_, werr := s.failure.Fprintf(s.out, "invalid query %q: %v\n", line, err)
		if werr != nil {
			return fmt.Errorf("write error: %w", werr)
		}

		return nil
	}

	found := s.tree.FindIntersecting(q)
	if s.sort {
		intervalio.SortResults(found)
	}

	s.queries++
	s.logger.DebugContext(ctx, "query answered", "low", q.Low, "high", q.High, "matches", len(found))

	err = intervalio.WriteResults(s.out, intervalio.FormatText, intervalio.NewResultSet(q, found, 0))
	if err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	return nil
}
