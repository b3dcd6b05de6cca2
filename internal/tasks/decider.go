package tasks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// Decider answers whether an existing song should be overwritten.
//
// It is called synchronously from the batch; the batch waits for the answer.
type Decider interface {
	ConfirmOverwrite(ctx context.Context, name string) bool
}

// DecisionFunc adapts a function to [Decider].
type DecisionFunc func(ctx context.Context, name string) bool

func (f DecisionFunc) ConfirmOverwrite(ctx context.Context, name string) bool {
	return f(ctx, name)
}

var (
	// AlwaysOverwrite replaces the lyrics of every existing song.
	AlwaysOverwrite Decider = DecisionFunc(func(context.Context, string) bool { return true })
	// NeverOverwrite skips every existing song.
	NeverOverwrite Decider = DecisionFunc(func(context.Context, string) bool { return false })
)

// PromptDecider asks on a terminal. Answers are y(es), n(o), a(ll) or s(kip all);
// anything else, including end of input, counts as no.
type PromptDecider struct {
	mu     sync.Mutex
	in     *bufio.Reader
	out    io.Writer
	sticky *bool
}

// NewPromptDecider creates a [PromptDecider] reading answers from r and writing prompts to w.
func NewPromptDecider(r io.Reader, w io.Writer) *PromptDecider {
	return &PromptDecider{in: bufio.NewReader(r), out: w}
}

// ConfirmOverwrite implements [Decider].
func (p *PromptDecider) ConfirmOverwrite(ctx context.Context, name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.sticky != nil {
		return *p.sticky
	}
	if ctx.Err() != nil {
		return false
	}

	fmt.Fprintf(p.out, "A song named '%s' already exists. Overwrite it? [y/N/a/s] ", name)
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(p.out)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "a", "all":
		yes := true
		p.sticky = &yes
		return true
	case "s", "skip", "none":
		no := false
		p.sticky = &no
		return false
	default:
		return false
	}
}
