// Package share hands summary text to whatever the host offers for sending
// it elsewhere: a clipboard program, the terminal clipboard (OSC 52), or a file.
package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrUnavailable reports that no target could handle the share request.
// Callers show a transient notice; it is not a failure of the game.
var ErrUnavailable = errors.New("share: no share target available")

// Sharer dispatches text to a share target.
type Sharer interface {
	ShareText(ctx context.Context, text string) error
}

// Func adapts a plain function to Sharer.
type Func func(ctx context.Context, text string) error

// ShareText calls f.
func (f Func) ShareText(ctx context.Context, text string) error {
	return f(ctx, text)
}

// Target names accepted by New.
const (
	TargetCommand = "command"
	TargetOSC52   = "osc52"
	TargetFile    = "file"
)

// Options selects and configures share targets.
type Options struct {
	Targets []string  // Tried in order
	Command []string  // Program and arguments for TargetCommand
	File    string    // Destination for TargetFile
	Out     io.Writer // Terminal for TargetOSC52
	Force   bool      // Emit OSC 52 even if Out is not detected as a terminal
	Tmux    bool      // Wrap OSC 52 for tmux passthrough
}

// New builds a Chain from opts. Targets that cannot be configured (an empty
// command, no output writer) are skipped; unknown names are an error.
func New(opts Options) (*Chain, error) {
	var sharers []Sharer
	for _, name := range opts.Targets {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case TargetCommand:
			if len(opts.Command) == 0 {
				continue
			}
			sharers = append(sharers, &Command{Name: opts.Command[0], Args: opts.Command[1:]})
		case TargetOSC52:
			if opts.Out == nil {
				continue
			}
			sharers = append(sharers, &Clipboard{Out: opts.Out, Force: opts.Force, Tmux: opts.Tmux})
		case TargetFile:
			if opts.File == "" {
				continue
			}
			sharers = append(sharers, &File{Path: opts.File})
		default:
			return nil, fmt.Errorf("share: unknown target %q", name)
		}
	}
	return NewChain(sharers...), nil
}
