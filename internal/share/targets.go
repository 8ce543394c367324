package share

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// Command pipes the text into an external program, e.g. wl-copy or pbcopy.
type Command struct {
	Name string
	Args []string
}

// ShareText runs the program with text on stdin.
func (c *Command) ShareText(ctx context.Context, text string) error {
	path, err := exec.LookPath(c.Name)
	if err != nil {
		return fmt.Errorf("%w: %s not found", ErrUnavailable, c.Name)
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Stdin = strings.NewReader(text)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("share: %s failed: %w: %s", c.Name, err, msg)
		}
		return fmt.Errorf("share: %s failed: %w", c.Name, err)
	}
	return nil
}

// Clipboard copies text to the terminal's clipboard with an OSC 52 escape.
// Works through SSH as long as the client terminal supports it. When Out is
// also the UI's output, both must go through a SyncFile (or another writer
// that serializes Write calls).
type Clipboard struct {
	Out   io.Writer
	Force bool
	Tmux  bool
}

// fder is implemented by *os.File and similar terminal handles.
type fder interface {
	Fd() uintptr
}

// ShareText writes the OSC 52 sequence to Out.
func (c *Clipboard) ShareText(_ context.Context, text string) error {
	if c.Out == nil {
		return fmt.Errorf("%w: no terminal", ErrUnavailable)
	}
	if !c.Force {
		f, ok := c.Out.(fder)
		if !ok || !term.IsTerminal(int(f.Fd())) {
			return fmt.Errorf("%w: output is not a terminal", ErrUnavailable)
		}
	}

	seq := osc52.New(text)
	if c.Tmux {
		seq = seq.Tmux()
	}
	// One Write call, so a serialized writer never splits the sequence.
	if _, err := io.WriteString(c.Out, seq.String()); err != nil {
		return fmt.Errorf("share: write clipboard sequence: %w", err)
	}
	return nil
}

// File appends each shared text as a timestamped line.
type File struct {
	Path string
	Now  func() time.Time // defaults to time.Now
}

// ShareText appends text to the file, creating it and its directory as needed.
func (f *File) ShareText(_ context.Context, text string) error {
	path, err := expandHome(f.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("share: cannot create directory: %w", err)
	}

	fh, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("share: cannot open %s: %w", path, err)
	}
	defer fh.Close()

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	line := fmt.Sprintf("%s\t%s\n", now().Format("2006-01-02 15:04:05"), text)
	if _, err := fh.WriteString(line); err != nil {
		return fmt.Errorf("share: cannot write %s: %w", path, err)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("share: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
