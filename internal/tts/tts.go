// Package tts speaks words through an external text-to-speech command.
package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

const speakTimeout = 10 * time.Second

// Speaker reads a word aloud.
type Speaker interface {
	Speak(ctx context.Context, word string) error
}

// Nop is a Speaker that does nothing.
type Nop struct{}

// Speak implements Speaker.
func (Nop) Speak(context.Context, string) error { return nil }

// Command runs a configured program with the word appended as the last argument,
// e.g. "espeak-ng -s 120" or "say".
type Command struct {
	name   string
	args   []string
	logger *slog.Logger
}

// New returns a Command for cmdline, or Nop when cmdline is blank.
func New(cmdline string, logger *slog.Logger) Speaker {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Command{name: fields[0], args: fields[1:], logger: logger}
}

// Speak runs the command and waits for it. Failures are logged and returned.
func (c *Command) Speak(ctx context.Context, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, speakTimeout)
	defer cancel()

	args := append(append([]string(nil), c.args...), word)
	out, err := exec.CommandContext(ctx, c.name, args...).CombinedOutput()
	if err != nil {
		c.logger.Warn("speech command failed",
			"command", c.name,
			"word", word,
			"output", strings.TrimSpace(string(out)),
			"err", err)
		return fmt.Errorf("speak %q: %w", word, err)
	}
	c.logger.Debug("spoke word", "command", c.name, "word", word)
	return nil
}
