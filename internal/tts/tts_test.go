package tts

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"testing"
)

func TestNewBlankIsNop(t *testing.T) {
	if _, ok := New("   ", nil).(Nop); !ok {
		t.Fatalf("expected Nop speaker for blank command")
	}
	if err := (Nop{}).Speak(context.Background(), "the"); err != nil {
		t.Fatalf("nop speak: %v", err)
	}
}

func TestNewSplitsArguments(t *testing.T) {
	sp, ok := New("espeak-ng -s 120", nil).(*Command)
	if !ok {
		t.Fatalf("expected *Command")
	}
	if sp.name != "espeak-ng" || strings.Join(sp.args, " ") != "-s 120" {
		t.Fatalf("unexpected command %q %q", sp.name, sp.args)
	}
}

func TestCommandSpeak(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	if err := New("true", nil).Speak(context.Background(), "the"); err != nil {
		t.Fatalf("speak: %v", err)
	}
}

func TestCommandSpeakFailureIsLogged(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	err := New("false", logger).Speak(context.Background(), "the")
	if err == nil {
		t.Fatalf("expected error from failing command")
	}
	if !strings.Contains(buf.String(), "speech command failed") {
		t.Fatalf("expected failure to be logged, got %q", buf.String())
	}
}
