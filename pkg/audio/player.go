// Package audio provides playback of encoded audio through a host media
// player. Like the on-device synthesis capability, the player is probed once
// at startup and exposed as an explicit optional handle.
package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Player plays a complete encoded audio clip.
type Player interface {
	// Play blocks until the clip has finished or ctx is cancelled.
	Play(ctx context.Context, clip []byte) error
}

// playerBinaries lists supported player commands in preference order, with
// the arguments that make them consume a file path quietly.
var playerBinaries = []struct {
	name string
	args []string
}{
	{"mpg123", []string{"-q"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"afplay", nil},
}

// CommandPlayer plays clips by writing them to a temporary file and invoking
// a host media player binary.
type CommandPlayer struct {
	binary string
	args   []string

	// run executes the player command. Replaceable in tests.
	run func(ctx context.Context, name string, args ...string) error
}

// Probe detects an installed media player. Returns (nil, false) when none of
// the supported players is present.
func Probe() (*CommandPlayer, bool) {
	for _, cand := range playerBinaries {
		path, err := exec.LookPath(cand.name)
		if err != nil {
			continue
		}
		return &CommandPlayer{
			binary: path,
			args:   cand.args,
			run: func(ctx context.Context, name string, args ...string) error {
				return exec.CommandContext(ctx, name, args...).Run()
			},
		}, true
	}
	return nil, false
}

// Play implements Player.
func (p *CommandPlayer) Play(ctx context.Context, clip []byte) error {
	if len(clip) == 0 {
		return errors.New("audio: empty clip")
	}

	f, err := os.CreateTemp("", "sahayak-*.mp3")
	if err != nil {
		return fmt.Errorf("audio: temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.Write(clip); err != nil {
		f.Close()
		return fmt.Errorf("audio: write clip: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("audio: close clip: %w", err)
	}

	args := append(append([]string{}, p.args...), filepath.Clean(path))
	if err := p.run(ctx, p.binary, args...); err != nil {
		return fmt.Errorf("audio: playback: %w", err)
	}
	return nil
}
