package bingo

import "fmt"

// PlaybackMode indicates which termination policy a replay should use. The
// bingo package exports one constant per policy that the game package knows
// how to run.
type PlaybackMode string

const (
	// PlaybackModeFirstWin replays draws until the first board (in declaration
	// order) completes a row or column.
	PlaybackModeFirstWin PlaybackMode = "first"
	// PlaybackModeLastWin replays draws, removing each board from play as soon
	// as it wins, until the final remaining board wins on its own.
	PlaybackModeLastWin PlaybackMode = "last"
)

// AllPlaybackModes lists every mode in the order the CLI reports them.
var AllPlaybackModes = []PlaybackMode{PlaybackModeFirstWin, PlaybackModeLastWin}

// ParsePlaybackMode turns a raw string into a PlaybackMode.
func ParsePlaybackMode(raw string) (PlaybackMode, error) {
	switch PlaybackMode(raw) {
	case PlaybackModeFirstWin, PlaybackModeLastWin:
		return PlaybackMode(raw), nil
	default:
		return "", fmt.Errorf("unknown playback mode %q", raw)
	}
}

// Label is a human-readable name for the mode.
func (m PlaybackMode) Label() string {
	switch m {
	case PlaybackModeFirstWin:
		return "First winner"
	case PlaybackModeLastWin:
		return "Last winner"
	default:
		return string(m)
	}
}
