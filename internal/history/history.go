// Package history records completed hands to disk in a TOML hand
// history format. Actions use the compact poker hand history codes:
// "d dh p1 AsKh" deals hole cards, "d db Qd7s2c" deals board cards,
// "p2 f" folds, "p2 cc" checks or calls, "p3 cbr 40" raises by 40.
package history

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Player is one seat's record in a hand history.
type Player struct {
	Name          string `toml:"name"`
	Seat          int    `toml:"seat"`
	Human         bool   `toml:"human"`
	StartingStack int    `toml:"starting_stack"`
	FinalStack    int    `toml:"final_stack"`
	HoleCards     string `toml:"hole_cards"`
}

// Hand is a complete hand history.
type Hand struct {
	ID         string    `toml:"id"`
	PlayedAt   time.Time `toml:"played_at"`
	Variant    string    `toml:"variant"`
	Difficulty string    `toml:"difficulty"`
	Players    []Player  `toml:"players"`
	Actions    []string  `toml:"actions"`
	Board      string    `toml:"board"`
	Pot        int       `toml:"pot"`
	Winners    []int     `toml:"winners"`
	Payouts    []int     `toml:"payouts"`
}

// Filename returns the on-disk name for this hand.
func (h Hand) Filename() string {
	return fmt.Sprintf("%s-%s.toml", h.PlayedAt.Format("20060102-150405"), h.ID)
}

// Encode writes a hand history as TOML.
func Encode(w io.Writer, h Hand) error {
	return toml.NewEncoder(w).Encode(h)
}

// Decode reads a hand history from TOML.
func Decode(r io.Reader, h *Hand) error {
	_, err := toml.NewDecoder(r).Decode(h)
	return err
}

// Recorder writes one file per hand into a directory.
type Recorder struct {
	dir string
}

// NewRecorder creates the history directory if needed.
func NewRecorder(dir string) (*Recorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}
	return &Recorder{dir: dir}, nil
}

// Record writes the hand to its own file.
func (r *Recorder) Record(h Hand) error {
	path := filepath.Join(r.dir, h.Filename())
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating hand history: %w", err)
	}
	defer f.Close()

	if err := Encode(f, h); err != nil {
		return fmt.Errorf("encoding hand history: %w", err)
	}
	return f.Close()
}
