// Package save persists the player's credit balance and settings as JSON.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/dicepoker/internal/fileutil"
)

// DefaultStartingCredit is the balance of a new save.
const DefaultStartingCredit = 250

// Settings are the persisted user preferences.
type Settings struct {
	ShowKeyLegend bool `json:"show_key_legend"`
}

func DefaultSettings() Settings {
	return Settings{ShowKeyLegend: true}
}

// State is the content of the save file.
type State struct {
	Credit   int      `json:"credit"`
	Settings Settings `json:"settings"`
}

// Store reads and writes one save file.
type Store struct {
	path     string
	defaults State
	logger   *log.Logger
}

// NewStore returns a store for path that falls back to defaults when the
// file is missing or unreadable.
func NewStore(path string, defaults State, logger *log.Logger) *Store {
	return &Store{path: path, defaults: defaults, logger: logger.WithPrefix("save")}
}

func (s *Store) Path() string { return s.path }

// Load returns the saved state. The bool is false when the defaults were
// used because the file was missing or invalid. Saves holding only a credit
// balance are accepted; settings missing from the file keep their defaults.
func (s *Store) Load() (State, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return s.defaults, false, nil
	}
	if err != nil {
		return s.defaults, false, fmt.Errorf("failed to read save file: %w", err)
	}

	st, err := decode(data, s.defaults)
	if err != nil {
		s.logger.Warn("Ignoring invalid save file", "path", s.path, "error", err)
		return s.defaults, false, nil
	}
	return st, true, nil
}

// LoadOrInit loads the save and writes a fresh one when none was usable.
func (s *Store) LoadOrInit() (State, error) {
	st, loaded, err := s.Load()
	if err != nil {
		return st, err
	}
	if !loaded {
		if err := s.Save(st); err != nil {
			return st, err
		}
		s.logger.Info("Created save file", "path", s.path, "credit", st.Credit)
	}
	return st, nil
}

// Save writes the state atomically.
func (s *Store) Save(st State) error {
	if err := fileutil.WriteJSON(s.path, st, 0o644); err != nil {
		return fmt.Errorf("failed to write save file: %w", err)
	}
	s.logger.Debug("Saved", "credit", st.Credit, "showKeyLegend", st.Settings.ShowKeyLegend)
	return nil
}

func decode(data []byte, defaults State) (State, error) {
	var raw struct {
		Credit   json.RawMessage `json:"credit"`
		Settings json.RawMessage `json:"settings"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return State{}, err
	}
	if raw.Credit == nil {
		return State{}, errors.New("credit is missing")
	}
	credit, err := strconv.Atoi(string(bytes.TrimSpace(raw.Credit)))
	if err != nil {
		return State{}, fmt.Errorf("credit is not an integer: %s", raw.Credit)
	}

	st := State{Credit: credit, Settings: defaults.Settings}
	if len(raw.Settings) > 0 && raw.Settings[0] == '{' {
		settings := defaults.Settings
		if err := json.Unmarshal(raw.Settings, &settings); err == nil {
			st.Settings = settings
		}
	}
	return st, nil
}
