package store

import (
	"encoding/json"
	"fmt"
)

// ViewState is the navigator position remembered between invocations.
type ViewState struct {
	Anchor string `json:"anchor"`
	View   string `json:"view"`
	Filter string `json:"filter"`
}

// DarkMode returns the stored dark-mode preference. ok is false when the
// preference was never saved.
func (e *Events) DarkMode() (dark bool, ok bool, err error) {
	if !e.kv.Has(KeyDarkMode) {
		return false, false, nil
	}
	if err := e.readJSON(KeyDarkMode, &dark); err != nil {
		return false, false, err
	}
	return dark, true, nil
}

// SetDarkMode persists the dark-mode preference.
func (e *Events) SetDarkMode(dark bool) error {
	return e.writeJSON(KeyDarkMode, dark)
}

// ViewState returns the remembered navigator state, or the zero value.
func (e *Events) ViewState() (ViewState, error) {
	var vs ViewState
	if !e.kv.Has(KeyViewState) {
		return vs, nil
	}
	err := e.readJSON(KeyViewState, &vs)
	return vs, err
}

// SaveViewState remembers the navigator state.
func (e *Events) SaveViewState(vs ViewState) error {
	return e.writeJSON(KeyViewState, vs)
}

func (e *Events) readJSON(key string, v any) error {
	b, err := e.kv.Read(key)
	if err != nil {
		return fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (e *Events) writeJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := e.kv.Write(key, b); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}
