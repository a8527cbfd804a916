package wandbox

import (
	"encoding/json"
	"fmt"
)

// CompilerInfo describes one compiler offered by the service.
type CompilerInfo struct {
	Name                  string   `json:"name"`
	Version               string   `json:"version"`
	Language              string   `json:"language"`
	DisplayName           string   `json:"display-name"`
	CompilerOptionRaw     bool     `json:"compiler-option-raw"`
	RuntimeOptionRaw      bool     `json:"runtime-option-raw"`
	DisplayCompileCommand string   `json:"display-compile-command"`
	Switches              []Switch `json:"switches"`
}

// SingleSwitch is an on/off option.
type SingleSwitch struct {
	Default      bool   `json:"default"`
	Name         string `json:"name"`
	DisplayName  string `json:"display-name"`
	DisplayFlags string `json:"display-flags"`
}

// SwitchOption is one choice of a MultiSwitch.
type SwitchOption struct {
	Name         string `json:"name"`
	DisplayName  string `json:"display-name"`
	DisplayFlags string `json:"display-flags"`
}

// MultiSwitch is a group of mutually exclusive options; Default names one of them.
type MultiSwitch struct {
	Default string         `json:"default"`
	Options []SwitchOption `json:"options"`
}

// Switch holds exactly one of Single or Multi. The wire format has no tag,
// so the variant is recovered from the shape of the object.
type Switch struct {
	Single *SingleSwitch
	Multi  *MultiSwitch
}

// UnmarshalJSON tries the single shape first and falls back to the multi shape.
func (s *Switch) UnmarshalJSON(data []byte) error {
	if single, ok := probeSingle(data); ok {
		*s = Switch{Single: single}
		return nil
	}
	if multi, ok := probeMulti(data); ok {
		*s = Switch{Multi: multi}
		return nil
	}
	return fmt.Errorf("switch matches neither single nor multi shape: %s", data)
}

// MarshalJSON writes whichever variant is set.
func (s Switch) MarshalJSON() ([]byte, error) {
	switch {
	case s.Single != nil:
		return json.Marshal(s.Single)
	case s.Multi != nil:
		return json.Marshal(s.Multi)
	default:
		return nil, fmt.Errorf("empty switch")
	}
}

// probeSingle accepts only objects whose default is a boolean and that carry a name.
func probeSingle(data []byte) (*SingleSwitch, bool) {
	var shape struct {
		Default      *bool   `json:"default"`
		Name         *string `json:"name"`
		DisplayName  string  `json:"display-name"`
		DisplayFlags string  `json:"display-flags"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, false
	}
	if shape.Default == nil || shape.Name == nil {
		return nil, false
	}
	return &SingleSwitch{
		Default:      *shape.Default,
		Name:         *shape.Name,
		DisplayName:  shape.DisplayName,
		DisplayFlags: shape.DisplayFlags,
	}, true
}

// probeMulti accepts only objects whose default is a string and that carry options.
func probeMulti(data []byte) (*MultiSwitch, bool) {
	var shape struct {
		Default *string        `json:"default"`
		Options []SwitchOption `json:"options"`
	}
	if err := json.Unmarshal(data, &shape); err != nil {
		return nil, false
	}
	if shape.Default == nil || shape.Options == nil {
		return nil, false
	}
	return &MultiSwitch{Default: *shape.Default, Options: shape.Options}, true
}

// String is the short form used by listings.
func (c CompilerInfo) String() string {
	return fmt.Sprintf("%s %s", c.Name, c.Language)
}
