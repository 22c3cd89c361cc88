package mastery

import (
	"encoding"
	"encoding/json"
	"fmt"
)

// Status is the mastery stage of a single word.
type Status int

const (
	Learning Status = iota + 1 // Still being drilled.
	Mastered                   // Streak reached Threshold since the last miss.
)

var (
	statusNames  = [...]string{Learning: "learning", Mastered: "mastered"}
	statusByName = map[string]Status{
		"learning": Learning,
		"mastered": Mastered,
	}
)

// Compile-time interface checks.
var (
	_ fmt.Stringer             = Status(0)
	_ json.Marshaler           = Status(0)
	_ json.Unmarshaler         = (*Status)(nil)
	_ encoding.TextMarshaler   = Status(0)
	_ encoding.TextUnmarshaler = (*Status)(nil)
)

// IsValid reports whether s is Learning or Mastered.
func (s Status) IsValid() bool {
	return s >= Learning && s <= Mastered
}

// String returns "learning" or "mastered". For invalid values it returns "Status(n)".
func (s Status) String() string {
	if s.IsValid() {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// ParseStatus converts a persisted status name into a Status.
func ParseStatus(name string) (Status, error) {
	s, ok := statusByName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, name)
	}
	return s, nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStatus, int(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	v, err := ParseStatus(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// MarshalJSON implements json.Marshaler. Status serializes as a JSON string.
func (s Status) MarshalJSON() ([]byte, error) {
	text, err := s.MarshalText()
	if err != nil {
		return nil, err
	}
	return json.Marshal(string(text))
}

// UnmarshalJSON implements json.Unmarshaler. Expects a JSON string.
func (s *Status) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, data)
	}
	return s.UnmarshalText([]byte(str))
}
