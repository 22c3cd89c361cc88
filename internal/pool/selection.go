package pool

import (
	"errors"
	"slices"
	"strings"
)

// ErrLastList is returned when removing the only enabled list.
var ErrLastList = errors.New("pool: at least one list must stay enabled")

// Selection is the ordered set of enabled list ids. It is never empty.
type Selection struct {
	ids []string
}

// NewSelection dedupes ids, dropping blanks. With nothing left it falls back to fallback.
func NewSelection(ids []string, fallback string) Selection {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || slices.Contains(out, id) {
			continue
		}
		out = append(out, id)
	}
	if len(out) == 0 {
		out = append(out, fallback)
	}
	return Selection{ids: out}
}

// IDs returns a copy of the enabled ids.
func (s Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Contains reports whether id is enabled.
func (s Selection) Contains(id string) bool {
	return slices.Contains(s.ids, id)
}

// Toggle enables id when absent and disables it when present.
// Disabling the last enabled id is rejected and s is returned unchanged.
func (s Selection) Toggle(id string) (Selection, error) {
	idx := slices.Index(s.ids, id)
	if idx < 0 {
		return Selection{ids: append(slices.Clone(s.ids), id)}, nil
	}
	if len(s.ids) == 1 {
		return s, ErrLastList
	}
	return Selection{ids: slices.Delete(slices.Clone(s.ids), idx, idx+1)}, nil
}

// Prune drops ids that known rejects. If that would empty the selection, s is returned unchanged.
func (s Selection) Prune(known func(id string) bool) Selection {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if known(id) {
			out = append(out, id)
		}
	}
	if len(out) == 0 {
		return s
	}
	return Selection{ids: out}
}
