package mastery

import (
	"fmt"
	"strings"
)

// Policy selects how the next word is drawn from the pool.
type Policy int

const (
	// CurrentTargets prefers learning words 70/30 over mastered ones.
	CurrentTargets Policy = iota + 1
	// AllTargets draws uniformly from the whole pool.
	AllTargets
)

// MasteredShare is the probability that CurrentTargets prefers the mastered set.
const MasteredShare = 0.3

var policyNames = [...]string{CurrentTargets: "current", AllTargets: "all"}

// IsValid reports whether p is a known policy.
func (p Policy) IsValid() bool {
	return p >= CurrentTargets && p <= AllTargets
}

func (p Policy) String() string {
	if p.IsValid() {
		return policyNames[p]
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Label returns the human-facing policy name.
func (p Policy) Label() string {
	switch p {
	case CurrentTargets:
		return "Current Targets"
	case AllTargets:
		return "All Targets"
	default:
		return p.String()
	}
}

// Next returns the other policy.
func (p Policy) Next() Policy {
	if p == AllTargets {
		return CurrentTargets
	}
	return AllTargets
}

// ParsePolicy accepts "current", "all" and the labels "Current Targets", "All Targets".
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "current", "current targets", "current-targets":
		return CurrentTargets, nil
	case "all", "all targets", "all-targets":
		return AllTargets, nil
	default:
		return 0, fmt.Errorf("mastery: unknown policy %q (want current or all)", name)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.IsValid() {
		return nil, fmt.Errorf("mastery: invalid policy: %d", int(p))
	}
	return []byte(policyNames[p]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(text []byte) error {
	v, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
