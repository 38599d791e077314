package remote

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Strategy selects how V∞ is estimated.
type Strategy int

const (
	// Extrapolate regresses voltage against 1/distance over the tail.
	Extrapolate Strategy = iota
	// AverageLastN averages the last N voltages of the full included series.
	AverageLastN
	// LastPoint uses the voltage of the final included reading.
	LastPoint
)

var strategyNames = [...]string{
	Extrapolate:  "extrapolate",
	AverageLastN: "average-last-n",
	LastPoint:    "last-point",
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Extrapolate, AverageLastN, LastPoint}
}

// String returns the canonical name used in survey files and on the command line.
func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}

	return strategyNames[s]
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s >= 0 && int(s) < len(strategyNames)
}

// ParseStrategy maps a name to a Strategy.
//
// Matching ignores case and treats '_' and ' ' like '-', so "Average_Last_N" and
// "last point" are accepted. An unknown name returns an error that suggests the
// closest valid name.
func ParseStrategy(name string) (Strategy, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)

	best, bestDist := Extrapolate, -1
	for _, s := range Strategies() {
		if norm == s.String() {
			return s, nil
		}
		if d := levenshtein.ComputeDistance(norm, s.String()); bestDist < 0 || d < bestDist {
			best, bestDist = s, d
		}
	}

	return 0, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownStrategy, name, best.String())
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}

	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(text []byte) error {
	parsed, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
