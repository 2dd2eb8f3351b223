// Package validation decides whether a requested symbol and horizon can be served.
package validation

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// DefaultSymbols and DefaultHorizons are the policy used when no policy file is configured.
var (
	DefaultSymbols  = []string{"BTC", "ETH", "SOL"}
	DefaultHorizons = []int{15, 60, 240, 1440}
)

// RejectionError describes why a request was refused. Reason is shown to the buyer.
type RejectionError struct {
	Field  string
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

// Policy is an immutable whitelist of symbols and horizons.
type Policy struct {
	symbols  []string
	horizons []int
}

// NewPolicy builds a policy. Symbols are normalized to upper case and
// de-duplicated; an empty list falls back to the defaults.
func NewPolicy(symbols []string, horizons []int) *Policy {
	if len(symbols) == 0 {
		symbols = DefaultSymbols
	}
	if len(horizons) == 0 {
		horizons = DefaultHorizons
	}

	normalized := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || slices.Contains(normalized, s) {
			continue
		}
		normalized = append(normalized, s)
	}

	hs := slices.Clone(horizons)
	slices.Sort(hs)
	hs = slices.Compact(hs)

	return &Policy{symbols: normalized, horizons: hs}
}

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() *Policy {
	return NewPolicy(nil, nil)
}

// Symbols returns a copy of the allowed symbols.
func (p *Policy) Symbols() []string {
	return slices.Clone(p.symbols)
}

// Horizons returns a copy of the allowed horizons, in minutes.
func (p *Policy) Horizons() []int {
	return slices.Clone(p.horizons)
}

// Validate returns nil when the symbol (case-insensitive) and horizon are both
// allowed, and a *RejectionError naming the offending value otherwise.
func (p *Policy) Validate(symbol string, horizonMinutes int) error {
	if !slices.Contains(p.symbols, strings.ToUpper(strings.TrimSpace(symbol))) {
		return &RejectionError{
			Field: "symbol",
			Reason: fmt.Sprintf("unsupported symbol %q: allowed symbols are %s",
				symbol, strings.Join(p.symbols, ", ")),
		}
	}
	if !slices.Contains(p.horizons, horizonMinutes) {
		return &RejectionError{
			Field: "horizon_min",
			Reason: fmt.Sprintf("unsupported horizon %d minutes: allowed horizons are %s",
				horizonMinutes, joinInts(p.horizons)),
		}
	}
	return nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}

var defaultPolicy = DefaultPolicy()

// Validate checks symbol and horizon against the built-in policy.
func Validate(symbol string, horizonMinutes int) error {
	return defaultPolicy.Validate(symbol, horizonMinutes)
}
