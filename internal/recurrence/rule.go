// Package recurrence expands recurring calendar events into concrete dates and
// rolls countdown targets forward.
package recurrence

import "strings"

// Rule is the closed set of recurrence rules. Any value outside the declared
// constants behaves like None.
type Rule int

const (
	None Rule = iota
	Daily
	Weekly
	Monthly
	Yearly
)

var ruleNames = map[Rule]string{
	None:    "none",
	Daily:   "daily",
	Weekly:  "weekly",
	Monthly: "monthly",
	Yearly:  "yearly",
}

// Rules lists every rule in declaration order.
func Rules() []Rule {
	return []Rule{None, Daily, Weekly, Monthly, Yearly}
}

// ParseRule maps a rule name to a Rule. Unknown names map to None.
func ParseRule(s string) Rule {
	s = strings.TrimSpace(strings.ToLower(s))
	for rule, name := range ruleNames {
		if name == s {
			return rule
		}
	}
	return None
}

// Valid reports whether r is one of the declared rules.
func (r Rule) Valid() bool {
	_, ok := ruleNames[r]
	return ok
}

func (r Rule) String() string {
	if name, ok := ruleNames[r]; ok {
		return name
	}
	return ruleNames[None]
}

// MarshalText implements encoding.TextMarshaler.
func (r Rule) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Unknown names decode to
// None rather than failing, since rules are written only by this application.
func (r *Rule) UnmarshalText(text []byte) error {
	*r = ParseRule(string(text))
	return nil
}
