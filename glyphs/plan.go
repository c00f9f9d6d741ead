package glyphs

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Rule replaces every occurrence of From with To in text destined for one font.
type Rule struct {
	From rune
	To   rune
}

func (r Rule) String() string {
	return fmt.Sprintf("%q->%q", r.From, r.To)
}

// Pair is an unvalidated rule as written in the configuration.
// Each side must hold exactly one character once NFC-normalized, the form
// quote text is in when rules are applied.
type Pair struct {
	From string
	To   string
}

// Plan is the ordered rule list for one font.
type Plan struct {
	Font  string
	Rules []Rule
}

// NewPlan validates pairs and orders the resulting rules so that no rule runs
// before another rule that consumes its output. Starting from input order, the first
// pair (A before B) with A.To == B.From is swapped, and the scan repeats until it
// finds nothing to swap. Rules are never dropped or merged.
func NewPlan(font string, pairs []Pair) (Plan, error) {
	rules := make([]Rule, 0, len(pairs))
	for i, p := range pairs {
		from, ok := singleRune(norm.NFC.String(p.From))
		if !ok {
			return Plan{}, &ConfigError{Source: font, Msg: fmt.Sprintf("rule %d: source %q is not a single character", i+1, p.From)}
		}
		to, ok := singleRune(norm.NFC.String(p.To))
		if !ok {
			return Plan{}, &ConfigError{Source: font, Msg: fmt.Sprintf("rule %d: delegate %q is not a single character", i+1, p.To)}
		}
		rules = append(rules, Rule{From: from, To: to})
	}

	if cycle := findCycle(rules); cycle != nil {
		return Plan{}, &ConfigError{Source: font, Msg: fmt.Sprintf("substitution chain loops through %v", cycle)}
	}
	if !arrange(rules) {
		return Plan{}, &ConfigError{Source: font, Msg: "substitution rules cannot be ordered"}
	}
	return Plan{Font: font, Rules: rules}, nil
}

func singleRune(s string) (rune, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, false
	}
	return r, true
}

// arrange swaps conflicting rules until none remain. It reports false if the
// swap budget runs out, which cannot happen for an acyclic rule set.
func arrange(rules []Rule) bool {
	budget := len(rules)*len(rules)*len(rules) + 16
	for ; budget > 0; budget-- {
		a, b, found := firstConflict(rules)
		if !found {
			return true
		}
		rules[a], rules[b] = rules[b], rules[a]
	}
	return false
}

func firstConflict(rules []Rule) (int, int, bool) {
	for a := range rules {
		for b := a + 1; b < len(rules); b++ {
			if rules[a].To == rules[b].From {
				return a, b, true
			}
		}
	}
	return 0, 0, false
}

// findCycle returns the rules of a dependency loop, or nil. Rule j must run before
// rule i whenever j.To == i.From (for distinct positions), so a loop in that relation
// has no valid order.
func findCycle(rules []Rule) []Rule {
	const (
		unseen = iota
		active
		done
	)
	state := make([]int, len(rules))
	stack := make([]int, 0, len(rules))

	var visit func(i int) []Rule
	visit = func(i int) []Rule {
		state[i] = active
		stack = append(stack, i)
		for j := range rules {
			if j == i || rules[j].To != rules[i].From {
				continue
			}
			switch state[j] {
			case active:
				var loop []Rule
				for k := len(stack) - 1; k >= 0; k-- {
					loop = append(loop, rules[stack[k]])
					if stack[k] == j {
						break
					}
				}
				return loop
			case unseen:
				if loop := visit(j); loop != nil {
					return loop
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		return nil
	}

	for i := range rules {
		if state[i] == unseen {
			if loop := visit(i); loop != nil {
				return loop
			}
		}
	}
	return nil
}

// Conflicts counts the pairs (A before B) with A.To == B.From.
// It is zero for every plan returned by NewPlan.
func Conflicts(rules []Rule) int {
	n := 0
	for a := range rules {
		for b := a + 1; b < len(rules); b++ {
			if rules[a].To == rules[b].From {
				n++
			}
		}
	}
	return n
}

// Apply runs the rules over s in plan order.
func (p Plan) Apply(s string) string {
	for _, r := range p.Rules {
		s = strings.ReplaceAll(s, string(r.From), string(r.To))
	}
	return s
}

// Plans holds one plan per font name.
type Plans map[string]Plan

// For returns the plan of font, or an empty plan when none is configured.
func (p Plans) For(font string) Plan {
	if plan, ok := p[strings.ToUpper(font)]; ok {
		return plan
	}
	return Plan{Font: font}
}
