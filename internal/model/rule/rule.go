package rule

import (
	"errors"
	"fmt"
	"strings"
)

// Reply is a fixed bot message with its suggestion chips.
type Reply struct {
	Text        string   `json:"text" yaml:"text"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// Rule maps a set of keywords to a scripted reply.
type Rule struct {
	ID          string   `json:"id" yaml:"id"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
	Response    string   `json:"response" yaml:"response"`
	Suggestions []string `json:"suggestions" yaml:"suggestions"`
}

// Table is the ordered rule set plus the greeting and fallback replies.
// Rules are evaluated in slice order.
type Table struct {
	Greeting Reply  `json:"greeting" yaml:"greeting"`
	Rules    []Rule `json:"rules" yaml:"rules"`
	Fallback Reply  `json:"fallback" yaml:"fallback"`
}

var (
	ErrNoFallback   = errors.New("rule table has no fallback reply")
	ErrEmptyKeyword = errors.New("rule has an empty keyword")
)

// Normalize lowercases and trims every keyword. Call it once after loading.
func (t *Table) Normalize() {
	for i := range t.Rules {
		keywords := make([]string, 0, len(t.Rules[i].Keywords))
		for _, kw := range t.Rules[i].Keywords {
			keywords = append(keywords, strings.ToLower(strings.TrimSpace(kw)))
		}
		t.Rules[i].Keywords = keywords
	}
}

// Validate reports tables that could make the responder misbehave.
func (t Table) Validate() error {
	if strings.TrimSpace(t.Fallback.Text) == "" {
		return ErrNoFallback
	}

	seen := make(map[string]struct{}, len(t.Rules))
	for i, r := range t.Rules {
		if r.ID == "" {
			return fmt.Errorf("rule %d: id is required", i)
		}
		if _, dup := seen[r.ID]; dup {
			return fmt.Errorf("rule %q: duplicate id", r.ID)
		}
		seen[r.ID] = struct{}{}

		if len(r.Keywords) == 0 {
			return fmt.Errorf("rule %q: at least one keyword is required", r.ID)
		}
		for _, kw := range r.Keywords {
			// An empty keyword is contained in every input and would shadow later rules.
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("rule %q: %w", r.ID, ErrEmptyKeyword)
			}
		}
		if strings.TrimSpace(r.Response) == "" {
			return fmt.Errorf("rule %q: response is required", r.ID)
		}
	}
	return nil
}

// Find returns the rule with the given id.
func (t Table) Find(id string) (Rule, bool) {
	for _, r := range t.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}
