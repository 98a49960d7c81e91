package intent

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"

	"github.com/google/uuid"

	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/chat"
	"github.com/vyapyaar/vyapyaar-ai/backend/internal/model/rule"
)

// FallbackRuleID is reported for turns produced by the fallback reply.
const FallbackRuleID = "fallback"

// GreetingRuleID is reported for the opening turn of a session.
const GreetingRuleID = "greeting"

// Responder classifies free text against an ordered rule table and returns
// the scripted bot turn of the first matching rule.
type Responder struct {
	table     rule.Table
	templates map[string]*template.Template
	match     Matcher
	now       func() time.Time
	newID     func() string
}

// Option customizes a Responder.
type Option func(*Responder)

// WithMatcher replaces substring matching. Rule order and first-match-wins
// are unaffected.
func WithMatcher(m Matcher) Option {
	return func(r *Responder) {
		if m != nil {
			r.match = m
		}
	}
}

// WithClock overrides the turn timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Responder) {
		if now != nil {
			r.now = now
		}
	}
}

// WithIDFunc overrides turn id generation.
func WithIDFunc(newID func() string) Option {
	return func(r *Responder) {
		if newID != nil {
			r.newID = newID
		}
	}
}

// templateData is exposed to rule responses as {{.Input}} and {{.Rule}}.
type templateData struct {
	Input string
	Rule  string
}

// New builds a Responder over table. Responses containing template actions
// are parsed and rendered once up front so Respond never fails.
func New(table rule.Table, opts ...Option) (*Responder, error) {
	table.Rules = append([]rule.Rule(nil), table.Rules...)
	table.Normalize()
	if err := table.Validate(); err != nil {
		return nil, err
	}

	r := &Responder{
		table:     table,
		templates: make(map[string]*template.Template),
		match:     Substring,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, item := range table.Rules {
		if !strings.Contains(item.Response, "{{") {
			continue
		}
		tmpl, err := template.New(item.ID).Option("missingkey=zero").Parse(item.Response)
		if err != nil {
			return nil, fmt.Errorf("rule %q: parse response: %w", item.ID, err)
		}
		if err := tmpl.Execute(io.Discard, templateData{Input: item.ID, Rule: item.ID}); err != nil {
			return nil, fmt.Errorf("rule %q: render response: %w", item.ID, err)
		}
		r.templates[item.ID] = tmpl
	}

	return r, nil
}

// Classify returns the id of the first rule whose keywords occur in input.
func (r *Responder) Classify(input string) (string, bool) {
	item, ok := r.lookup(input)
	if !ok {
		return "", false
	}
	return item.ID, true
}

// Respond returns the bot turn for input. It does not touch any conversation
// log; callers append the user turn and the returned turn themselves.
func (r *Responder) Respond(input string) chat.Turn {
	item, ok := r.lookup(input)
	if !ok {
		return r.turn(FallbackRuleID, r.table.Fallback.Text, r.table.Fallback.Suggestions)
	}
	return r.turn(item.ID, r.render(item, input), item.Suggestions)
}

// Greeting returns the opening turn of a conversation.
func (r *Responder) Greeting() chat.Turn {
	return r.turn(GreetingRuleID, r.table.Greeting.Text, r.table.Greeting.Suggestions)
}

// Table returns a copy of the rule table.
func (r *Responder) Table() rule.Table {
	t := r.table
	t.Rules = append([]rule.Rule(nil), r.table.Rules...)
	return t
}

func (r *Responder) lookup(input string) (rule.Rule, bool) {
	normalized := strings.ToLower(input)
	for _, item := range r.table.Rules {
		for _, kw := range item.Keywords {
			if r.match(normalized, kw) {
				return item, true
			}
		}
	}
	return rule.Rule{}, false
}

func (r *Responder) render(item rule.Rule, input string) string {
	tmpl, ok := r.templates[item.ID]
	if !ok {
		return item.Response
	}
	var sb strings.Builder
	if err := tmpl.Execute(&sb, templateData{Input: strings.TrimSpace(input), Rule: item.ID}); err != nil {
		return item.Response
	}
	return sb.String()
}

func (r *Responder) turn(ruleID, text string, suggestions []string) chat.Turn {
	return chat.Turn{
		ID:          r.newID(),
		Speaker:     chat.SpeakerBot,
		Text:        text,
		Suggestions: append([]string{}, suggestions...),
		RuleID:      ruleID,
		CreatedAt:   r.now(),
	}
}
