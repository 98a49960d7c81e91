package chat

import "time"

// Speaker identifies who authored a turn.
type Speaker string

const (
	SpeakerBot  Speaker = "bot"
	SpeakerUser Speaker = "user"
)

// Turn is one immutable message in a conversation.
type Turn struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"sessionId,omitempty"`
	Speaker     Speaker   `json:"speaker"`
	Text        string    `json:"text"`
	Suggestions []string  `json:"suggestions"`
	RuleID      string    `json:"ruleId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no slices with t.
func (t Turn) Clone() Turn {
	t.Suggestions = append([]string{}, t.Suggestions...)
	return t
}
