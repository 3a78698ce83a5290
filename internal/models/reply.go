// Package models defines the data structures exchanged between the Cosmus
// conversation core and its consumers.
package models

// Role identifies who produced a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ConversationTurn is a single persisted exchange entry. A sequence of turns,
// ordered by occurrence, forms the conversation history used to rehydrate a
// session.
type ConversationTurn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Challenge is an optional creative task the tutor proposes after a completed
// mission.
type Challenge struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// StructuredReply is the decoded form of one raw model reply. DisplayText is
// the free-form answer with all directives stripped; the remaining fields are
// only set when the corresponding directive was present and well-formed.
type StructuredReply struct {
	DisplayText      string     `json:"displayText"`
	Suggestions      []string   `json:"suggestions,omitempty"`
	ImageQuery       string     `json:"imageQuery,omitempty"`
	Source           string     `json:"source,omitempty"`
	MissionCompleted string     `json:"missionCompleted,omitempty"`
	Challenge        *Challenge `json:"challenge,omitempty"`
}

// HasDirectives reports whether any directive-derived field is set.
func (r StructuredReply) HasDirectives() bool {
	return len(r.Suggestions) > 0 ||
		r.ImageQuery != "" ||
		r.Source != "" ||
		r.MissionCompleted != "" ||
		r.Challenge != nil
}
