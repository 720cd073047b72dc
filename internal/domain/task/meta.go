package task

import (
	"encoding/json"
	"strings"
)

// MetaPrefix is the literal 8-byte prefix marking a structured task
// body. Readers split on exactly these first 8 characters.
const MetaPrefix = "__META__"

// Meta is the JSON payload carried behind the prefix. Type and BN are
// required on every envelope; the rest depends on the task kind.
type Meta struct {
	Type           string `json:"type"`
	BuroTakipNo    string `json:"bn"`
	NotificationID int64  `json:"tebligat_id,omitempty"`
	MediationID    int64  `json:"arabuluculuk_id,omitempty"`
	Content        string `json:"icerik,omitempty"`
	Parties        string `json:"taraflar,omitempty"`
	TimeSlot       string `json:"saat,omitempty"`
	Source         string `json:"source,omitempty"`
	Extras         string `json:"extras,omitempty"`
}

// SourceAutoCompleted marks tasks synthesized when a case status moves
// on: the prior action date is recorded as already done.
const SourceAutoCompleted = "auto_completed"

// EncodeMeta renders the envelope: prefix plus compact JSON.
func EncodeMeta(m Meta) string {
	raw, err := json.Marshal(m)
	if err != nil {
		// Meta contains only strings and ints; Marshal cannot fail on it.
		return MetaPrefix + "{}"
	}
	return MetaPrefix + string(raw)
}

// DecodeMeta reads a task body. ok is false for free-text bodies or a
// malformed envelope; the caller then shows the body verbatim.
func DecodeMeta(body string) (Meta, bool) {
	if !strings.HasPrefix(body, MetaPrefix) {
		return Meta{}, false
	}
	var m Meta
	if err := json.Unmarshal([]byte(body[len(MetaPrefix):]), &m); err != nil {
		return Meta{}, false
	}
	return m, true
}

// DisplayBody returns the human-readable text of a task body: the
// content or parties of an envelope, otherwise the body itself.
func DisplayBody(body string) string {
	m, ok := DecodeMeta(body)
	if !ok {
		return body
	}
	if m.Content != "" {
		return m.Content
	}
	return m.Parties
}
