package task

import (
	"time"
)

// Kind classifies a row of the unified tasks table. Hearing and
// status-deadline entries are never stored; they are computed from the
// cases table on demand and only exist as values of this type in
// agenda listings.
type Kind string

const (
	KindManual          Kind = "Manual"
	KindNotification    Kind = "Tebligat"
	KindMediation       Kind = "Arabuluculuk"
	KindHearingMirror   Kind = "Durusma"
	KindStatusDeadline1 Kind = "IsTarihi1"
	KindStatusDeadline2 Kind = "IsTarihi2"
)

// IsValid checks if the kind is one of the closed set
func (k Kind) IsValid() bool {
	switch k {
	case KindManual, KindNotification, KindMediation,
		KindHearingMirror, KindStatusDeadline1, KindStatusDeadline2:
		return true
	}
	return false
}

// IsStored reports whether tasks of this kind live in the tasks table.
func (k Kind) IsStored() bool {
	switch k {
	case KindManual, KindNotification, KindMediation:
		return true
	}
	return false
}

// IsMirror reports whether tasks of this kind shadow a source row and
// are maintained exclusively by the mirror sync.
func (k Kind) IsMirror() bool {
	return k == KindNotification || k == KindMediation
}

// String returns the string representation of Kind
func (k Kind) String() string {
	return string(k)
}

// SystemUser is the creating user stamped on mirror tasks.
const SystemUser = "system"

// Task is one row of the unified tasks table (or a computed agenda
// entry for the non-stored kinds).
type Task struct {
	ID          int64
	Kind        Kind
	DueDate     string // ISO date; empty for dateless manual tasks
	Subject     string
	Body        string // __META__ envelope or free text
	Assignees   string // comma-joined usernames
	CreatedBy   string
	CreatedAt   time.Time
	Done        bool
	DoneAt      *time.Time
	CaseID      int64 // zero when not case-bound
	SourceRowID int64 // id of the mirrored notification/mediation row
	BuroTakipNo string
}

// Agenda groups stored and computed tasks for one listing.
type Agenda struct {
	Stored   []Task
	Computed []Task
}
