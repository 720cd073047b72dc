package litigation

import (
	"time"
)

// Case is a legal case file tracked by the firm.
//
// Two independent status tracks live on the case; each carries its own
// action date ("iş tarihi") and note. When a status is cleared, its
// paired action date and note must be cleared with it.
type Case struct {
	ID          int64
	BuroTakipNo string // firm-internal tracking number (BN)
	EsasNo      string // court case-registry number
	ClientName  string
	ClientRole  ClientRole
	OtherParty  string
	Subject     string
	Court       string
	OpeningDate string // ISO date
	HearingDate string // ISO date, canonical "durusma_tarihi"

	Status1     string
	ActionDate1 string
	Note1       string
	Status2     string
	ActionDate2 string
	Note2       string

	Archived  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrackedFields is the subset of case fields whose changes are written
// to the case timeline and can spawn auto-completed tasks.
type TrackedFields struct {
	Status1     string
	Status2     string
	Note1       string
	Note2       string
	ActionDate1 string
	ActionDate2 string
	HearingDate string
}

// Tracked extracts the tracked fields of the case.
func (c *Case) Tracked() TrackedFields {
	return TrackedFields{
		Status1:     c.Status1,
		Status2:     c.Status2,
		Note1:       c.Note1,
		Note2:       c.Note2,
		ActionDate1: c.ActionDate1,
		ActionDate2: c.ActionDate2,
		HearingDate: c.HearingDate,
	}
}

// FieldChange describes one tracked-field transition.
type FieldChange struct {
	Field    string // column name
	Label    string // Turkish display label
	Old      string
	New      string
	IsStatus bool
	IsDate   bool
}

// Diff compares two tracked-field snapshots and returns one change per
// differing field, in a stable order. Unchanged fields produce nothing.
func (before TrackedFields) Diff(after TrackedFields) []FieldChange {
	specs := []struct {
		field    string
		label    string
		old, new string
		isStatus bool
		isDate   bool
	}{
		{"status_1", "Durum 1", before.Status1, after.Status1, true, false},
		{"status_2", "Durum 2", before.Status2, after.Status2, true, false},
		{"note_1", "Not 1", before.Note1, after.Note1, false, false},
		{"note_2", "Not 2", before.Note2, after.Note2, false, false},
		{"action_date_1", "İş Tarihi 1", before.ActionDate1, after.ActionDate1, false, true},
		{"action_date_2", "İş Tarihi 2", before.ActionDate2, after.ActionDate2, false, true},
		{"durusma_tarihi", "Duruşma Tarihi", before.HearingDate, after.HearingDate, false, true},
	}

	var changes []FieldChange
	for _, s := range specs {
		if s.old == s.new {
			continue
		}
		changes = append(changes, FieldChange{
			Field:    s.field,
			Label:    s.label,
			Old:      s.old,
			New:      s.new,
			IsStatus: s.isStatus,
			IsDate:   s.isDate,
		})
	}
	return changes
}
