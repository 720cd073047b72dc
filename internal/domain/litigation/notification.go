package litigation

import "time"

// Notification is an official "tebligat" with a response deadline.
// Rows with a deadline are mirrored into the unified tasks table.
type Notification struct {
	ID          int64
	CaseID      int64
	BuroTakipNo string
	Institution string
	Content     string
	Deadline    string // ISO date, canonical "is_son_gunu"
	Done        bool
	CreatedAt   time.Time
}

// Mediation is a scheduled "arabuluculuk" meeting.
type Mediation struct {
	ID          int64
	CaseID      int64
	BuroTakipNo string
	Parties     string
	MeetingDate string // ISO date, canonical "toplanti_tarihi"
	TimeSlot    string // "14:30" style
	Done        bool
	CreatedAt   time.Time
}
