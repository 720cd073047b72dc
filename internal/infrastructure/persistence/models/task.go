package models

import (
	"time"

	"github.com/takibi/backend/internal/domain/task"
	"github.com/takibi/backend/internal/domain/timeline"
)

// TaskModel is the persistence model for the unified tasks table.
// bn, kind and the source row id are promoted columns; the __META__
// envelope in body stays the reader contract.
type TaskModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Kind        string `gorm:"type:varchar(20);not null;default:'Manual';index"`
	DueDate     string `gorm:"type:varchar(10);index"`
	Subject     string `gorm:"type:varchar(200)"`
	Body        string `gorm:"type:text"`
	Assignees   string `gorm:"type:varchar(400)"`
	CreatedBy   string `gorm:"type:varchar(100)"`
	CreatedAt   time.Time
	Done        bool `gorm:"not null;default:false;index"`
	DoneAt      *time.Time
	CaseID      int64  `gorm:"index"`
	SourceRowID int64  `gorm:"index"`
	BuroTakipNo string `gorm:"column:buro_takip_no;type:varchar(50)"`
}

// TableName returns the table name for GORM
func (TaskModel) TableName() string {
	return "tasks"
}

// ToDomain converts the persistence model to a domain Task.
func (m *TaskModel) ToDomain() *task.Task {
	return &task.Task{
		ID:          m.ID,
		Kind:        task.Kind(m.Kind),
		DueDate:     m.DueDate,
		Subject:     m.Subject,
		Body:        m.Body,
		Assignees:   m.Assignees,
		CreatedBy:   m.CreatedBy,
		CreatedAt:   m.CreatedAt,
		Done:        m.Done,
		DoneAt:      m.DoneAt,
		CaseID:      m.CaseID,
		SourceRowID: m.SourceRowID,
		BuroTakipNo: m.BuroTakipNo,
	}
}

// FromDomain populates the persistence model from a domain Task.
func (m *TaskModel) FromDomain(t *task.Task) {
	m.ID = t.ID
	m.Kind = string(t.Kind)
	m.DueDate = t.DueDate
	m.Subject = t.Subject
	m.Body = t.Body
	m.Assignees = t.Assignees
	m.CreatedBy = t.CreatedBy
	m.Done = t.Done
	m.DoneAt = t.DoneAt
	m.CaseID = t.CaseID
	m.SourceRowID = t.SourceRowID
	m.BuroTakipNo = t.BuroTakipNo
}

// TimelineModel is the persistence model for one append-only audit row.
// The same struct backs case_timeline, finance_timeline and
// finance_timeline_external; repositories select the table explicitly.
type TimelineModel struct {
	ID      int64     `gorm:"primaryKey;autoIncrement"`
	OwnerID int64     `gorm:"index;not null"`
	At      time.Time `gorm:"not null"`
	User    string    `gorm:"type:varchar(100)"`
	Kind    string    `gorm:"type:varchar(30)"`
	Title   string    `gorm:"type:varchar(200)"`
	Body    string    `gorm:"type:text"`
}

// ToDomain converts the persistence model to a domain Entry.
func (m *TimelineModel) ToDomain(scope timeline.Scope) *timeline.Entry {
	return &timeline.Entry{
		ID:      m.ID,
		Scope:   scope,
		OwnerID: m.OwnerID,
		At:      m.At,
		User:    m.User,
		Kind:    m.Kind,
		Title:   m.Title,
		Body:    m.Body,
	}
}

// FromDomain populates the persistence model from a domain Entry.
func (m *TimelineModel) FromDomain(e *timeline.Entry) {
	m.ID = e.ID
	m.OwnerID = e.OwnerID
	m.At = e.At
	m.User = e.User
	m.Kind = e.Kind
	m.Title = e.Title
	m.Body = e.Body
}

// ChangeLogModel is one trigger-emitted change marker.
type ChangeLogModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Table     string    `gorm:"column:table_name;type:varchar(50);not null"`
	ChangedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ChangeLogModel) TableName() string {
	return "change_log"
}
