package models

import (
	"time"

	"github.com/takibi/backend/internal/domain/litigation"
)

// CaseModel is the persistence model for a case file.
//
// Monetary and date columns are text/integer the way every historical
// database of this application stored them; the legacy spellings are
// consolidated into the canonical columns at bootstrap.
type CaseModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	BuroTakipNo string `gorm:"column:buro_takip_no;type:varchar(50);index"`
	EsasNo      string `gorm:"column:esas_no;type:varchar(50)"`
	ClientName  string `gorm:"type:varchar(200);not null"`
	ClientRole  string `gorm:"type:varchar(50)"`
	OtherParty  string `gorm:"type:varchar(200)"`
	Subject     string `gorm:"type:text"`
	Court       string `gorm:"type:varchar(200)"`
	OpeningDate string `gorm:"type:varchar(10)"`
	HearingDate string `gorm:"column:durusma_tarihi;type:varchar(10)"`

	Status1     string `gorm:"column:status_1;type:varchar(100);index"`
	ActionDate1 string `gorm:"column:action_date_1;type:varchar(10)"`
	Note1       string `gorm:"column:note_1;type:text"`
	Status2     string `gorm:"column:status_2;type:varchar(100);index"`
	ActionDate2 string `gorm:"column:action_date_2;type:varchar(10)"`
	Note2       string `gorm:"column:note_2;type:text"`

	Archived  bool `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (CaseModel) TableName() string {
	return "cases"
}

// ToDomain converts the persistence model to a domain Case.
func (m *CaseModel) ToDomain() *litigation.Case {
	return &litigation.Case{
		ID:          m.ID,
		BuroTakipNo: m.BuroTakipNo,
		EsasNo:      m.EsasNo,
		ClientName:  m.ClientName,
		ClientRole:  litigation.ClientRole(m.ClientRole),
		OtherParty:  m.OtherParty,
		Subject:     m.Subject,
		Court:       m.Court,
		OpeningDate: m.OpeningDate,
		HearingDate: m.HearingDate,
		Status1:     m.Status1,
		ActionDate1: m.ActionDate1,
		Note1:       m.Note1,
		Status2:     m.Status2,
		ActionDate2: m.ActionDate2,
		Note2:       m.Note2,
		Archived:    m.Archived,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Case.
func (m *CaseModel) FromDomain(c *litigation.Case) {
	m.ID = c.ID
	m.BuroTakipNo = c.BuroTakipNo
	m.EsasNo = c.EsasNo
	m.ClientName = c.ClientName
	m.ClientRole = string(c.ClientRole)
	m.OtherParty = c.OtherParty
	m.Subject = c.Subject
	m.Court = c.Court
	m.OpeningDate = c.OpeningDate
	m.HearingDate = c.HearingDate
	m.Status1 = c.Status1
	m.ActionDate1 = c.ActionDate1
	m.Note1 = c.Note1
	m.Status2 = c.Status2
	m.ActionDate2 = c.ActionDate2
	m.Note2 = c.Note2
	m.Archived = c.Archived
}

// StatusModel is the persistence model for one status-palette entry.
type StatusModel struct {
	ID    int64  `gorm:"primaryKey;autoIncrement"`
	Name  string `gorm:"type:varchar(100);not null;uniqueIndex"`
	Color string `gorm:"type:varchar(9);not null;default:'#808080'"`
	Owner string `gorm:"type:varchar(30);not null"`
}

// TableName returns the table name for GORM
func (StatusModel) TableName() string {
	return "statuses"
}

// ToDomain converts the persistence model to a domain Status.
func (m *StatusModel) ToDomain() *litigation.Status {
	return &litigation.Status{
		ID:    m.ID,
		Name:  m.Name,
		Color: m.Color,
		Owner: litigation.StatusOwner(m.Owner),
	}
}

// FromDomain populates the persistence model from a domain Status.
func (m *StatusModel) FromDomain(s *litigation.Status) {
	m.ID = s.ID
	m.Name = s.Name
	m.Color = s.Color
	m.Owner = string(s.Owner)
}

// NotificationModel is the persistence model for a tebligat row.
type NotificationModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CaseID      int64  `gorm:"index"`
	BuroTakipNo string `gorm:"column:buro_takip_no;type:varchar(50)"`
	Institution string `gorm:"type:varchar(200)"`
	Content     string `gorm:"type:text"`
	Deadline    string `gorm:"column:is_son_gunu;type:varchar(10)"`
	Done        bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification.
func (m *NotificationModel) ToDomain() *litigation.Notification {
	return &litigation.Notification{
		ID:          m.ID,
		CaseID:      m.CaseID,
		BuroTakipNo: m.BuroTakipNo,
		Institution: m.Institution,
		Content:     m.Content,
		Deadline:    m.Deadline,
		Done:        m.Done,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Notification.
func (m *NotificationModel) FromDomain(n *litigation.Notification) {
	m.ID = n.ID
	m.CaseID = n.CaseID
	m.BuroTakipNo = n.BuroTakipNo
	m.Institution = n.Institution
	m.Content = n.Content
	m.Deadline = n.Deadline
	m.Done = n.Done
}

// MediationModel is the persistence model for an arabuluculuk meeting.
type MediationModel struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	CaseID      int64  `gorm:"index"`
	BuroTakipNo string `gorm:"column:buro_takip_no;type:varchar(50)"`
	Parties     string `gorm:"type:varchar(400)"`
	MeetingDate string `gorm:"column:toplanti_tarihi;type:varchar(10)"`
	TimeSlot    string `gorm:"type:varchar(5)"`
	Done        bool   `gorm:"not null;default:false"`
	CreatedAt   time.Time
}

// TableName returns the table name for GORM
func (MediationModel) TableName() string {
	return "mediations"
}

// ToDomain converts the persistence model to a domain Mediation.
func (m *MediationModel) ToDomain() *litigation.Mediation {
	return &litigation.Mediation{
		ID:          m.ID,
		CaseID:      m.CaseID,
		BuroTakipNo: m.BuroTakipNo,
		Parties:     m.Parties,
		MeetingDate: m.MeetingDate,
		TimeSlot:    m.TimeSlot,
		Done:        m.Done,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain Mediation.
func (m *MediationModel) FromDomain(md *litigation.Mediation) {
	m.ID = md.ID
	m.CaseID = md.CaseID
	m.BuroTakipNo = md.BuroTakipNo
	m.Parties = md.Parties
	m.MeetingDate = md.MeetingDate
	m.TimeSlot = md.TimeSlot
	m.Done = md.Done
}
