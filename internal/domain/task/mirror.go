package task

import (
	"github.com/takibi/backend/internal/domain/litigation"
)

// Mirror subjects are fixed literals the UI keys on.
const (
	SubjectNotification = "Tebligat"
	SubjectMediation    = "Arabuluculuk"
)

// NewNotificationMirror builds the unique task shadowing a tebligat
// row. Only rows with a deadline are mirrored; callers check that.
func NewNotificationMirror(n *litigation.Notification) *Task {
	return &Task{
		Kind:        KindNotification,
		DueDate:     n.Deadline,
		Subject:     SubjectNotification,
		Body: EncodeMeta(Meta{
			Type:           string(KindNotification),
			BuroTakipNo:    n.BuroTakipNo,
			NotificationID: n.ID,
			Content:        n.Content,
		}),
		CreatedBy:   SystemUser,
		Done:        n.Done,
		CaseID:      n.CaseID,
		SourceRowID: n.ID,
		BuroTakipNo: n.BuroTakipNo,
	}
}

// NewMediationMirror builds the unique task shadowing an arabuluculuk
// row. Only rows with a meeting date are mirrored.
func NewMediationMirror(m *litigation.Mediation) *Task {
	return &Task{
		Kind:        KindMediation,
		DueDate:     m.MeetingDate,
		Subject:     SubjectMediation,
		Body: EncodeMeta(Meta{
			Type:        string(KindMediation),
			BuroTakipNo: m.BuroTakipNo,
			MediationID: m.ID,
			Parties:     m.Parties,
			TimeSlot:    m.TimeSlot,
		}),
		CreatedBy:   SystemUser,
		Done:        m.Done,
		CaseID:      m.CaseID,
		SourceRowID: m.ID,
		BuroTakipNo: m.BuroTakipNo,
	}
}
