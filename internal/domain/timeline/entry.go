package timeline

import (
	"fmt"
	"time"

	"github.com/takibi/backend/internal/domain/litigation"
	"github.com/takibi/backend/internal/domain/shared/valueobject"
)

// Scope selects which of the append-only logs an entry belongs to.
type Scope string

const (
	ScopeCase            Scope = "case"
	ScopeFinance         Scope = "finance"
	ScopeExternalFinance Scope = "finance_external"
)

// Entry is one append-only audit row. OwnerID is the case id or the
// finance record id depending on the scope.
type Entry struct {
	ID      int64
	Scope   Scope
	OwnerID int64
	At      time.Time
	User    string
	Kind    string
	Title   string
	Body    string
}

// Entry kinds written by the services.
const (
	KindManual      = "manual"
	KindFieldChange = "field_change"
	KindFinanceNote = "finance"
)

// ChangeBody renders the Turkish timeline body for one tracked-field
// transition. Date values are shown in Turkish format, string values
// quoted.
func ChangeBody(ch litigation.FieldChange) string {
	oldVal, newVal := ch.Old, ch.New
	if ch.IsDate {
		oldVal = valueobject.FormatTurkishDate(oldVal)
		newVal = valueobject.FormatTurkishDate(newVal)
	}

	switch {
	case oldVal == "" && newVal != "":
		return fmt.Sprintf("%s \"%s\" olarak ayarlandı", ch.Label, newVal)
	case oldVal != "" && newVal == "":
		return fmt.Sprintf("%s temizlendi", ch.Label)
	default:
		return fmt.Sprintf("%s \"%s\" → \"%s\" olarak güncellendi", ch.Label, oldVal, newVal)
	}
}
