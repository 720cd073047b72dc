package litigation

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StatusOwner is the coarse "whose move is it" label attached to a
// palette status
type StatusOwner string

const (
	OwnerUs            StatusOwner = "BIZDE"
	OwnerCourt         StatusOwner = "MAHKEME_KURUM"
	OwnerOtherParty    StatusOwner = "KARSI_TARAF"
	OwnerClosedArchive StatusOwner = "KAPANAN_ARSIV"
)

// IsValid checks if the owner is one of the closed set
func (o StatusOwner) IsValid() bool {
	switch o {
	case OwnerUs, OwnerCourt, OwnerOtherParty, OwnerClosedArchive:
		return true
	}
	return false
}

// String returns the string representation of StatusOwner
func (o StatusOwner) String() string {
	return string(o)
}

// Status is one entry of the status palette: a name the user attaches
// to a case track plus its display color and owner label.
type Status struct {
	ID    int64
	Name  string // unique
	Color string // hex, e.g. "#d35400"
	Owner StatusOwner
}

// ClosedCaseLiteral is the status name that marks a closed file.
const ClosedCaseLiteral = "KAPANAN DOSYA"

var turkishUpper = cases.Upper(language.Turkish)

// NormalizeStatusName upper-cases a status name with Turkish casing
// rules (dotted/dotless i) and trims surrounding space.
func NormalizeStatusName(name string) string {
	return turkishUpper.String(strings.TrimSpace(name))
}

// IsClosed reports whether either status track marks the case closed.
func IsClosed(status1, status2 string) bool {
	return NormalizeStatusName(status1) == ClosedCaseLiteral ||
		NormalizeStatusName(status2) == ClosedCaseLiteral
}
