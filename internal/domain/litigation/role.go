package litigation

// ClientRole is the client's procedural role in the case
type ClientRole string

const (
	RolePlaintiff          ClientRole = "Davacı"
	RoleDefendant          ClientRole = "Davalı"
	RolePlaintiffDefendant ClientRole = "Davacı-Davalı"
	RoleIntervenor         ClientRole = "Müdahil"
	RoleAccused            ClientRole = "Sanık"
	RoleComplainant        ClientRole = "Katılan/Şikayetçi"
	RoleVictim             ClientRole = "Mağdur"
	RoleCreditor           ClientRole = "Alacaklı"
	RoleDebtor             ClientRole = "Borçlu"
	RoleThirdParty         ClientRole = "Üçüncü Kişi"
)

// AllClientRoles lists every valid role in display order.
var AllClientRoles = []ClientRole{
	RolePlaintiff,
	RoleDefendant,
	RolePlaintiffDefendant,
	RoleIntervenor,
	RoleAccused,
	RoleComplainant,
	RoleVictim,
	RoleCreditor,
	RoleDebtor,
	RoleThirdParty,
}

var roleTags = map[ClientRole]string{
	RolePlaintiff:          "DCI",
	RoleDefendant:          "DLI",
	RolePlaintiffDefendant: "DCD",
	RoleIntervenor:         "MDH",
	RoleAccused:            "SNK",
	RoleComplainant:        "KTL",
	RoleVictim:             "MGD",
	RoleCreditor:           "ALC",
	RoleDebtor:             "BRC",
	RoleThirdParty:         "UCK",
}

// IsValid checks if the role is one of the closed set
func (r ClientRole) IsValid() bool {
	_, ok := roleTags[r]
	return ok
}

// String returns the display form of the role
func (r ClientRole) String() string {
	return string(r)
}

// Tag returns the short three-letter tag used in table columns.
// Unknown roles fall back to the raw value so legacy rows stay visible.
func (r ClientRole) Tag() string {
	if tag, ok := roleTags[r]; ok {
		return tag
	}
	return string(r)
}
