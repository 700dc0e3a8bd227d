// Package entity defines the affiliated business record model and the
// classification functions that derive its display-ready attributes.
package entity

// CorpType is a registry corp type code (e.g. "BC", "BEN", "TMP").
type CorpType string

// Corp type codes with special meaning for classification. Any other code
// denotes a registered business of that legal type.
const (
	CorpIncorporationApplication CorpType = "TMP"
	CorpRegistration             CorpType = "RTMP"
	CorpNameRequest              CorpType = "NR"
)

// Business is a single affiliated business record. The three record shapes
// share one struct; which fields are set determines the shape:
//   - registered business: BusinessIdentifier, Status, CorpType
//   - temporary (draft) business: a temporary CorpType plus the NRNumber of
//     the approved name reservation it was created from
//   - pure name reservation: a non-nil NameRequest
type Business struct {
	BusinessIdentifier string       `json:"businessIdentifier,omitempty"`
	Name               string       `json:"name,omitempty"`
	Status             string       `json:"status,omitempty"`
	CorpType           CorpType     `json:"corpType,omitempty"`
	CorpSubType        CorpType     `json:"corpSubtype,omitempty"`
	NRNumber           string       `json:"nrNumber,omitempty"`
	NameRequest        *NameRequest `json:"nameRequest,omitempty"`
}

// NameRequest is the reservation sub-record carried by name request rows.
type NameRequest struct {
	Number              string   `json:"nrNumber,omitempty"`
	State               string   `json:"state,omitempty"`
	StateCd             string   `json:"stateCd,omitempty"` // legacy field, read when State is empty
	ExpirationDate      string   `json:"expirationDate,omitempty"`
	LegalType           CorpType `json:"legalType,omitempty"`
	Names               []string `json:"names,omitempty"`
	EnableIncorporation bool     `json:"enableIncorporation,omitempty"`
}

// IsNameRequest reports whether the record is a pure name reservation.
func (b Business) IsNameRequest() bool {
	return b.NameRequest != nil
}

// IsTemporary reports whether the record is a draft business created from
// an approved name reservation.
func (b Business) IsTemporary() bool {
	return b.CorpType == CorpIncorporationApplication || b.CorpType == CorpRegistration
}

// IsNumberedIncorporationApplication reports whether the record is an
// incorporation application filed without a name. Numbered companies get
// their name assigned on registration.
func (b Business) IsNumberedIncorporationApplication() bool {
	return b.CorpType == CorpIncorporationApplication
}

// TempDescription returns the display label for a temporary business.
func (b Business) TempDescription() string {
	switch b.CorpType {
	case CorpIncorporationApplication:
		return "Incorporation Application"
	case CorpRegistration:
		return "Registration"
	default:
		// Callers check IsTemporary first; this branch must stay unreachable.
		return ""
	}
}

// DescriptionService resolves corp type codes to display descriptions.
// Unknown codes yield the empty string.
type DescriptionService interface {
	FullDescription(code CorpType) string
	NumberedDescription(code CorpType) string
}

// FlagReader reads feature flags gating classifier behavior. An absent flag
// yields the empty string.
type FlagReader interface {
	GetFlag(key string) string
}
