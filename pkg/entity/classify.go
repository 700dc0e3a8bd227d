package entity

import "strings"

// FlagIASupportedEntities holds a space-delimited list of legal type codes
// for which an incorporation application can be started from a name request.
const FlagIASupportedEntities = "ia-supported-entities"

// Display values used where a record carries no better information. The UI
// must always render something, so every classification has a default.
const (
	LabelNameRequest     = "Name Request"
	LabelNumberedCompany = "Numbered Company"
	StatusActive         = "Active"
	StatusDraft          = "Draft"
	StatusProcessing     = "Processing"
	StatusUnknown        = "Unknown"
	NumberPending        = "Pending"
)

// nrDisplayStates maps normalized name request states to their display
// strings. Anything not listed here renders as StatusUnknown.
var nrDisplayStates = map[string]string{
	"APPROVED":         "Approved",
	"CONDITIONAL":      "Conditional Approval",
	"DRAFT":            "Draft",
	"EXPIRED":          "Expired",
	"CONSUMED":         "Consumed",
	"CANCELLED":        "Cancelled",
	"REFUND_REQUESTED": "Cancelled, Refund Requested",
	"REJECTED":         "Rejected",
}

// Classifier derives display attributes from business records using the
// description and feature flag collaborators. All methods are total: they
// return a safe default for malformed records and never fail.
type Classifier struct {
	Descriptions DescriptionService
	Flags        FlagReader
}

func NewClassifier(descriptions DescriptionService, flags FlagReader) *Classifier {
	return &Classifier{Descriptions: descriptions, Flags: flags}
}

// Type returns the display type of the record. Temporary businesses win over
// name requests, which win over the corp type description lookup.
func (c *Classifier) Type(b Business) string {
	switch {
	case b.IsTemporary() && b.IsNameRequest():
		return b.TempDescription()
	case b.IsNameRequest():
		return LabelNameRequest
	case b.IsTemporary():
		return b.TempDescription()
	default:
		return c.Descriptions.FullDescription(b.CorpType)
	}
}

// Status returns the display status of the record.
func (c *Classifier) Status(b Business) string {
	if b.IsNameRequest() {
		return nameRequestStatus(b.NameRequest)
	}
	if b.IsTemporary() {
		return StatusDraft
	}
	if b.Status != "" {
		return capitalize(b.Status)
	}
	return StatusActive
}

func nameRequestStatus(nr *NameRequest) string {
	state := nr.State
	if state == "" {
		state = nr.StateCd
	}
	state = strings.ToUpper(strings.TrimSpace(state))

	// An approved reservation without an expiration date hasn't finished
	// processing on the backend yet.
	if state == "APPROVED" && nr.ExpirationDate == "" {
		return StatusProcessing
	}
	if display, ok := nrDisplayStates[state]; ok {
		return display
	}
	return StatusUnknown
}

// Number returns the display identifier of the record.
func (c *Classifier) Number(b Business) string {
	switch {
	case b.IsTemporary() && b.IsNameRequest():
		return b.NRNumber
	case b.IsNameRequest():
		return b.NameRequest.Number
	case b.IsNumberedIncorporationApplication():
		return NumberPending
	default:
		return b.BusinessIdentifier
	}
}

// Name returns the display name of the record. Numbered incorporation
// applications have no name yet, so one is derived from the corp subtype.
func (c *Classifier) Name(b Business) string {
	if b.IsNumberedIncorporationApplication() {
		if d := c.Descriptions.NumberedDescription(b.CorpSubType); d != "" {
			return d
		}
		return LabelNumberedCompany
	}
	return b.Name
}

// TypeDescription returns the long-form legal type description shown under
// the type column, or "" for registered businesses (the type column already
// carries their full description).
func (c *Classifier) TypeDescription(b Business) string {
	switch {
	case b.IsNameRequest():
		return c.Descriptions.FullDescription(b.NameRequest.LegalType)
	case b.IsTemporary():
		return c.Descriptions.FullDescription(b.CorpSubType)
	default:
		return ""
	}
}

// CanUseNameRequest reports whether an incorporation application can be
// started from this record's name reservation. Requires the reservation to
// allow incorporation, its legal type to be in the feature flag allow-list,
// and a set expiration date (the reservation has finished processing).
func (c *Classifier) CanUseNameRequest(b Business) bool {
	if !b.IsNameRequest() || !b.NameRequest.EnableIncorporation {
		return false
	}
	supported := false
	for _, code := range strings.Fields(c.Flags.GetFlag(FlagIASupportedEntities)) {
		if CorpType(code) == b.NameRequest.LegalType {
			supported = true
			break
		}
	}
	return supported && b.NameRequest.ExpirationDate != ""
}

// capitalize uppercases the first letter and lowercases the rest, turning
// raw status codes like "ACTIVE" into "Active".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}
