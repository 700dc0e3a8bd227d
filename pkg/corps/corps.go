// Package corps provides the default corp type description service backed
// by static lookup tables.
package corps

import "github.com/affscope/affscope/pkg/entity"

// descriptions is the source of truth for corp type display descriptions.
var descriptions = map[entity.CorpType]string{
	"BC":  "BC Limited Company",
	"BEN": "BC Benefit Company",
	"ULC": "BC Unlimited Liability Company",
	"CC":  "BC Community Contribution Company",
	"CP":  "Cooperative Association",
	"GP":  "General Partnership",
	"SP":  "Sole Proprietorship",
	"LP":  "Limited Partnership",
	"LL":  "Limited Liability Partnership",
	"A":   "Extraprovincial Company",
	"S":   "Society",

	entity.CorpIncorporationApplication: "Incorporation Application",
	entity.CorpRegistration:             "Registration",
	entity.CorpNameRequest:              "Name Request",
}

// numbered maps corp types that can be incorporated without a name to the
// generic name shown until registration completes.
var numbered = map[entity.CorpType]string{
	"BC":  "Numbered Limited Company",
	"BEN": "Numbered Benefit Company",
	"ULC": "Numbered Unlimited Liability Company",
	"CC":  "Numbered Community Contribution Company",
}

// Service implements entity.DescriptionService.
type Service struct{}

func New() *Service {
	return &Service{}
}

// FullDescription returns the display description for a corp type code,
// or "" for unknown codes.
func (s *Service) FullDescription(code entity.CorpType) string {
	return descriptions[code]
}

// NumberedDescription returns the numbered company name for a corp type
// code, or "" when the type has no numbered form.
func (s *Service) NumberedDescription(code entity.CorpType) string {
	return numbered[code]
}
