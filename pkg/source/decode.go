package source

import (
	"github.com/tidwall/gjson"

	"github.com/affscope/affscope/pkg/entity"
)

// DecodeAffiliations parses a raw affiliations payload into business
// records. It accepts both the wrapped form {"entities": [...]} and a bare
// JSON array, and tolerates corp types expressed either as a bare code or
// as an object with a "code" field. Entries with no usable identity are
// skipped rather than reported: a partial table beats no table.
func DecodeAffiliations(body string) []entity.Business {
	root := gjson.Parse(body)
	items := root.Get("entities")
	if !items.Exists() {
		items = root
	}

	var out []entity.Business
	items.ForEach(func(_, item gjson.Result) bool {
		if b, ok := decodeBusiness(item); ok {
			out = append(out, b)
		}
		return true
	})
	return out
}

func decodeBusiness(item gjson.Result) (entity.Business, bool) {
	b := entity.Business{
		BusinessIdentifier: item.Get("businessIdentifier").String(),
		Name:               item.Get("name").String(),
		Status:             item.Get("status").String(),
		CorpType:           corpCode(item.Get("corpType")),
		CorpSubType:        corpCode(item.Get("corpSubtype")),
		NRNumber:           item.Get("nrNumber").String(),
	}

	if nr := item.Get("nameRequest"); nr.Exists() {
		req := &entity.NameRequest{
			Number:              firstString(nr, "nrNumber", "nrNum"),
			State:               nr.Get("state").String(),
			StateCd:             nr.Get("stateCd").String(),
			ExpirationDate:      nr.Get("expirationDate").String(),
			LegalType:           corpCode(nr.Get("legalType")),
			EnableIncorporation: nr.Get("enableIncorporation").Bool(),
		}
		nr.Get("names").ForEach(func(_, n gjson.Result) bool {
			// Candidate names arrive either as bare strings or as
			// {"name": ...} objects depending on the backend version.
			if n.IsObject() {
				req.Names = append(req.Names, n.Get("name").String())
			} else {
				req.Names = append(req.Names, n.String())
			}
			return true
		})
		b.NameRequest = req
	}

	identified := b.BusinessIdentifier != "" || b.NRNumber != "" ||
		(b.NameRequest != nil && b.NameRequest.Number != "")
	return b, identified
}

func corpCode(v gjson.Result) entity.CorpType {
	if v.IsObject() {
		v = v.Get("code")
	}
	return entity.CorpType(v.String())
}

func firstString(v gjson.Result, keys ...string) string {
	for _, k := range keys {
		if s := v.Get(k).String(); s != "" {
			return s
		}
	}
	return ""
}
