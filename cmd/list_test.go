package cmd

import (
	"testing"

	"github.com/affscope/affscope/pkg/corps"
	"github.com/affscope/affscope/pkg/entity"
	"github.com/affscope/affscope/pkg/featureflags"
)

func TestCreateLine(t *testing.T) {
	c := entity.NewClassifier(corps.New(), featureflags.Static{
		entity.FlagIASupportedEntities: "BC BEN",
	})

	registered := entity.Business{BusinessIdentifier: "BC0871427", Name: "ACME Ltd.", Status: "ACTIVE", CorpType: "BEN"}
	if got := createLine(c, registered, "nits", " "); got != "ACME Ltd. BC0871427 BC Benefit Company Active" {
		t.Errorf("createLine(nits) = %q", got)
	}

	nr := entity.Business{NameRequest: &entity.NameRequest{Number: "NR 2222222", State: "APPROVED", ExpirationDate: "2026-01-01", LegalType: "BEN", EnableIncorporation: true}}
	if got := createLine(c, nr, "ie", ","); got != "NR 2222222,true" {
		t.Errorf("createLine(ie) = %q", got)
	}

	// Trailing delimiter is trimmed.
	if got := createLine(c, registered, "n", "|"); got != "ACME Ltd." {
		t.Errorf("createLine(n) = %q", got)
	}
}
