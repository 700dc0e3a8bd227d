package table

import (
	"testing"

	"github.com/affscope/affscope/pkg/entity"
	"github.com/affscope/affscope/pkg/source"
)

func TestHeadersAttachOptions(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	headers := s.Headers()
	if len(headers) != 5 {
		t.Fatalf("expected 5 headers, got %d", len(headers))
	}

	byKey := make(map[string]Header, len(headers))
	for _, h := range headers {
		byKey[h.Key] = h
	}

	// One option per record, per filterable column. No dedup here.
	for _, col := range []string{ColName, ColNumber, ColType, ColStatus} {
		if got := len(byKey[col].Options); got != 3 {
			t.Errorf("%s: expected 3 options, got %d", col, got)
		}
	}
	if len(byKey[ColActions].Options) != 0 {
		t.Error("Actions column must not carry filter options")
	}

	statuses := byKey[ColStatus].Options
	if statuses[0].Value != "Active" || statuses[1].Value != "Draft" || statuses[2].Value != "Approved" {
		t.Errorf("status options computed wrong: %+v", statuses)
	}
	if statuses[0].Label != statuses[0].Value {
		t.Error("option label and value must match")
	}
}

func TestHeadersDuplicateOptionsKept(t *testing.T) {
	src := source.NewListCollection([]entity.Business{
		{BusinessIdentifier: "BC1", Name: "ONE", CorpType: "BEN"},
		{BusinessIdentifier: "BC2", Name: "TWO", CorpType: "BEN"},
	})
	s := NewStore(src, testClassifier())
	defer s.Close()

	headers := s.Headers(ColType)
	if len(headers) != 1 {
		t.Fatalf("expected only the Type header, got %d headers", len(headers))
	}
	// Dedup is the view's job, not this layer's.
	opts := headers[0].Options
	if len(opts) != 2 || opts[0].Value != opts[1].Value {
		t.Fatalf("expected duplicate type options to be kept: %+v", opts)
	}
}

func TestHeadersRestrictedColumnsKeepOrder(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	headers := s.Headers(ColStatus, ColName)
	if len(headers) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(headers))
	}
	// Display order comes from the base header list, not the argument order.
	if headers[0].Key != ColName || headers[1].Key != ColStatus {
		t.Errorf("header order wrong: %s, %s", headers[0].Key, headers[1].Key)
	}
}

func TestHeadersUnknownColumnIgnored(t *testing.T) {
	s, _ := newTestStore()
	defer s.Close()

	if headers := s.Headers("Nope"); len(headers) != 0 {
		t.Fatalf("unknown column produced headers: %+v", headers)
	}
}
