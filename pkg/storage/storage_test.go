package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/affscope/affscope/pkg/entity"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "affscope.sqlite"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testEntries(t *testing.T) []Entry {
	t.Helper()
	entries, err := BuildEntries("acct-1", []entity.Business{
		{BusinessIdentifier: "BC0871427", Name: "ACME Ltd.", Status: "ACTIVE", CorpType: "BEN"},
		{CorpType: entity.CorpIncorporationApplication, CorpSubType: "BEN", NRNumber: "NR 1111111"},
		{NameRequest: &entity.NameRequest{Number: "NR 2222222", State: "APPROVED", ExpirationDate: "2026-01-01", LegalType: "BEN"}},
	})
	if err != nil {
		t.Fatalf("BuildEntries: %v", err)
	}
	return entries
}

func TestBuildEntries(t *testing.T) {
	entries := testEntries(t)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Key != "BC0871427" || entries[1].Key != "NR 1111111" || entries[2].Key != "NR 2222222" {
		t.Errorf("record keys wrong: %s %s %s", entries[0].Key, entries[1].Key, entries[2].Key)
	}

	if _, err := BuildEntries("", nil); err == nil {
		t.Error("expected error for missing account")
	}

	// Records without any identifying number are dropped.
	entries, err := BuildEntries("acct-1", []entity.Business{{Name: "nameless"}})
	if err != nil {
		t.Fatalf("BuildEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected unidentified record to be skipped, got %d entries", len(entries))
	}
}

func TestEntryRecordRoundTrip(t *testing.T) {
	entries := testEntries(t)
	b, err := entries[2].Record()
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if b.NameRequest == nil || b.NameRequest.Number != "NR 2222222" || b.NameRequest.ExpirationDate != "2026-01-01" {
		t.Errorf("name request details lost in cache round trip: %+v", b.NameRequest)
	}
}

func TestUpsertDetectsChanges(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	entries := testEntries(t)

	changes, err := db.UpsertAccountEntries(ctx, "acct-1", entries)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 added changes, got %d", len(changes))
	}
	for _, c := range changes {
		if c.ChangeType != "added" {
			t.Errorf("expected added, got %s for %s", c.ChangeType, c.Key)
		}
	}

	// Same payload again: nothing changed.
	changes, err = db.UpsertAccountEntries(ctx, "acct-1", entries)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if len(changes) != 0 {
		t.Fatalf("expected no changes on identical upsert, got %d", len(changes))
	}

	// Rename one record, drop another.
	updated, err := BuildEntries("acct-1", []entity.Business{
		{BusinessIdentifier: "BC0871427", Name: "ACME Holdings Ltd.", Status: "ACTIVE", CorpType: "BEN"},
		{CorpType: entity.CorpIncorporationApplication, CorpSubType: "BEN", NRNumber: "NR 1111111"},
	})
	if err != nil {
		t.Fatalf("BuildEntries: %v", err)
	}
	changes, err = db.UpsertAccountEntries(ctx, "acct-1", updated)
	if err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	if len(changes) != 2 {
		t.Fatalf("expected update + removal, got %d changes: %+v", len(changes), changes)
	}
	got := map[string]string{}
	for _, c := range changes {
		got[c.Key] = c.ChangeType
	}
	if got["BC0871427"] != "updated" || got["NR 2222222"] != "removed" {
		t.Errorf("unexpected change set: %v", got)
	}
}

func TestListEntriesFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertAccountEntries(ctx, "acct-1", testEntries(t)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	other, err := BuildEntries("acct-2", []entity.Business{{BusinessIdentifier: "BC9", Name: "OTHERCO", CorpType: "BC"}})
	if err != nil {
		t.Fatalf("BuildEntries: %v", err)
	}
	if _, err := db.UpsertAccountEntries(ctx, "acct-2", other); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	all, err := db.ListEntries(ctx, ListOptions{})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(all))
	}

	mine, err := db.ListEntries(ctx, ListOptions{Account: "acct-1"})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(mine) != 3 {
		t.Fatalf("expected 3 entries for acct-1, got %d", len(mine))
	}

	temps, err := db.ListEntries(ctx, ListOptions{CorpType: "TMP"})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(temps) != 1 || temps[0].NRNumber != "NR 1111111" {
		t.Fatalf("corp type filter wrong: %+v", temps)
	}

	named, err := db.ListEntries(ctx, ListOptions{NameFilter: "ACME"})
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	if len(named) != 1 || named[0].Key != "BC0871427" {
		t.Fatalf("name filter wrong: %+v", named)
	}
}

func TestRecentChangesAndStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertAccountEntries(ctx, "acct-1", testEntries(t)); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	changes, err := db.ListRecentChanges(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentChanges: %v", err)
	}
	if len(changes) != 3 {
		t.Fatalf("expected 3 logged changes, got %d", len(changes))
	}

	stats, err := db.GetStats(ctx)
	if err != nil {
		t.Fatalf("GetStats: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 corp type rows, got %d", len(stats))
	}
	total := 0
	for _, s := range stats {
		total += s.RecordCount
	}
	if total != 3 {
		t.Errorf("expected 3 records across stats, got %d", total)
	}
}
