package storage

import "time"

// Entry is one cached affiliated business row.
type Entry struct {
	Account string

	// Record identity and the classified-upon fields
	Key         string // business identifier, or NR number for drafts and reservations
	Name        string
	Status      string
	CorpType    string
	CorpSubType string
	NRNumber    string

	// Payload keeps the full record JSON so name request details survive
	// the cache round trip.
	Payload string
}

// Change captures a single change event for auditing or printing.
type Change struct {
	OccurredAt time.Time

	Account    string
	Key        string
	Name       string
	CorpType   string
	ChangeType string // added | updated | removed
}
