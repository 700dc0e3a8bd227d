// Package table implements the filter state store driving the affiliated
// business table: an active filter payload plus the cached, classified
// result list recomputed from the source collection.
package table

import (
	"strings"

	"github.com/affscope/affscope/pkg/entity"
	"github.com/affscope/affscope/pkg/source"
)

// FilterState is the table's visible filter state. IsActive always equals
// (Payload non-empty) and Total always equals len(Results) after any store
// operation.
type FilterState struct {
	IsActive bool
	Payload  map[string]string
	Loading  bool
	Results  []entity.Business
	Total    int
}

// Store owns a FilterState and keeps it consistent with the source
// collection. All operations are synchronous. The store follows the
// single-threaded UI model and must not be shared across goroutines.
//
// UpdateFilter and ClearAllFilters mutate the payload only; Load (and
// every collection change) recomputes the result set and notifies
// subscribers. Construction performs the first recomputation.
type Store struct {
	classifier *entity.Classifier
	src        source.Collection
	state      FilterState

	subs      map[int]func()
	nextSub   int
	cancelSrc func()
}

// NewStore subscribes to the collection and computes the initial result
// set. Call Close when the owning view goes away.
func NewStore(src source.Collection, classifier *entity.Classifier) *Store {
	s := &Store{
		classifier: classifier,
		src:        src,
		state:      FilterState{Payload: make(map[string]string)},
		subs:       make(map[int]func()),
	}
	s.cancelSrc = src.Subscribe(func() { s.Load("", "") })
	s.Load("", "")
	return s
}

// Close cancels the store's collection subscription.
func (s *Store) Close() {
	if s.cancelSrc != nil {
		s.cancelSrc()
		s.cancelSrc = nil
	}
}

// State returns a copy of the current filter state.
func (s *Store) State() FilterState {
	st := s.state
	st.Payload = make(map[string]string, len(s.state.Payload))
	for k, v := range s.state.Payload {
		st.Payload[k] = v
	}
	st.Results = make([]entity.Business, len(s.state.Results))
	copy(st.Results, s.state.Results)
	return st
}

// EntityCount returns the size of the unfiltered source collection.
func (s *Store) EntityCount() int {
	return len(s.src.Records())
}

// Load merges an optional filter pair into the payload and recomputes the
// cached results from the source collection. Pass empty strings to
// recompute with the payload as-is.
func (s *Store) Load(field, value string) {
	s.state.Loading = true
	if field != "" {
		s.UpdateFilter(field, value)
	}
	s.state.Results = s.filtered()
	s.state.Total = len(s.state.Results)
	s.state.Loading = false
	s.notify()
}

// UpdateFilter sets or clears a single column filter. An empty value
// removes the filter for that column.
func (s *Store) UpdateFilter(field, value string) {
	if field == "" {
		return
	}
	if value != "" {
		s.state.Payload[field] = value
	} else {
		delete(s.state.Payload, field)
	}
	s.state.IsActive = len(s.state.Payload) > 0
}

// ClearAllFilters drops every active filter. The result set is refreshed on
// the next Load.
func (s *Store) ClearAllFilters() {
	s.state.Payload = make(map[string]string)
	s.state.IsActive = false
}

// Headers returns the display headers, restricted to the given columns when
// any are named. The filterable columns get their options computed from
// every record in the collection; duplicates are kept, deduplication is the
// view's concern.
func (s *Store) Headers(columns ...string) []Header {
	headers := baseHeaders(columns...)
	records := s.src.Records()
	for i := range headers {
		switch headers[i].Key {
		case ColName, ColNumber, ColType, ColStatus:
			headers[i].Options = s.options(headers[i].Key, records)
		}
	}
	return headers
}

// Subscribe registers fn to run after every recomputation of the result
// set. The returned func cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		delete(s.subs, id)
	}
}

func (s *Store) notify() {
	for _, fn := range s.subs {
		fn()
	}
}

func (s *Store) filtered() []entity.Business {
	records := s.src.Records()
	if len(s.state.Payload) == 0 {
		return records
	}
	out := make([]entity.Business, 0, len(records))
	for _, b := range records {
		if s.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// matches applies every active filter as a case-insensitive substring test
// against the column's classified display value.
func (s *Store) matches(b entity.Business) bool {
	for col, want := range s.state.Payload {
		have := strings.ToLower(s.ColumnValue(b, col))
		if !strings.Contains(have, strings.ToLower(want)) {
			return false
		}
	}
	return true
}

// ColumnValue returns the classified display value of a record for a
// column, or "" for columns with no display value.
func (s *Store) ColumnValue(b entity.Business, col string) string {
	switch col {
	case ColName:
		return s.classifier.Name(b)
	case ColNumber:
		return s.classifier.Number(b)
	case ColType:
		return s.classifier.Type(b)
	case ColStatus:
		return s.classifier.Status(b)
	default:
		return ""
	}
}

func (s *Store) options(col string, records []entity.Business) []Option {
	opts := make([]Option, 0, len(records))
	for _, b := range records {
		v := s.ColumnValue(b, col)
		opts = append(opts, Option{Label: v, Value: v})
	}
	return opts
}
