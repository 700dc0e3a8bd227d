// Package source holds the business collection the table is driven by: an
// externally owned, ordered sequence of records observable for changes, plus
// a decoder for raw affiliations payloads.
package source

import "github.com/affscope/affscope/pkg/entity"

// Collection is an ordered sequence of business records. Subscribers are
// notified synchronously after every change to the sequence.
type Collection interface {
	Records() []entity.Business
	Subscribe(fn func()) (cancel func())
}

// ListCollection is a Collection backed by a slice. Replace is the single
// writer. Like the rest of the table machinery it follows the
// single-threaded UI model and is not safe for concurrent use.
type ListCollection struct {
	records []entity.Business
	subs    map[int]func()
	nextID  int
}

func NewListCollection(records []entity.Business) *ListCollection {
	return &ListCollection{
		records: records,
		subs:    make(map[int]func()),
	}
}

// Records returns a copy of the current sequence.
func (c *ListCollection) Records() []entity.Business {
	out := make([]entity.Business, len(c.records))
	copy(out, c.records)
	return out
}

// Replace swaps the whole sequence and notifies subscribers.
func (c *ListCollection) Replace(records []entity.Business) {
	c.records = records
	for _, fn := range c.subs {
		fn()
	}
}

// Subscribe registers fn to run after every Replace. The returned func
// cancels the subscription.
func (c *ListCollection) Subscribe(fn func()) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() {
		delete(c.subs, id)
	}
}
