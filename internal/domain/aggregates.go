package domain

import (
	"slices"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rezkam/listly/internal/ptr"
)

// List is the aggregate root: one document per list, items embedded inline.
//
// Items have no existence outside their list. Every item mutation is a
// read-modify-write of the whole List, and deleting the List deletes its items.
type List struct {
	ID          string
	Title       string
	Category    string
	TargetDate  *civil.Date // Optional, calendar date without time
	Description *string     // nil when blank or absent

	// Set by the store: CreatedAt once on insert, UpdatedAt on every save.
	CreatedAt time.Time
	UpdatedAt time.Time

	// Insertion order; never re-sorted.
	Items []Item
}

// Item is an entity within the List aggregate.
type Item struct {
	ID        string
	Text      string
	Completed bool
	Assignee  *string // nil when blank or absent
	Status    ItemStatus
	Priority  int // Always within [MinPriority, MaxPriority]
}

// FindItem returns a pointer into l.Items for the item with the given ID.
// The pointer stays valid until Items is modified.
func (l *List) FindItem(itemID string) (*Item, bool) {
	i := slices.IndexFunc(l.Items, func(it Item) bool { return it.ID == itemID })
	if i < 0 {
		return nil, false
	}
	return &l.Items[i], true
}

// AppendItem adds an item at the end of the sequence.
func (l *List) AppendItem(item Item) {
	l.Items = append(l.Items, item)
}

// RemoveItem deletes the item with the given ID.
// Returns false if no such item exists.
func (l *List) RemoveItem(itemID string) bool {
	n := len(l.Items)
	l.Items = slices.DeleteFunc(l.Items, func(it Item) bool { return it.ID == itemID })
	return len(l.Items) != n
}

// Clone returns a deep copy so callers can mutate the result without
// touching the original (used by in-process stores).
func (l *List) Clone() *List {
	c := *l
	c.TargetDate = ptr.Clone(l.TargetDate)
	c.Description = ptr.Clone(l.Description)
	c.Items = make([]Item, len(l.Items))
	for i, it := range l.Items {
		it.Assignee = ptr.Clone(it.Assignee)
		c.Items[i] = it
	}
	return &c
}
