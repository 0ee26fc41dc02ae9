package domain

import "strings"

// ItemStatus is the purchase state of an item.
// Closed enum: every stored item carries one of the three constants.
type ItemStatus string

const (
	ItemStatusIdea       ItemStatus = "Idea"
	ItemStatusPorComprar ItemStatus = "Por comprar"
	ItemStatusComprado   ItemStatus = "Comprado"
)

// DefaultItemStatus is used for blank or unrecognized input.
const DefaultItemStatus = ItemStatusIdea

// itemStatusAliases maps lower-cased input to its canonical status.
var itemStatusAliases = map[string]ItemStatus{
	"idea":        ItemStatusIdea,
	"por comprar": ItemStatusPorComprar,
	"porcomprar":  ItemStatusPorComprar,
	"comprado":    ItemStatusComprado,
}

// ParseItemStatus normalizes free-form input into an ItemStatus.
// Matching is case-insensitive and ignores surrounding whitespace.
// Unknown values resolve to DefaultItemStatus, never to an error.
func ParseItemStatus(s string) ItemStatus {
	if status, ok := itemStatusAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return status
	}
	return DefaultItemStatus
}

// Valid reports whether s is one of the canonical values.
func (s ItemStatus) Valid() bool {
	switch s {
	case ItemStatusIdea, ItemStatusPorComprar, ItemStatusComprado:
		return true
	default:
		return false
	}
}

// Item priority bounds.
const (
	MinPriority     = 1
	MaxPriority     = 3
	DefaultPriority = 2
)

// NormalizePriority clamps p into [MinPriority, MaxPriority].
// A nil priority yields DefaultPriority.
func NormalizePriority(p *int) int {
	if p == nil {
		return DefaultPriority
	}
	return max(MinPriority, min(MaxPriority, *p))
}

// DefaultCategory replaces a blank category.
const DefaultCategory = "General"
