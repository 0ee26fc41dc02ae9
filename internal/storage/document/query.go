package document

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rezkam/listly/internal/domain"
)

// Predicate selects lists in a scan.
type Predicate func(*domain.List) bool

// All matches every list.
func All() Predicate {
	return func(*domain.List) bool { return true }
}

// CategoryEquals matches lists whose category equals category, ignoring case.
func CategoryEquals(category string) Predicate {
	return func(l *domain.List) bool {
		return strings.EqualFold(l.Category, category)
	}
}

// TitleContains matches lists whose title contains query, ignoring case.
// The query is a literal substring, not a pattern.
func TitleContains(query string) Predicate {
	q := strings.ToLower(query)
	return func(l *domain.List) bool {
		return strings.Contains(strings.ToLower(l.Title), q)
	}
}

// Compare orders lists by target date ascending with undated lists first,
// then by creation time descending, then by ID for a stable total order.
func Compare(a, b *domain.List) int {
	switch {
	case a.TargetDate == nil && b.TargetDate != nil:
		return -1
	case a.TargetDate != nil && b.TargetDate == nil:
		return 1
	case a.TargetDate != nil && b.TargetDate != nil:
		if c := a.TargetDate.Compare(*b.TargetDate); c != 0 {
			return c
		}
	}
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Select filters lists with match and returns them in canonical order.
// The input slice is not modified.
func Select(lists []*domain.List, match Predicate) []*domain.List {
	out := make([]*domain.List, 0, len(lists))
	for _, l := range lists {
		if match(l) {
			out = append(out, l)
		}
	}
	slices.SortFunc(out, Compare)
	return out
}
