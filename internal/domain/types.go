package domain

import "cloud.google.com/go/civil"

// ListSummary is the projection returned by list queries: the list fields
// without timestamps or items.
type ListSummary struct {
	ID          string
	Title       string
	Category    string
	TargetDate  *civil.Date
	Description *string
}

// Summary projects the list into a ListSummary.
func (l *List) Summary() ListSummary {
	return ListSummary{
		ID:          l.ID,
		Title:       l.Title,
		Category:    l.Category,
		TargetDate:  l.TargetDate,
		Description: l.Description,
	}
}
