package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/rezkam/listly/internal/ptr"
)

// Field length limits, counted in characters after trimming.
const (
	MaxTitleLength       = 120
	MaxCategoryLength    = 40
	MaxDescriptionLength = 500
	MaxTextLength        = 200
	MaxAssigneeLength    = 60
	MaxStatusInputLength = 20
)

// Title is a validated list title value object (1-120 characters).
type Title struct {
	value string
}

// NewTitle creates a new Title, trimming and validating the input.
func NewTitle(s string) (Title, error) {
	s = strings.TrimSpace(s)

	if s == "" {
		return Title{}, ErrTitleRequired
	}

	if utf8.RuneCountInString(s) > MaxTitleLength {
		return Title{}, ErrTitleTooLong
	}

	return Title{value: s}, nil
}

// String returns the title value.
func (t Title) String() string {
	return t.value
}

// NewCategory trims the category and substitutes DefaultCategory when it is
// nil or blank.
func NewCategory(s *string) (string, error) {
	c := strings.TrimSpace(ptr.Deref(s, ""))
	if c == "" {
		return DefaultCategory, nil
	}
	if utf8.RuneCountInString(c) > MaxCategoryLength {
		return "", ErrCategoryTooLong
	}
	return c, nil
}

// NewDescription trims an optional description; blank becomes nil.
func NewDescription(s *string) (*string, error) {
	return optionalText(s, MaxDescriptionLength, ErrDescriptionTooLong)
}

// NewItemText trims and validates item text (1-200 characters).
func NewItemText(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", ErrTextRequired
	}
	if utf8.RuneCountInString(s) > MaxTextLength {
		return "", ErrTextTooLong
	}
	return s, nil
}

// NewAssignee trims an optional assignee name; blank becomes nil.
func NewAssignee(s *string) (*string, error) {
	return optionalText(s, MaxAssigneeLength, ErrAssigneeTooLong)
}

// NewItemStatus validates the raw input length and normalizes it.
// nil or blank input yields DefaultItemStatus.
func NewItemStatus(s *string) (ItemStatus, error) {
	raw := strings.TrimSpace(ptr.Deref(s, ""))
	if utf8.RuneCountInString(raw) > MaxStatusInputLength {
		return "", ErrStatusTooLong
	}
	return ParseItemStatus(raw), nil
}

func optionalText(s *string, maxLen int, tooLong error) (*string, error) {
	if s == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > maxLen {
		return nil, tooLong
	}
	return &v, nil
}
