package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParseItemStatus_Idempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "input")

		once := ParseItemStatus(s)
		twice := ParseItemStatus(string(once))

		if once != twice {
			t.Fatalf("ParseItemStatus not idempotent: %q -> %q -> %q", s, once, twice)
		}
		if !once.Valid() {
			t.Fatalf("ParseItemStatus(%q) = %q, not a canonical status", s, once)
		}
	})
}

func TestParseItemStatus_CanonicalUnchanged(t *testing.T) {
	for _, s := range []ItemStatus{ItemStatusIdea, ItemStatusPorComprar, ItemStatusComprado} {
		assert.Equal(t, s, ParseItemStatus(string(s)))
	}
}

func TestParseItemStatus_UnknownResolvesToIdea(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[a-z]{1,12}`).
			Filter(func(s string) bool {
				_, known := itemStatusAliases[s]
				return !known
			}).
			Draw(t, "unknown")

		if got := ParseItemStatus(s); got != ItemStatusIdea {
			t.Fatalf("ParseItemStatus(%q) = %q, want %q", s, got, ItemStatusIdea)
		}
	})
}

func TestNormalizePriority_AlwaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.Int().Draw(t, "priority")

		got := NormalizePriority(&p)
		if got < MinPriority || got > MaxPriority {
			t.Fatalf("NormalizePriority(%d) = %d, out of range", p, got)
		}
		if p >= MinPriority && p <= MaxPriority && got != p {
			t.Fatalf("NormalizePriority(%d) = %d, in-range values must be kept", p, got)
		}
	})
}

func TestNormalizePriority_Defaults(t *testing.T) {
	assert.Equal(t, DefaultPriority, NormalizePriority(nil))

	low, high := -7, 99
	assert.Equal(t, MinPriority, NormalizePriority(&low))
	assert.Equal(t, MaxPriority, NormalizePriority(&high))
}
