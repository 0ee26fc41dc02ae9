package a

import (
	"time"
	clock "time"
)

type List struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

func stampLocal(l *List) {
	l.CreatedAt = time.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func stampUTC(l *List) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	l.CreatedAt = now
	l.UpdatedAt = now
}

func aliased() time.Time {
	return clock.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

func chainingGood() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func localThenUTC() time.Time {
	t := time.Now() // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
	return t.UTC()
}

func injected(now func() time.Time) time.Time {
	return now()
}

func methodValue() func() time.Time {
	return time.Now
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Now() //nolint:timeutc
}

func nolintList() {
	_ = time.Now() //nolint:errcheck,timeutc
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want "time.Now\\(\\) should be followed by .UTC\\(\\) for timezone consistency"
}

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Time{} }

func otherNow(c fakeClock) time.Time {
	return c.Now()
}
