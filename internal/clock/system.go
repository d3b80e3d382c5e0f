package clock

import (
	"context"
	"time"
)

type SystemClock struct{}

func (SystemClock) Now(context.Context) time.Time {
	return time.Now().UTC()
}

// Fixed returns a clock pinned to t. Test helper.
func Fixed(t time.Time) Clock { return fixedClock{t: t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now(context.Context) time.Time { return c.t }
