package scoring

import (
	"context"
	"fmt"
)

// CounterStore is the persistence needed by the daily limiter: a
// per-date call counter with an atomic increment.
type CounterStore interface {
	GetCallCount(ctx context.Context, date string) (int, error)
	IncrementCallCount(ctx context.Context, date string) (int, error)
}

// Decision is the limiter's answer for one prospective call.
type Decision struct {
	Allowed bool
	Current int
	Limit   int
}

// Limiter caps metered LLM calls per UTC day. Only OpenAI is metered;
// other providers pass through unconditionally.
type Limiter struct {
	store CounterStore
	limit int
}

func NewLimiter(store CounterStore, dailyLimit int) *Limiter {
	return &Limiter{store: store, limit: dailyLimit}
}

// Allow reports whether one more call may be made today, incrementing
// the persistent counter when it is. The stored counter survives
// process restarts, so redeploys cannot reset the day's budget.
func (l *Limiter) Allow(ctx context.Context, provider, date string) (Decision, error) {
	if provider != "openai" {
		return Decision{Allowed: true, Limit: l.limit}, nil
	}

	current, err := l.store.GetCallCount(ctx, date)
	if err != nil {
		return Decision{}, fmt.Errorf("reading call count: %w", err)
	}

	if current >= l.limit {
		return Decision{Allowed: false, Current: current, Limit: l.limit}, nil
	}

	updated, err := l.store.IncrementCallCount(ctx, date)
	if err != nil {
		return Decision{}, fmt.Errorf("incrementing call count: %w", err)
	}

	return Decision{Allowed: true, Current: updated, Limit: l.limit}, nil
}
