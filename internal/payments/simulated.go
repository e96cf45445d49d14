package payments

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Simulated stands in for a real processor: it waits Delay and approves
// every charge. Cancelling ctx aborts the wait.
type Simulated struct {
	Delay time.Duration
}

func NewSimulated(delay time.Duration) *Simulated {
	return &Simulated{Delay: delay}
}

func (s *Simulated) Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error) {
	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ChargeResult{}, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return ChargeResult{}, err
	}
	return ChargeResult{TransactionID: "sim_" + uuid.NewString()}, nil
}
