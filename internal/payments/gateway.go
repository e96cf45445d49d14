package payments

import "context"

// Gateway charges a single payment method.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

type ChargeRequest struct {
	OrderID       string
	OrderNumber   string
	AmountCents   int64
	Currency      string
	CustomerName  string
	CustomerEmail string
	CardLast4     string
}

type ChargeResult struct {
	TransactionID string
	Method        string
}
