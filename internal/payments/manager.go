package payments

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Manager routes charges to the gateway registered for a payment method.
type Manager struct {
	mu       sync.RWMutex
	gateways map[string]Gateway
}

func NewManager() *Manager {
	return &Manager{gateways: make(map[string]Gateway)}
}

func (m *Manager) RegisterGateway(method string, gateway Gateway) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gateways[method] = gateway
}

// Methods lists the registered payment methods in sorted order.
func (m *Manager) Methods() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.gateways))
	for name := range m.gateways {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (m *Manager) Charge(ctx context.Context, method string, req ChargeRequest) (ChargeResult, error) {
	m.mu.RLock()
	gateway, ok := m.gateways[method]
	m.mu.RUnlock()
	if !ok {
		return ChargeResult{}, fmt.Errorf("gateway not registered: %s", method)
	}
	if req.AmountCents <= 0 {
		return ChargeResult{}, fmt.Errorf("invalid amount: %d", req.AmountCents)
	}
	res, err := gateway.Charge(ctx, req)
	if err != nil {
		return ChargeResult{}, err
	}
	res.Method = method
	return res, nil
}
