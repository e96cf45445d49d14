package messaging

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogPublisherWritesEvent(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	pub := NewLogPublisher(zap.New(core).Sugar())

	if err := pub.PublishEvent(context.Background(), DefaultOrderTopic, "o1", OrderPlaced{OrderID: "o1"}); err != nil {
		t.Fatalf("PublishEvent: %v", err)
	}
	entries := logs.FilterMessage("event published").All()
	if len(entries) != 1 {
		t.Fatalf("expected one log entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["topic"] != "orders.placed" || fields["key"] != "o1" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
