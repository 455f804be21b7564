package amqp

import (
	"testing"
	"time"
)

func TestTransactionSyncMessageRoundTrip(t *testing.T) {
	msg := NewTransactionSyncMessage("1700000000000", ActionCreate)
	if msg.ID != "1700000000000" || msg.Action != ActionCreate {
		t.Fatalf("message = %+v", msg)
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not set")
	}

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() failed: %v", err)
	}

	got, err := TransactionSyncMessageFromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() failed: %v", err)
	}
	if got.ID != msg.ID || got.Action != msg.Action {
		t.Errorf("round trip mismatch: %+v vs %+v", got, msg)
	}
	if !got.Timestamp.Truncate(time.Millisecond).Equal(msg.Timestamp.Truncate(time.Millisecond)) {
		t.Errorf("timestamp drifted: %v vs %v", got.Timestamp, msg.Timestamp)
	}
}

func TestTransactionSyncMessageFromJSONInvalid(t *testing.T) {
	if _, err := TransactionSyncMessageFromJSON([]byte("{bad")); err == nil {
		t.Error("FromJSON() accepted invalid JSON")
	}
}
