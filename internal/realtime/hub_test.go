package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/admitpath-backend/internal/pkg/logger"
)

func hubTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger.New: %v", err)
	}
	t.Cleanup(log.Sync)
	return log
}

func recvMessage(t *testing.T, ch <-chan Message, timeout time.Duration) Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for message")
	}
	return Message{}
}

func TestHubBroadcastOrderingAndReconnect(t *testing.T) {
	hub := NewHub(hubTestLogger(t))
	userID := uuid.New()
	channel := UserChannel(userID)

	clientA := hub.NewClient(userID)
	hub.Subscribe(clientA, channel)

	hub.Broadcast(Message{Channel: channel, Event: EventSubmissionReviewed, Data: map[string]any{"seq": 1}})
	hub.Broadcast(Message{Channel: channel, Event: EventPhaseCompleted, Data: map[string]any{"seq": 2}})

	first := recvMessage(t, clientA.Outbound, time.Second)
	second := recvMessage(t, clientA.Outbound, time.Second)
	if first.Event != EventSubmissionReviewed {
		t.Fatalf("first event: want=%s got=%s", EventSubmissionReviewed, first.Event)
	}
	if second.Event != EventPhaseCompleted {
		t.Fatalf("second event: want=%s got=%s", EventPhaseCompleted, second.Event)
	}

	hub.CloseClient(clientA)
	select {
	case _, ok := <-clientA.Outbound:
		if ok {
			t.Fatalf("clientA outbound should be closed after disconnect")
		}
	case <-time.After(500 * time.Millisecond):
		t.Fatalf("timed out waiting for clientA channel close")
	}

	clientB := hub.NewClient(userID)
	hub.Subscribe(clientB, channel)
	hub.Broadcast(Message{Channel: channel, Event: EventPhaseUnlocked, Data: map[string]any{"seq": 3}})
	reconnect := recvMessage(t, clientB.Outbound, time.Second)
	if reconnect.Event != EventPhaseUnlocked {
		t.Fatalf("reconnect event: want=%s got=%s", EventPhaseUnlocked, reconnect.Event)
	}
}

func TestHubChannelIsolation(t *testing.T) {
	hub := NewHub(hubTestLogger(t))

	userA := uuid.New()
	userB := uuid.New()
	clientA := hub.NewClient(userA)
	clientB := hub.NewClient(userB)
	hub.Subscribe(clientA, UserChannel(userA))
	hub.Subscribe(clientB, UserChannel(userB))

	hub.Broadcast(Message{Channel: UserChannel(userA), Event: EventPhaseUnlocked})

	got := recvMessage(t, clientA.Outbound, time.Second)
	if got.Event != EventPhaseUnlocked {
		t.Fatalf("clientA event: want=%s got=%s", EventPhaseUnlocked, got.Event)
	}
	select {
	case msg := <-clientB.Outbound:
		t.Fatalf("clientB should not receive another user's event, got=%s", msg.Event)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestLocalBusDeliversToHub(t *testing.T) {
	hub := NewHub(hubTestLogger(t))
	bus := NewLocalBus(hub)

	userID := uuid.New()
	client := hub.NewClient(userID)
	hub.Subscribe(client, UserChannel(userID))

	if err := bus.Publish(context.Background(), Message{Channel: UserChannel(userID), Event: EventSubmissionReviewed}); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	got := recvMessage(t, client.Outbound, time.Second)
	if got.Event != EventSubmissionReviewed {
		t.Fatalf("event: want=%s got=%s", EventSubmissionReviewed, got.Event)
	}
}
