package events

import "testing"

func TestSubscribeReceivesPublish(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()

	b.Publish("create", "482913")

	select {
	case msg := <-ch:
		want := `{"op":"create","request_id":"482913"}`
		if msg != want {
			t.Errorf("expected %s, got %s", want, msg)
		}
	default:
		t.Fatal("expected a message on the channel")
	}
}

func TestMultipleSubscribers(t *testing.T) {
	b := NewBroker()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()

	b.Publish("update", "100001")

	for i, ch := range []chan string{ch1, ch2} {
		select {
		case <-ch:
		default:
			t.Errorf("subscriber %d did not receive the event", i)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	b.Publish("delete", "100001")
}

func TestSlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe()

	// Fill the buffer and keep publishing; extra events are dropped.
	for i := 0; i < 100; i++ {
		b.Publish("create", "100001")
	}

	count := 0
	for {
		select {
		case <-ch:
			count++
			continue
		default:
		}
		break
	}
	if count == 0 || count > 16 {
		t.Errorf("expected between 1 and 16 buffered events, got %d", count)
	}
}
