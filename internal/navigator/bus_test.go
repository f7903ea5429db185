package navigator

import "testing"

func TestBus_OrderAndUnsubscribe(t *testing.T) {
	b := NewBus()
	var calls []string
	unA := b.Subscribe(EventScroll, func() { calls = append(calls, "a") })
	b.Subscribe(EventScroll, func() { calls = append(calls, "b") })
	b.Subscribe(EventResize, func() { calls = append(calls, "r") })

	b.Emit(EventScroll)
	if got := len(calls); got != 2 || calls[0] != "a" || calls[1] != "b" {
		t.Fatalf("expected [a b], got %v", calls)
	}

	unA()
	unA()
	calls = nil
	b.Emit(EventScroll)
	b.Emit(EventResize)
	if len(calls) != 2 || calls[0] != "b" || calls[1] != "r" {
		t.Errorf("expected [b r], got %v", calls)
	}
}
