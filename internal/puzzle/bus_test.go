package puzzle

import (
	"reflect"
	"testing"
)

func TestBusUpdateRunsBeforeReact(t *testing.T) {
	b := NewBus()
	var order []string

	// Registered react-first on purpose; phase must win over
	// registration order.
	b.Subscribe(PhaseReact, func(Event) { order = append(order, "react") })
	b.Subscribe(PhaseUpdate, func(Event) { order = append(order, "update") })

	b.Publish(PartFreed{Part: 1})

	want := []string{"update", "react"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("dispatch order = %v, want %v", order, want)
	}
}

func TestBusRegistrationOrderWithinPhase(t *testing.T) {
	b := NewBus()
	var order []string

	b.Subscribe(PhaseUpdate, func(Event) { order = append(order, "first") })
	b.Subscribe(PhaseUpdate, func(Event) { order = append(order, "second") })

	b.Publish(PartFreed{Part: 1})

	want := []string{"first", "second"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("dispatch order = %v, want %v", order, want)
	}
}

func TestBusNestedPublishDeferred(t *testing.T) {
	b := NewBus()
	var order []string

	b.Subscribe(PhaseUpdate, func(e Event) {
		switch e.(type) {
		case PartFreed:
			order = append(order, "update:freed")
			b.Publish(GameWon{})
		case GameWon:
			order = append(order, "update:won")
		}
	})
	b.Subscribe(PhaseReact, func(e Event) {
		switch e.(type) {
		case PartFreed:
			order = append(order, "react:freed")
		case GameWon:
			order = append(order, "react:won")
		}
	})

	b.Publish(PartFreed{Part: 1})

	// The nested event must wait for the current one to fan out to
	// every handler.
	want := []string{"update:freed", "react:freed", "update:won", "react:won"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("dispatch order = %v, want %v", order, want)
	}
}

func TestBusResetDropsQueuedEvents(t *testing.T) {
	b := NewBus()
	delivered := 0

	b.Subscribe(PhaseUpdate, func(e Event) {
		if _, ok := e.(PartFreed); ok {
			delivered++
			if delivered == 1 {
				b.Publish(PartFreed{Part: 2})
				b.Reset()
			}
		}
	})

	b.Publish(PartFreed{Part: 1})

	if delivered != 1 {
		t.Errorf("delivered = %d events, want 1 (queued event dropped by reset)", delivered)
	}
}
