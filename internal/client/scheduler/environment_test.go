package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManualState_Transitions(t *testing.T) {
	state := NewManualState(false)
	assert.False(t, state.Online())

	ch, cancel := state.Subscribe()
	defer cancel()

	// Повтор того же значения не является переходом
	state.Set(false)
	select {
	case v := <-ch:
		t.Fatalf("unexpected transition %v", v)
	default:
	}

	state.Set(true)
	assert.True(t, <-ch)
	assert.True(t, state.Visible())
}

func TestManualState_SlowSubscriberGetsLatest(t *testing.T) {
	state := NewManualState(false)
	ch, cancel := state.Subscribe()

	state.Set(true)
	state.Set(false)
	state.Set(true)

	assert.True(t, <-ch)

	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}

func TestStaticVisibility(t *testing.T) {
	v := StaticVisibility{}
	assert.True(t, v.Visible())

	ch, cancel := v.Subscribe()
	cancel()
	cancel()
	_, ok := <-ch
	assert.False(t, ok)
}
