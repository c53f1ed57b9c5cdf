package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatchWithoutListener(t *testing.T) {
	d := NewDispatcher()
	assert.False(t, d.Dispatch(NaturalDrop{Cell: true}))
}

func TestDispatchReplacesListener(t *testing.T) {
	d := NewDispatcher()
	var first, second int
	d.On(EventUpdate, func(*Event) { first++ })
	d.On(EventUpdate, func(*Event) { second++ })

	d.Dispatch(Update{})

	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestDispatchPreventDefault(t *testing.T) {
	d := NewDispatcher()
	var got *Event
	d.On(EventNaturalDrop, func(e *Event) {
		got = e
		e.PreventDefault()
	})

	assert.True(t, d.Dispatch(NaturalDrop{Cell: true}))
	assert.Equal(t, EventNaturalDrop, got.Name)
	assert.Equal(t, NaturalDrop{Cell: true}, got.Payload)
	assert.True(t, got.DefaultPrevented())
}

func TestDispatchOff(t *testing.T) {
	d := NewDispatcher()
	calls := 0
	d.On(EventEnd, func(e *Event) {
		calls++
		e.PreventDefault()
	})
	assert.True(t, d.Dispatch(Ended{}))

	d.Off(EventEnd)
	assert.False(t, d.Dispatch(Ended{}))

	d.On(EventEnd, func(e *Event) { calls++ })
	d.On(EventEnd, nil)
	assert.False(t, d.Dispatch(Ended{}))
	assert.Equal(t, 1, calls)
}
