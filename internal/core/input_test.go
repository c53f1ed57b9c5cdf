package core

import (
	"reflect"
	"testing"
)

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionMoveLeft)
	f.Set(ActionNone)
	f.Set(ActionMoveLeft)
	f.Set(ActionHardDrop)

	expected := []Action{ActionMoveLeft, ActionMoveLeft, ActionHardDrop}
	if got := f.Actions(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Actions() = %v, expected %v", got, expected)
	}
	if !f.Has(ActionHardDrop) {
		t.Error("Has(HardDrop) should be true")
	}
	if f.Has(ActionHold) {
		t.Error("Has(Hold) should be false")
	}
}

func TestInputFrameClear(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionRotateRight)
	f.Clear()

	if !f.Empty() {
		t.Errorf("frame should be empty after Clear, got %v", f.Actions())
	}
}

func TestActionString(t *testing.T) {
	if ActionRotateLeft.String() != "RotateLeft" {
		t.Errorf("String() = %q", ActionRotateLeft.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action String() = %q", Action(99).String())
	}
}

func TestParseColor(t *testing.T) {
	for c := ColorDefault; c <= ColorDim; c++ {
		got, ok := ParseColor(c.String())
		if !ok || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, ok)
		}
	}
	if _, ok := ParseColor("mauve"); ok {
		t.Error("ParseColor should reject unknown names")
	}
}
