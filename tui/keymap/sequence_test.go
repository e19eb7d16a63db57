package keymap

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/key"
)

func TestSequenceMatching(t *testing.T) {
	gg := key.NewBinding(key.WithKeys("gg"))
	zo := key.NewBinding(key.WithKeys("zo"))

	if !Matches("gg", gg) {
		t.Error("buffer 'gg' should match the gg binding")
	}
	if Matches("g", gg) {
		t.Error("buffer 'g' should not match the gg binding")
	}
	if !IsPrefix("g", gg) {
		t.Error("'g' should be a prefix of 'gg'")
	}
	if IsPrefix("x", gg) {
		t.Error("'x' should not be a prefix of 'gg'")
	}
	if !IsPrefixOfAny("z", gg, zo) {
		t.Error("'z' should be a prefix of 'zo'")
	}

	idx, ok := MatchesAny("zo", gg, zo)
	if !ok || idx != 1 {
		t.Errorf("MatchesAny('zo') = (%d, %v), want (1, true)", idx, ok)
	}
}

func TestSequenceProcessKey(t *testing.T) {
	seq := NewSequenceState()
	gg := key.NewBinding(key.WithKeys("gg"))

	result, _ := seq.ProcessKey("g", gg)
	if result != SequencePending {
		t.Errorf("first 'g' should be pending, got %v", result)
	}

	result, idx := seq.ProcessKey("g", gg)
	if result != SequenceMatch || idx != 0 {
		t.Errorf("second 'g' should match, got (%v, %d)", result, idx)
	}
	seq.Clear()

	result, _ = seq.ProcessKey("x", gg)
	if result != SequenceNone {
		t.Errorf("'x' should not match or pend, got %v", result)
	}
}

func TestSequenceTimeout(t *testing.T) {
	seq := NewSequenceStateWithTimeout(10 * time.Millisecond)
	gg := key.NewBinding(key.WithKeys("gg"))

	seq.ProcessKey("g", gg)
	time.Sleep(30 * time.Millisecond)

	// Buffer cleared by timeout, so this is a fresh 'g'
	result, _ := seq.ProcessKey("g", gg)
	if result != SequencePending {
		t.Errorf("after timeout 'g' should be pending again, got %v", result)
	}
}

func TestSequenceClear(t *testing.T) {
	seq := NewSequenceState()
	seq.UpdateKey("g")

	if !seq.IsPending() {
		t.Error("buffer should be pending after a key")
	}
	seq.Clear()
	if seq.IsPending() {
		t.Error("buffer should be empty after Clear()")
	}
}
