package audio

import (
	"bytes"
	"errors"
	"testing"

	"github.com/abhisek/dojo/internal/kata"
)

func testVocab(t *testing.T) kata.Vocabulary {
	t.Helper()
	v, err := kata.NewVocabulary(
		kata.MoveSpec{Move: "Punch"},
		kata.MoveSpec{Move: "Kiai", Shout: true},
	)
	if err != nil {
		t.Fatal(err)
	}
	return v
}

func TestBellRingsOnCues(t *testing.T) {
	var buf bytes.Buffer
	b := NewBell(&buf, testVocab(t), nil)

	b.PlayAmbience()
	b.PlayMove("Punch")
	if buf.Len() != 0 {
		t.Fatalf("expected silence for ordinary moves, got %q", buf.String())
	}

	b.PlayMove("Kiai")
	b.PlaySuccess()
	b.PlayFail()
	if got := buf.String(); got != "\a\a\a\a" {
		t.Fatalf("expected 4 bells, got %q", got)
	}
}

type failingWriter struct{ calls int }

func (f *failingWriter) Write([]byte) (int, error) {
	f.calls++
	return 0, errors.New("closed")
}

func TestBellSwallowsWriteErrors(t *testing.T) {
	w := &failingWriter{}
	b := NewBell(w, testVocab(t), nil)
	b.PlaySuccess()
	if w.calls != 1 {
		t.Fatalf("expected ringing to stop after the first failure, got %d writes", w.calls)
	}
}
