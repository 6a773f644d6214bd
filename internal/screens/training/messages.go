package training

import "github.com/abhisek/dojo/internal/engine"

// stateChangedMsg carries a snapshot from the engine subscription. ok is
// false once the channel is closed.
type stateChangedMsg struct {
	from     <-chan engine.Snapshot
	snapshot engine.Snapshot
	ok       bool
}

// startFailedMsg is sent when the engine refuses to start the kata.
type startFailedMsg struct {
	Err error
}
