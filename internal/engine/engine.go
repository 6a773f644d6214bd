// Package engine runs the kata state machine: one session at a time, every
// mutation serialized on a single loop goroutine.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/dojo/internal/audio"
	"github.com/abhisek/dojo/internal/kata"
	"github.com/abhisek/dojo/internal/store"
	"github.com/abhisek/dojo/internal/wisdom"
)

var (
	// ErrClosed is returned by calls made after Close.
	ErrClosed = errors.New("engine closed")

	// ErrBusy is returned by StartKata while a kata is being prepared or
	// performed. The call has no effect.
	ErrBusy = errors.New("a kata is already in progress")
)

// Timing holds the engine's delays.
type Timing struct {
	PrepareDelay    time.Duration
	LastMoveClear   time.Duration
	BreathTick      time.Duration
	BreathIncrement int
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		PrepareDelay:    2 * time.Second,
		LastMoveClear:   400 * time.Millisecond,
		BreathTick:      50 * time.Millisecond,
		BreathIncrement: 5,
	}
}

// Journal records finished attempts.
type Journal interface {
	AppendAttempt(ctx context.Context, data store.AttemptEventData) error
}

// Options configures an Engine. Ruleset is required.
type Options struct {
	Ruleset *kata.Ruleset
	Audio   audio.Player
	Wisdom  wisdom.Provider
	Journal Journal
	Clock   Clock
	Logger  *zap.Logger
	Timing  Timing
}

// Engine owns one game session.
type Engine struct {
	ruleset *kata.Ruleset
	audio   audio.Player
	wisdom  wisdom.Provider
	journal Journal
	clock   Clock
	log     *zap.Logger
	timing  Timing

	events  chan func()
	done    chan struct{}
	stopped chan struct{}
	helpers sync.WaitGroup
	once    sync.Once

	// Loop-owned.
	state         Snapshot
	timers        *timerSet
	sessionCtx    context.Context
	cancelSession context.CancelFunc
	performedAt   time.Time
	subs          map[int]chan Snapshot
	nextSub       int
}

// New creates an Engine in the Idle phase and starts its loop.
func New(opts Options) (*Engine, error) {
	if opts.Ruleset == nil {
		return nil, fmt.Errorf("engine: %w", kata.ErrInvalidRuleset)
	}
	if opts.Audio == nil {
		opts.Audio = audio.Nop{}
	}
	if opts.Wisdom == nil {
		opts.Wisdom = &wisdom.Offline{}
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	def := DefaultTiming()
	if opts.Timing.PrepareDelay <= 0 {
		opts.Timing.PrepareDelay = def.PrepareDelay
	}
	if opts.Timing.LastMoveClear <= 0 {
		opts.Timing.LastMoveClear = def.LastMoveClear
	}
	if opts.Timing.BreathTick <= 0 {
		opts.Timing.BreathTick = def.BreathTick
	}
	if opts.Timing.BreathIncrement <= 0 {
		opts.Timing.BreathIncrement = def.BreathIncrement
	}

	e := &Engine{
		ruleset: opts.Ruleset,
		audio:   opts.Audio,
		wisdom:  opts.Wisdom,
		journal: opts.Journal,
		clock:   opts.Clock,
		log:     opts.Logger.Named("engine"),
		timing:  opts.Timing,
		events:  make(chan func(), 64),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		timers:  newTimerSet(),
		subs:    make(map[int]chan Snapshot),
	}
	e.state = Snapshot{Phase: Idle, Advisory: e.ruleset.Messages.Welcome}
	e.sessionCtx, e.cancelSession = context.WithCancel(context.Background())

	go e.loop()
	return e, nil
}

// Ruleset returns the ruleset the engine plays.
func (e *Engine) Ruleset() *kata.Ruleset { return e.ruleset }

// StartKata begins a new attempt at k. It is accepted from Idle and from the
// terminal phases, which are reset first. While Starting or Performing it
// returns ErrBusy and changes nothing.
func (e *Engine) StartKata(k *kata.Kata) error {
	if k == nil {
		return fmt.Errorf("start: %w", kata.ErrInvalidKata)
	}
	if err := k.Validate(e.ruleset.Vocabulary); err != nil {
		return fmt.Errorf("start %s: %w", k.ID, err)
	}
	var err error
	if doErr := e.do(func() { err = e.start(k) }); doErr != nil {
		return doErr
	}
	return err
}

// HandleMove applies one player move. It is a no-op outside Performing.
func (e *Engine) HandleMove(m kata.Move) {
	_ = e.do(func() { e.move(m) })
}

// Reset returns to Idle, cancelling the session's timers and discarding any
// advisory still in flight. It is a no-op while Idle.
func (e *Engine) Reset() {
	_ = e.do(e.reset)
}

// Snapshot returns a copy of the committed state.
func (e *Engine) Snapshot() Snapshot {
	var s Snapshot
	if err := e.do(func() { s = e.state.clone() }); err != nil {
		return Snapshot{Phase: Idle, Advisory: e.ruleset.Messages.Welcome}
	}
	return s
}

// Subscribe returns a channel receiving a Snapshot after every committed
// mutation, starting with the current state. The channel holds only the
// newest snapshot; a slow reader skips intermediate ones. The returned
// function unsubscribes and closes the channel. The channel is also closed by
// Close.
func (e *Engine) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)
	var id int
	if err := e.do(func() {
		id = e.nextSub
		e.nextSub++
		e.subs[id] = ch
		ch <- e.state.clone()
	}); err != nil {
		close(ch)
		return ch, func() {}
	}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			_ = e.do(func() {
				if c, ok := e.subs[id]; ok {
					delete(e.subs, id)
					close(c)
				}
			})
		})
	}
}

// Close stops the engine, its timers and any in-flight advisory request, and
// waits for every goroutine it started. Safe to call more than once.
func (e *Engine) Close() {
	e.once.Do(func() {
		close(e.done)
		<-e.stopped
		e.helpers.Wait()
	})
}

func (e *Engine) loop() {
	defer close(e.stopped)
	for {
		select {
		case f := <-e.events:
			f()
		case <-e.done:
			e.timers.stopAll()
			e.cancelSession()
			for id, ch := range e.subs {
				delete(e.subs, id)
				close(ch)
			}
			return
		}
	}
}

// do runs f on the loop and waits for it to finish.
func (e *Engine) do(f func()) error {
	ran := make(chan struct{})
	select {
	case e.events <- func() { f(); close(ran) }:
	case <-e.done:
		return ErrClosed
	}
	select {
	case <-ran:
		return nil
	case <-e.stopped:
		return ErrClosed
	}
}

// newSession drops everything owned by the previous session.
func (e *Engine) newSession() {
	e.timers.stopAll()
	e.cancelSession()
	e.sessionCtx, e.cancelSession = context.WithCancel(context.Background())
	e.state.Generation++
}

func (e *Engine) start(k *kata.Kata) error {
	switch e.state.Phase {
	case Starting, Performing:
		return ErrBusy
	}

	e.newSession()
	gen := e.state.Generation
	e.state = Snapshot{
		SessionID:  uuid.NewString(),
		Generation: gen,
		Phase:      Starting,
		Kata:       k,
		Progress:   []kata.Move{},
		Advisory:   e.ruleset.PrepareAdvisory(k),
	}
	e.audio.PlayAmbience()
	e.timers.arm(timerPrepare, e.clock, e.timing.PrepareDelay, e.onTimer(timerPrepare, e.beginPerforming))

	e.log.Debug("kata starting",
		zap.String("kata", k.ID),
		zap.String("session", e.state.SessionID),
		zap.Uint64("generation", gen),
	)
	e.publish()
	return nil
}

// onTimer wraps a handler so it runs on the loop only if its arming is still
// live.
func (e *Engine) onTimer(name timerName, handler func()) func(id uint64) {
	return func(id uint64) {
		_ = e.do(func() {
			if e.timers.claim(name, id) {
				handler()
			}
		})
	}
}

func (e *Engine) beginPerforming() {
	if e.state.Phase != Starting {
		return
	}
	e.state.Phase = Performing
	if begin := e.ruleset.Messages.Begin; begin.Text != "" {
		e.state.Advisory = begin
	}
	e.performedAt = e.clock.Now()
	e.armBreath()
	e.log.Debug("kata performing", zap.String("session", e.state.SessionID))
	e.publish()
}

func (e *Engine) armBreath() {
	e.timers.arm(timerBreath, e.clock, e.timing.BreathTick, e.onTimer(timerBreath, e.breathe))
}

func (e *Engine) breathe() {
	if e.state.Phase != Performing {
		return
	}
	e.state.Breath = (e.state.Breath + e.timing.BreathIncrement) % 100
	e.armBreath()
	e.publish()
}

func (e *Engine) clearLastMove() {
	if e.state.LastMove == "" {
		return
	}
	e.state.LastMove = ""
	e.publish()
}

func (e *Engine) move(m kata.Move) {
	if e.state.Phase != Performing || e.state.Kata == nil {
		return
	}
	k := e.state.Kata
	step := len(e.state.Progress)
	expected := k.At(step)

	e.audio.PlayMove(m)

	if m != expected {
		e.audio.PlayFail()
		e.leavePerforming(Fail)
		e.state.Miss = &Miss{Step: step + 1, Expected: expected, Got: m}
		e.log.Debug("kata failed",
			zap.String("session", e.state.SessionID),
			zap.Int("step", step+1),
			zap.String("expected", string(expected)),
			zap.String("got", string(m)),
		)
		e.publish()
		e.record(store.OutcomeFail)
		e.requestAdvisory(wisdom.Situation{
			Kata:     k.Name,
			Step:     step + 1,
			Expected: string(expected),
		})
		return
	}

	e.state.Progress = append(e.state.Progress, m)
	e.state.LastMove = m
	e.timers.arm(timerClear, e.clock, e.timing.LastMoveClear, e.onTimer(timerClear, e.clearLastMove))

	if len(e.state.Progress) < k.Len() {
		e.publish()
		return
	}

	e.audio.PlaySuccess()
	e.leavePerforming(Success)
	e.log.Debug("kata mastered", zap.String("session", e.state.SessionID))
	e.publish()
	e.record(store.OutcomeSuccess)
	e.requestAdvisory(wisdom.Situation{Kata: k.Name, Success: true})
}

func (e *Engine) leavePerforming(to Phase) {
	e.state.Phase = to
	e.state.Breath = 0
	e.timers.stop(timerBreath)
}

func (e *Engine) reset() {
	if e.state.Phase == Idle {
		return
	}
	e.newSession()
	e.state = Snapshot{
		Generation: e.state.Generation,
		Phase:      Idle,
		Advisory:   e.ruleset.Messages.Welcome,
	}
	e.log.Debug("session reset", zap.Uint64("generation", e.state.Generation))
	e.publish()
}

// requestAdvisory asks the wisdom provider for a line about the phase just
// committed. The result is applied only if the session has not moved on.
func (e *Engine) requestAdvisory(sit wisdom.Situation) {
	gen := e.state.Generation
	ctx := e.sessionCtx
	e.state.AdvisoryPending = true
	e.publish()

	e.helpers.Add(1)
	go func() {
		defer e.helpers.Done()
		adv, err := e.wisdom.Advise(ctx, sit)
		_ = e.do(func() { e.applyAdvisory(gen, sit, adv, err) })
	}()
}

func (e *Engine) applyAdvisory(gen uint64, sit wisdom.Situation, adv wisdom.Advisory, err error) {
	if gen != e.state.Generation {
		e.log.Debug("discarding stale advisory",
			zap.Uint64("generation", gen),
			zap.Uint64("current", e.state.Generation),
		)
		return
	}
	switch {
	case err != nil:
		e.log.Warn("advisory failed, using fallback", zap.String("situation", sit.String()), zap.Error(err))
		adv = wisdom.Fallback()
	case adv.Text == "" || !adv.Mood.Valid():
		e.log.Warn("advisory malformed, using fallback", zap.String("situation", sit.String()))
		adv = wisdom.Fallback()
	}
	e.state.Advisory = adv
	e.state.AdvisoryPending = false
	e.publish()
}

// record journals the attempt that just ended.
func (e *Engine) record(outcome store.Outcome) {
	if e.journal == nil {
		return
	}
	k := e.state.Kata
	data := store.AttemptEventData{
		SessionID:      e.state.SessionID,
		Ruleset:        e.ruleset.Name,
		KataID:         k.ID,
		KataName:       k.Name,
		Outcome:        outcome,
		StepsCompleted: len(e.state.Progress),
		TotalSteps:     k.Len(),
		Duration:       e.clock.Now().Sub(e.performedAt),
	}
	if m := e.state.Miss; m != nil {
		data.Expected = string(m.Expected)
		data.Got = string(m.Got)
	}

	e.helpers.Add(1)
	go func() {
		defer e.helpers.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.journal.AppendAttempt(ctx, data); err != nil {
			e.log.Warn("failed to record attempt", zap.String("session", data.SessionID), zap.Error(err))
		}
	}()
}

// publish hands the committed state to every subscriber, replacing any
// snapshot the subscriber has not read yet.
func (e *Engine) publish() {
	if len(e.subs) == 0 {
		return
	}
	s := e.state.clone()
	for _, ch := range e.subs {
		select {
		case ch <- s:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
