package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To

	// Ruleset and KataID restrict attempt queries. Ignored elsewhere.
	Ruleset string
	KataID  string

	// Purpose restricts LLM request queries.
	Purpose string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestRecord is a stored LLM request event.
type LLMRequestRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM requests sharing a purpose or model.
type LLMUsage struct {
	Group        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Outcome is how a kata attempt ended.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFail    Outcome = "fail"
)

// AttemptEventData captures one finished kata performance.
type AttemptEventData struct {
	SessionID      string
	Ruleset        string
	KataID         string
	KataName       string
	Outcome        Outcome
	StepsCompleted int
	TotalSteps     int

	// Expected and Got are set for failed attempts.
	Expected string
	Got      string

	Duration time.Duration
}

// AttemptRecord is a stored kata attempt event.
type AttemptRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// KataStats aggregates attempts for one kata.
type KataStats struct {
	KataID    string
	Attempts  int
	Successes int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM request events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestRecord, error)

	// GetLLMEvent returns one LLM request event by ID, or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestRecord, error)

	// LLMUsageByPurpose aggregates LLM requests per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates LLM requests per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)

	// AppendAttempt records a finished kata performance.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// QueryAttempts returns kata attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// AttemptStats returns per-kata attempt and success counts for a
	// ruleset, or across all rulesets when ruleset is empty.
	AttemptStats(ctx context.Context, ruleset string) ([]KataStats, error)
}
