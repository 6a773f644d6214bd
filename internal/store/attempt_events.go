package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

const attemptTable = "kata_attempt_events"

var attemptColumns = []string{
	"id", "sequence", "timestamp",
	"session_id", "ruleset", "kata_id", "kata_name", "outcome",
	"steps_completed", "total_steps", "expected", "got", "duration_ms",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	if data.SessionID == "" || data.KataID == "" {
		return fmt.Errorf("save attempt event: session and kata are required")
	}
	err := r.insert(ctx, attemptTable,
		[]string{
			"session_id", "ruleset", "kata_id", "kata_name", "outcome",
			"steps_completed", "total_steps", "expected", "got", "duration_ms",
		},
		[]any{
			data.SessionID, data.Ruleset, data.KataID, data.KataName, string(data.Outcome),
			data.StepsCompleted, data.TotalSteps, data.Expected, data.Got, data.Duration.Milliseconds(),
		},
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := r.b.Select(attemptColumns...).From(r.b.Table(attemptTable))
	if opts.Ruleset != "" {
		sel.Where(entsql.EQ("ruleset", opts.Ruleset))
	}
	if opts.KataID != "" {
		sel.Where(entsql.EQ("kata_id", opts.KataID))
	}
	query, args := applyOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		var (
			rec        AttemptRecord
			ts         int64
			outcome    string
			durationMs int64
		)
		err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts,
			&rec.SessionID, &rec.Ruleset, &rec.KataID, &rec.KataName, &outcome,
			&rec.StepsCompleted, &rec.TotalSteps, &rec.Expected, &rec.Got, &durationMs,
		)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		rec.Timestamp = fromMillis(ts)
		rec.Outcome = Outcome(outcome)
		rec.Duration = msDuration(durationMs)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *eventRepo) AttemptStats(ctx context.Context, ruleset string) ([]KataStats, error) {
	sel := r.b.Select("kata_id", "outcome", entsql.Count("*")).
		From(r.b.Table(attemptTable))
	if ruleset != "" {
		sel.Where(entsql.EQ("ruleset", ruleset))
	}
	query, args := sel.
		GroupBy("kata_id", "outcome").
		OrderBy("kata_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	defer rows.Close()

	var out []KataStats
	index := make(map[string]int)
	for rows.Next() {
		var (
			kataID, outcome string
			n               int
		)
		if err := rows.Scan(&kataID, &outcome, &n); err != nil {
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		i, ok := index[kataID]
		if !ok {
			i = len(out)
			index[kataID] = i
			out = append(out, KataStats{KataID: kataID})
		}
		out[i].Attempts += n
		if Outcome(outcome) == OutcomeSuccess {
			out[i].Successes += n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempt stats: %w", err)
	}
	return out, nil
}
