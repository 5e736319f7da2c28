package entities

import "time"

// Outcome describes how a report request ended
type Outcome string

const (
	OutcomeOK                Outcome = "ok"
	OutcomeFetchFailed       Outcome = "fetch_failed"
	OutcomeMalformedResponse Outcome = "malformed_response"
)

// ReportOutcome is a single journal entry
type ReportOutcome struct {
	ID        int64
	WaterBody string
	Outcome   Outcome
	CreatedAt time.Time
}

// OutcomeStat aggregates journal entries for one water body
type OutcomeStat struct {
	WaterBody   string
	Successes   int
	Failures    int
	Total       int
	LastRequest time.Time
}
