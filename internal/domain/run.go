package domain

import "time"

const (
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
	RunStatusEmpty     = "empty"
)

// Summary is the outcome of one batch run.
type Summary struct {
	RunID      string `json:"run_id"`
	Processed  int    `json:"processed"`
	Errored    int    `json:"errored"`
	WriteRange string `json:"write_range,omitempty"`
	Written    bool   `json:"written"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
}

// RunRecord is the persisted form of a run, kept by the history stores.
type RunRecord struct {
	ID            string    `json:"id"`
	SpreadsheetID string    `json:"spreadsheet_id"`
	ReadRange     string    `json:"read_range"`
	WriteRange    string    `json:"write_range"`
	Processed     int       `json:"processed"`
	Errored       int       `json:"errored"`
	Status        string    `json:"status"`
	Error         string    `json:"error,omitempty"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
}
