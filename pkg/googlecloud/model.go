package googlecloud

import (
	"time"
)

// RunRecord is the Datastore entity for one batch prediction run.
type RunRecord struct {
	ID            string    `datastore:"-" json:"id"` // Key Name
	SpreadsheetID string    `datastore:"spreadsheet_id" json:"spreadsheet_id"`
	ReadRange     string    `datastore:"read_range,noindex" json:"read_range"`
	WriteRange    string    `datastore:"write_range,noindex" json:"write_range"`
	Processed     int       `datastore:"processed" json:"processed"`
	Errored       int       `datastore:"errored" json:"errored"`
	Status        string    `datastore:"status" json:"status"`
	Error         string    `datastore:"error,noindex" json:"error,omitempty"`
	StartedAt     time.Time `datastore:"started_at" json:"started_at"`
	FinishedAt    time.Time `datastore:"finished_at" json:"finished_at"`
}
