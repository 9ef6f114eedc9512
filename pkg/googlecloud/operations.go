package googlecloud

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/datastore"
)

const (
	KindRun = "PredictionRun"
)

// SaveRun stores a run record under its string ID, replacing any previous version.
func (c *Client) SaveRun(ctx context.Context, run *RunRecord) error {
	if run.ID == "" {
		return ErrInvalidKey
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	key := datastore.NameKey(KindRun, run.ID, nil)
	_, err := c.ds.Put(ctx, key, run)
	return err
}

// GetRun retrieves a run record by ID.
func (c *Client) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	key := datastore.NameKey(KindRun, id, nil)
	var run RunRecord
	if err := c.ds.Get(ctx, key, &run); err != nil {
		return nil, WrapDatastoreError(err)
	}
	run.ID = id
	return &run, nil
}

// ListRecentRuns returns the newest runs first.
func (c *Client) ListRecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	query := datastore.NewQuery(KindRun).Order("-started_at").Limit(limit)

	var runs []RunRecord
	keys, err := c.ds.GetAll(ctx, query, &runs)
	if err != nil {
		return nil, err
	}

	for i, key := range keys {
		runs[i].ID = key.Name
	}

	return runs, nil
}
