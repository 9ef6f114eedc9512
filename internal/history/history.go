package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/locvowork/payment_probability/internal/domain"
	"github.com/locvowork/payment_probability/pkg/googlecloud"
)

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Store persists run records.
type Store interface {
	Record(ctx context.Context, run domain.RunRecord) error
	Get(ctx context.Context, id string) (*domain.RunRecord, error)
	Recent(ctx context.Context, limit int) ([]domain.RunRecord, error)
	Close() error
}

// Nop discards records. Used when run history is disabled.
type Nop struct{}

func (Nop) Record(context.Context, domain.RunRecord) error { return nil }

func (Nop) Get(context.Context, string) (*domain.RunRecord, error) { return nil, ErrRunNotFound }

func (Nop) Recent(context.Context, int) ([]domain.RunRecord, error) { return nil, nil }

func (Nop) Close() error { return nil }

// DatastoreStore keeps run records in Cloud Datastore.
type DatastoreStore struct {
	client *googlecloud.Client
}

func NewDatastoreStore(client *googlecloud.Client) *DatastoreStore {
	return &DatastoreStore{client: client}
}

func (s *DatastoreStore) Record(ctx context.Context, run domain.RunRecord) error {
	rec := googlecloud.RunRecord(run)
	return s.client.SaveRun(ctx, &rec)
}

func (s *DatastoreStore) Get(ctx context.Context, id string) (*domain.RunRecord, error) {
	rec, err := s.client.GetRun(ctx, id)
	if err != nil {
		if googlecloud.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
		}
		return nil, err
	}
	run := domain.RunRecord(*rec)
	return &run, nil
}

func (s *DatastoreStore) Recent(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	runs, err := s.client.ListRecentRuns(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]domain.RunRecord, len(runs))
	for i, r := range runs {
		out[i] = domain.RunRecord(r)
	}
	return out, nil
}

func (s *DatastoreStore) Close() error {
	return s.client.Close()
}
