package googlecloud

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/datastore"
	"github.com/stretchr/testify/assert"
)

func TestSaveRun_RequiresID(t *testing.T) {
	c := &Client{}
	err := c.SaveRun(context.Background(), &RunRecord{Status: "succeeded"})
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestListRecentRuns_RejectsNonPositiveLimit(t *testing.T) {
	c := &Client{}
	_, err := c.ListRecentRuns(context.Background(), 0)
	assert.Error(t, err)
}

func TestWrapDatastoreError(t *testing.T) {
	assert.NoError(t, WrapDatastoreError(nil))
	assert.Equal(t, ErrNotFound, WrapDatastoreError(datastore.ErrNoSuchEntity))

	other := errors.New("deadline exceeded")
	assert.Equal(t, other, WrapDatastoreError(other))

	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get run: %w", datastore.ErrNoSuchEntity)))
	assert.False(t, IsNotFoundError(other))
}
