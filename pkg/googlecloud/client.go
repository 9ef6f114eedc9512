package googlecloud

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/datastore"
	"github.com/locvowork/payment_probability/internal/logger"
	"google.golang.org/api/option"
)

// Client wraps the Google Cloud Datastore client to persist prediction run records.
type Client struct {
	ds *datastore.Client
}

// NewClient creates a new Google Cloud Datastore client.
// It checks for DATASTORE_EMULATOR_HOST to verify if running against an emulator.
func NewClient(ctx context.Context, projectID string, opts ...option.ClientOption) (*Client, error) {
	// The official client detects DATASTORE_EMULATOR_HOST automatically.
	if emulatorHost := os.Getenv("DATASTORE_EMULATOR_HOST"); emulatorHost != "" {
		logger.InfoLog(ctx, "Initializing Datastore client against emulator at %s", emulatorHost)
	}

	ds, err := datastore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create datastore client: %w", err)
	}

	return &Client{ds: ds}, nil
}

// Close closes the underlying datastore client.
func (c *Client) Close() error {
	return c.ds.Close()
}
