package dynamo

import (
	"log/slog"
	"time"

	"PaperIndexer/internal/ports"
)

// Index names as created by the provisioner.
const (
	AuthorIndex  = "AuthorIndex"
	KeywordIndex = "KeywordIndex"
	PaperIdIndex = "PaperIdIndex"
)

const (
	maxBatchSize     = 25
	defaultWaitLimit = 5 * time.Minute
	defaultPoll      = 2 * time.Second
)

// Store is the process-wide handle to the paper table. It is constructed
// once at startup and is safe for concurrent reads.
type Store struct {
	client    API
	table     string
	batchSize int
	logger    *slog.Logger

	waitLimit  time.Duration
	poll       time.Duration
	retryDelay time.Duration
}

var (
	_ ports.ItemWriter       = (*Store)(nil)
	_ ports.TableProvisioner = (*Store)(nil)
	_ ports.PaperQueries     = (*Store)(nil)
)

// NewStore wires the client to a table. batchSize is clamped to the
// DynamoDB per-request limit of 25.
func NewStore(client API, table string, batchSize int, logger *slog.Logger) *Store {
	if batchSize <= 0 || batchSize > maxBatchSize {
		batchSize = maxBatchSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		client:    client,
		table:     table,
		batchSize: batchSize,
		logger:    logger,
		waitLimit:  defaultWaitLimit,
		poll:       defaultPoll,
		retryDelay: retryBaseDelay,
	}
}
