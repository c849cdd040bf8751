package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"PaperIndexer/internal/domain"
)

const (
	maxUnprocessedRetries = 5
	retryBaseDelay        = 50 * time.Millisecond
)

// WriteItems persists all derived items in batches of at most batchSize.
// Put requests overwrite rows that share the same PK/SK pair, so reloading
// the same corpus is idempotent. Batches are independent units: a failed
// batch never corrupts previously committed ones, and the returned error
// names the batch and the item range it covered.
func (s *Store) WriteItems(ctx context.Context, items []domain.Item) error {
	for start := 0; start < len(items); start += s.batchSize {
		end := start + s.batchSize
		if end > len(items) {
			end = len(items)
		}
		if err := s.writeBatch(ctx, items[start:end]); err != nil {
			return fmt.Errorf("batch %d (items %d-%d): %w", start/s.batchSize, start, end-1, err)
		}
		s.logger.Debug("batch committed", "batch", start/s.batchSize, "items", end-start)
	}
	return nil
}

func (s *Store) writeBatch(ctx context.Context, batch []domain.Item) error {
	requests := make([]types.WriteRequest, 0, len(batch))
	for i, item := range batch {
		av, err := attributevalue.MarshalMap(item)
		if err != nil {
			return fmt.Errorf("marshal item %d (%s): %w", i, item.PK, err)
		}
		requests = append(requests, types.WriteRequest{
			PutRequest: &types.PutRequest{Item: av},
		})
	}

	pending := requests
	for attempt := 0; ; attempt++ {
		out, err := s.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{s.table: pending},
		})
		if err != nil {
			return Classify(err)
		}

		pending = out.UnprocessedItems[s.table]
		if len(pending) == 0 {
			return nil
		}
		if attempt >= maxUnprocessedRetries {
			return fmt.Errorf("%d of %d items unconfirmed after %d retries", len(pending), len(batch), attempt)
		}

		s.logger.Warn("retrying unprocessed items", "count", len(pending), "attempt", attempt+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.retryDelay << attempt):
		}
	}
}
