package dynamo

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// projectedAttributes are the non-key attributes carried by the author and
// keyword indexes; enough to answer their query patterns without a second
// fetch. The id index projects everything because it serves full detail
// lookups.
var projectedAttributes = []string{"arxiv_id", "title", "categories", "published"}

// EnsureTable is idempotent: it creates the table with its three secondary
// indexes unless it already exists, then blocks until the table and all
// indexes report ACTIVE.
func (s *Store) EnsureTable(ctx context.Context) error {
	_, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
	if err == nil {
		return s.waitActive(ctx)
	}
	if !isTableNotFound(err) {
		return fmt.Errorf("describe table %s: %w", s.table, Classify(err))
	}

	s.logger.Info("creating table", "table", s.table)
	if _, err := s.client.CreateTable(ctx, createTableInput(s.table)); err != nil {
		// Another loader may have won the creation race.
		if !isTableInUse(err) {
			return fmt.Errorf("create table %s: %w", s.table, Classify(err))
		}
	}

	return s.waitActive(ctx)
}

func (s *Store) waitActive(ctx context.Context) error {
	deadline := time.Now().Add(s.waitLimit)
	for {
		out, err := s.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(s.table)})
		if err == nil && tableReady(out.Table) {
			return nil
		}
		if err != nil && !isTableNotFound(err) {
			return fmt.Errorf("describe table %s: %w", s.table, Classify(err))
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("table %s not active after %s", s.table, s.waitLimit)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.poll):
		}
	}
}

func tableReady(desc *types.TableDescription) bool {
	if desc == nil || desc.TableStatus != types.TableStatusActive {
		return false
	}
	for _, gsi := range desc.GlobalSecondaryIndexes {
		if gsi.IndexStatus != types.IndexStatusActive {
			return false
		}
	}
	return true
}

func createTableInput(table string) *dynamodb.CreateTableInput {
	stringAttr := func(name string) types.AttributeDefinition {
		return types.AttributeDefinition{
			AttributeName: aws.String(name),
			AttributeType: types.ScalarAttributeTypeS,
		}
	}
	keySchema := func(hash, rng string) []types.KeySchemaElement {
		return []types.KeySchemaElement{
			{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash},
			{AttributeName: aws.String(rng), KeyType: types.KeyTypeRange},
		}
	}

	return &dynamodb.CreateTableInput{
		TableName:   aws.String(table),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			stringAttr("PK"), stringAttr("SK"),
			stringAttr("GSI1PK"), stringAttr("GSI1SK"),
			stringAttr("GSI2PK"), stringAttr("GSI2SK"),
			stringAttr("GSI3PK"), stringAttr("GSI3SK"),
		},
		KeySchema: keySchema("PK", "SK"),
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{
			{
				IndexName: aws.String(AuthorIndex),
				KeySchema: keySchema("GSI1PK", "GSI1SK"),
				Projection: &types.Projection{
					ProjectionType:   types.ProjectionTypeInclude,
					NonKeyAttributes: projectedAttributes,
				},
			},
			{
				IndexName: aws.String(KeywordIndex),
				KeySchema: keySchema("GSI2PK", "GSI2SK"),
				Projection: &types.Projection{
					ProjectionType:   types.ProjectionTypeInclude,
					NonKeyAttributes: projectedAttributes,
				},
			},
			{
				IndexName: aws.String(PaperIdIndex),
				KeySchema: keySchema("GSI3PK", "GSI3SK"),
				Projection: &types.Projection{
					ProjectionType: types.ProjectionTypeAll,
				},
			},
		},
	}
}
