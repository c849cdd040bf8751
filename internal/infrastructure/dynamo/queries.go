package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"PaperIndexer/internal/domain"
)

// DefaultQueryLimit caps single-page queries when the caller passes no
// explicit limit.
const DefaultQueryLimit = 20

// RecentInCategory returns up to limit papers of one category, most
// recently published first. A single page; no pagination beyond the cap.
func (s *Store) RecentInCategory(ctx context.Context, category string, limit int) ([]domain.Item, error) {
	cond := expression.Key("PK").Equal(expression.Value(domain.CategoryPK(category)))
	input, err := s.queryInput(cond, "")
	if err != nil {
		return nil, fmt.Errorf("recent in category %s: %w", category, err)
	}
	input.ScanIndexForward = aws.Bool(false)
	input.Limit = aws.Int32(normalizeLimit(limit))

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("recent in category %s: %w", category, Classify(err))
	}
	return unmarshalItems(out.Items)
}

// PapersByAuthor accumulates every page of the author-index partition for
// the given author, newest first.
func (s *Store) PapersByAuthor(ctx context.Context, author string) ([]domain.Item, error) {
	cond := expression.Key("GSI1PK").Equal(expression.Value(domain.AuthorGSI(author)))
	input, err := s.queryInput(cond, AuthorIndex)
	if err != nil {
		return nil, fmt.Errorf("papers by author %s: %w", author, err)
	}
	input.ScanIndexForward = aws.Bool(false)

	items, err := s.queryAllPages(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("papers by author %s: %w", author, err)
	}
	return items, nil
}

// PaperByID resolves the detail row through the id index. It returns nil
// without error when no such paper was loaded.
func (s *Store) PaperByID(ctx context.Context, arxivID string) (*domain.Item, error) {
	cond := expression.Key("GSI3PK").Equal(expression.Value(domain.PaperPK(arxivID)))
	input, err := s.queryInput(cond, PaperIdIndex)
	if err != nil {
		return nil, fmt.Errorf("paper by id %s: %w", arxivID, err)
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("paper by id %s: %w", arxivID, Classify(err))
	}
	items, err := unmarshalItems(out.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// PapersInDateRange returns all papers of a category published between
// startDate and endDate inclusive, oldest first, fully paginated.
func (s *Store) PapersInDateRange(ctx context.Context, category, startDate, endDate string) ([]domain.Item, error) {
	cond := expression.Key("PK").Equal(expression.Value(domain.CategoryPK(category))).
		And(expression.Key("SK").Between(
			expression.Value(domain.RangeStart(startDate)),
			expression.Value(domain.RangeEnd(endDate)),
		))
	input, err := s.queryInput(cond, "")
	if err != nil {
		return nil, fmt.Errorf("papers in range %s [%s..%s]: %w", category, startDate, endDate, err)
	}
	input.ScanIndexForward = aws.Bool(true)

	items, err := s.queryAllPages(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("papers in range %s [%s..%s]: %w", category, startDate, endDate, err)
	}
	return items, nil
}

// PapersByKeyword returns up to limit papers for the lower-cased keyword
// partition, most recent first.
func (s *Store) PapersByKeyword(ctx context.Context, keyword string, limit int) ([]domain.Item, error) {
	cond := expression.Key("GSI2PK").Equal(expression.Value(domain.KeywordGSI(keyword)))
	input, err := s.queryInput(cond, KeywordIndex)
	if err != nil {
		return nil, fmt.Errorf("papers by keyword %s: %w", keyword, err)
	}
	input.ScanIndexForward = aws.Bool(false)
	input.Limit = aws.Int32(normalizeLimit(limit))

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("papers by keyword %s: %w", keyword, Classify(err))
	}
	return unmarshalItems(out.Items)
}

func (s *Store) queryInput(cond expression.KeyConditionBuilder, index string) (*dynamodb.QueryInput, error) {
	expr, err := expression.NewBuilder().WithKeyCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if index != "" {
		input.IndexName = aws.String(index)
	}
	return input, nil
}

func (s *Store) queryAllPages(ctx context.Context, input *dynamodb.QueryInput) ([]domain.Item, error) {
	items := []domain.Item{}
	for {
		out, err := s.client.Query(ctx, input)
		if err != nil {
			return nil, Classify(err)
		}
		page, err := unmarshalItems(out.Items)
		if err != nil {
			return nil, err
		}
		items = append(items, page...)

		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}
}

func unmarshalItems(raw []map[string]types.AttributeValue) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(raw))
	if err := attributevalue.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, fmt.Errorf("unmarshal items: %w", err)
	}
	return items, nil
}

func normalizeLimit(limit int) int32 {
	if limit <= 0 {
		return DefaultQueryLimit
	}
	return int32(limit)
}
