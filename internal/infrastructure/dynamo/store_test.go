package dynamo

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient satisfies API and records every request so tests can inspect
// exactly what would hit DynamoDB.
type fakeClient struct {
	queryFn    func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	batchFn    func(*dynamodb.BatchWriteItemInput) (*dynamodb.BatchWriteItemOutput, error)
	createFn   func(*dynamodb.CreateTableInput) (*dynamodb.CreateTableOutput, error)
	describeFn func(*dynamodb.DescribeTableInput) (*dynamodb.DescribeTableOutput, error)

	queryInputs    []*dynamodb.QueryInput
	batchInputs    []*dynamodb.BatchWriteItemInput
	createInputs   []*dynamodb.CreateTableInput
	describeInputs []*dynamodb.DescribeTableInput
}

func (f *fakeClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	f.queryInputs = append(f.queryInputs, in)
	if f.queryFn != nil {
		return f.queryFn(in)
	}
	return &dynamodb.QueryOutput{}, nil
}

func (f *fakeClient) BatchWriteItem(_ context.Context, in *dynamodb.BatchWriteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error) {
	f.batchInputs = append(f.batchInputs, in)
	if f.batchFn != nil {
		return f.batchFn(in)
	}
	return &dynamodb.BatchWriteItemOutput{}, nil
}

func (f *fakeClient) CreateTable(_ context.Context, in *dynamodb.CreateTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error) {
	f.createInputs = append(f.createInputs, in)
	if f.createFn != nil {
		return f.createFn(in)
	}
	return &dynamodb.CreateTableOutput{}, nil
}

func (f *fakeClient) DescribeTable(_ context.Context, in *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	f.describeInputs = append(f.describeInputs, in)
	if f.describeFn != nil {
		return f.describeFn(in)
	}
	return activeTableOutput(), nil
}

func activeTableOutput() *dynamodb.DescribeTableOutput {
	return &dynamodb.DescribeTableOutput{Table: &types.TableDescription{
		TableStatus: types.TableStatusActive,
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndexDescription{
			{IndexStatus: types.IndexStatusActive},
			{IndexStatus: types.IndexStatusActive},
			{IndexStatus: types.IndexStatusActive},
		},
	}}
}

func newTestStore(client API) *Store {
	s := NewStore(client, "papers-test", 25, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.poll = time.Millisecond
	s.waitLimit = 100 * time.Millisecond
	s.retryDelay = time.Millisecond
	return s
}

// exprStringValues flattens the expression value map so tests can assert
// on key condition operands without depending on placeholder naming.
func exprStringValues(in *dynamodb.QueryInput) []string {
	var out []string
	for _, av := range in.ExpressionAttributeValues {
		if s, ok := av.(*types.AttributeValueMemberS); ok {
			out = append(out, s.Value)
		}
	}
	return out
}
