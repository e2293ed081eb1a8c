package repository

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	mock_repository "portal_pagos/internal/adapter/persistence/repository/mocks"
	"portal_pagos/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/mock/gomock"
)

func newTestDynamoRepository(ddb DynamoDBAPI) *TransactionDynamoRepository {
	var tick atomic.Int64
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: "transactions",
		namespace: "flow",
		now: func() time.Time {
			return time.Unix(1710000000, tick.Add(1))
		},
	}
}

// table backs the mock with one item and honours the updated_at condition.
type table struct {
	item map[string]types.AttributeValue
	puts int
}

func (tb *table) expect(m *mock_repository.MockDynamoDBAPI) {
	m.EXPECT().GetItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
			if in.ConsistentRead == nil || !*in.ConsistentRead {
				return nil, errors.New("reads must be consistent")
			}
			return &dynamodb.GetItemOutput{Item: tb.item}, nil
		}).AnyTimes()
	m.EXPECT().PutItem(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
			if in.ConditionExpression != nil {
				current, _ := tb.item["updated_at"].(*types.AttributeValueMemberN)
				expected, _ := in.ExpressionAttributeValues[":expected"].(*types.AttributeValueMemberN)
				if current == nil || expected == nil || current.Value != expected.Value {
					return nil, &types.ConditionalCheckFailedException{}
				}
			}
			tb.item = in.Item
			tb.puts++
			return &dynamodb.PutItemOutput{}, nil
		}).AnyTimes()
}

func TestTransactionDynamoRepository_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	m := mock_repository.NewMockDynamoDBAPI(ctrl)
	tb := &table{}
	tb.expect(m)
	repo := newTestDynamoRepository(m)
	ctx := context.Background()

	if _, err := repo.Save(ctx, "FT1", entities.Document{"rut": "123456785", "amount": 8000}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.Merge(ctx, "FT1", entities.Document{"flow": map[string]any{"flow_order": "99"}}); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if _, err := repo.AppendResponse(ctx, "FT1", map[string]any{"status": "approved"}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := repo.MarkProcessed(ctx, "FT1", map[string]any{"responses": []any{"ok"}}); err != nil {
		t.Fatalf("mark processed: %v", err)
	}

	doc, err := repo.Get(ctx, "FT1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	flow, _ := entities.AsMap(doc["flow"])
	if doc["rut"] != "123456785" || flow["flow_order"] != "99" || len(doc.Responses("flow")) != 1 || !doc.Processed() {
		t.Fatalf("unexpected document: %v", doc)
	}
	if processed, _ := tb.item["processed"].(*types.AttributeValueMemberBOOL); processed == nil || !processed.Value {
		t.Fatalf("processed attribute must follow the document")
	}
	if tb.puts != 4 {
		t.Fatalf("expected 4 writes, got %d", tb.puts)
	}
}

func TestTransactionDynamoRepository_Update(t *testing.T) {
	ctx := context.Background()
	seeded := func(t *testing.T) *dynamodb.GetItemOutput {
		t.Helper()
		tb := &table{}
		repo := newTestDynamoRepository(nil)
		ctrl := gomock.NewController(t)
		seed := mock_repository.NewMockDynamoDBAPI(ctrl)
		tb.expect(seed)
		repo.ddb = seed
		if _, err := repo.Save(ctx, "FT1", entities.Document{"amount": 8000}); err != nil {
			t.Fatalf("seed: %v", err)
		}
		return &dynamodb.GetItemOutput{Item: tb.item}
	}

	t.Run("keeps conflicting on every retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := mock_repository.NewMockDynamoDBAPI(ctrl)
		item := seeded(t)
		m.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(item, nil).Times(mergeConflictRetries)
		m.EXPECT().PutItem(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
				if in.ConditionExpression == nil || *in.ConditionExpression != "#updated_at = :expected" {
					t.Fatalf("update must be conditional, got %v", in.ConditionExpression)
				}
				return nil, &types.ConditionalCheckFailedException{}
			}).Times(mergeConflictRetries)

		_, err := newTestDynamoRepository(m).Merge(ctx, "FT1", entities.Document{"amount": 9000})
		if !errors.Is(err, ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
	})

	t.Run("retries after one conflict", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := mock_repository.NewMockDynamoDBAPI(ctrl)
		item := seeded(t)
		m.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(item, nil).Times(2)
		gomock.InOrder(
			m.EXPECT().PutItem(gomock.Any(), gomock.Any()).Return(nil, &types.ConditionalCheckFailedException{}),
			m.EXPECT().PutItem(gomock.Any(), gomock.Any()).Return(&dynamodb.PutItemOutput{}, nil),
		)

		doc, err := newTestDynamoRepository(m).Merge(ctx, "FT1", entities.Document{"amount": 9000})
		if err != nil || doc["amount"] != 9000 {
			t.Fatalf("unexpected merge result %v err=%v", doc, err)
		}
	})

	t.Run("other put errors are not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := mock_repository.NewMockDynamoDBAPI(ctrl)
		item := seeded(t)
		boom := errors.New("throttled")
		m.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(item, nil)
		m.EXPECT().PutItem(gomock.Any(), gomock.Any()).Return(nil, boom)

		if _, err := newTestDynamoRepository(m).Merge(ctx, "FT1", entities.Document{"amount": 9000}); !errors.Is(err, boom) {
			t.Fatalf("expected the put error, got %v", err)
		}
	})

	t.Run("missing transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		m := mock_repository.NewMockDynamoDBAPI(ctrl)
		m.EXPECT().GetItem(gomock.Any(), gomock.Any()).Return(&dynamodb.GetItemOutput{}, nil).Times(2)
		repo := newTestDynamoRepository(m)

		if doc, err := repo.Merge(ctx, "FT404", entities.Document{"amount": 1}); doc != nil || err != nil {
			t.Fatalf("merge of a missing transaction must be a no-op, got %v err=%v", doc, err)
		}
		if _, err := repo.MarkProcessed(ctx, "FT404", nil); !errors.Is(err, entities.ErrTransactionNotFound) {
			t.Fatalf("expected ErrTransactionNotFound, got %v", err)
		}
	})
}
