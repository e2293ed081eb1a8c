package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultTransactionsTableName = "portal_transactions"
	mergeConflictRetries         = 3
)

// ErrConcurrentUpdate is returned when a document kept changing underneath a
// read-modify-write cycle.
var ErrConcurrentUpdate = errors.New("transaction document changed concurrently")

type transactionItem struct {
	PK            string `dynamodbav:"pk"`
	Namespace     string `dynamodbav:"namespace"`
	TransactionID string `dynamodbav:"transaction_id"`
	Document      string `dynamodbav:"document"`
	Processed     bool   `dynamodbav:"processed"`
	UpdatedAt     int64  `dynamodbav:"updated_at"`
}

// TransactionDynamoRepository persists transaction documents in DynamoDB.
//
// Table requirements:
//   - PK: pk (string) = <namespace>#<sha256(id)>
//
// The document is stored as a JSON string. Updates are read-modify-write
// guarded by a condition on updated_at.
type TransactionDynamoRepository struct {
	ddb       DynamoDBAPI
	tableName string
	namespace string
	now       func() time.Time
}

var _ interfaces.ITransactionStore = (*TransactionDynamoRepository)(nil)

func NewTransactionDynamoRepository(ddb DynamoDBAPI, namespace string) *TransactionDynamoRepository {
	return &TransactionDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("TRANSACTIONS_TABLE", defaultTransactionsTableName),
		namespace: namespace,
		now:       time.Now,
	}
}

func (r *TransactionDynamoRepository) Namespace() string { return r.namespace }

func (r *TransactionDynamoRepository) Save(ctx context.Context, id string, doc entities.Document) (entities.Document, error) {
	out := entities.PrepareDocument(r.namespace, id, doc)
	if err := r.put(ctx, id, out, nil); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *TransactionDynamoRepository) Get(ctx context.Context, id string) (entities.Document, error) {
	doc, _, err := r.load(ctx, id)
	return doc, err
}

func (r *TransactionDynamoRepository) Merge(ctx context.Context, id string, partial entities.Document) (entities.Document, error) {
	return r.update(ctx, id, func(existing entities.Document) entities.Document {
		if existing == nil {
			return nil
		}
		return entities.MergeDocuments(existing, partial)
	})
}

func (r *TransactionDynamoRepository) AppendResponse(ctx context.Context, id string, response any) (entities.Document, error) {
	return r.update(ctx, id, func(existing entities.Document) entities.Document {
		return entities.AppendResponse(r.namespace, id, existing, response)
	})
}

func (r *TransactionDynamoRepository) MarkProcessed(ctx context.Context, id string, meta map[string]any) (entities.Document, error) {
	out, err := r.Merge(ctx, id, entities.ProcessedPatch(r.now(), meta))
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("%w: %s transaction %s cannot be marked processed", entities.ErrTransactionNotFound, r.namespace, id)
	}
	return out, nil
}

// update applies fn to the current document and writes the result only if
// nobody wrote in between. A nil result from fn leaves the table untouched.
func (r *TransactionDynamoRepository) update(ctx context.Context, id string, fn func(entities.Document) entities.Document) (entities.Document, error) {
	for attempt := 0; attempt < mergeConflictRetries; attempt++ {
		existing, version, err := r.load(ctx, id)
		if err != nil {
			return nil, err
		}
		out := fn(existing)
		if out == nil {
			return nil, nil
		}

		var expected *int64
		if existing != nil {
			expected = &version
		}
		err = r.put(ctx, id, out, expected)
		if err == nil {
			return out, nil
		}
		var cfe *types.ConditionalCheckFailedException
		if !errors.As(err, &cfe) {
			return nil, err
		}
		log.Printf("[transaction][repository] concurrent update namespace=%s id=%s attempt=%d", r.namespace, id, attempt+1)
	}
	return nil, fmt.Errorf("%w: %s transaction %s", ErrConcurrentUpdate, r.namespace, id)
}

func (r *TransactionDynamoRepository) load(ctx context.Context, id string) (entities.Document, int64, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"pk": &types.AttributeValueMemberS{Value: r.key(id)},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, 0, err
	}
	if len(out.Item) == 0 {
		return nil, 0, nil
	}

	var it transactionItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return nil, 0, err
	}
	var doc entities.Document
	if err := json.Unmarshal([]byte(it.Document), &doc); err != nil {
		return nil, 0, fmt.Errorf("decode %s transaction %s: %w", r.namespace, id, err)
	}
	return doc, it.UpdatedAt, nil
}

// put writes doc. When expected is nil the item is written unconditionally,
// otherwise only if its updated_at still matches.
func (r *TransactionDynamoRepository) put(ctx context.Context, id string, doc entities.Document, expected *int64) error {
	encoded, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode %s transaction %s: %w", r.namespace, id, err)
	}
	it := transactionItem{
		PK:            r.key(id),
		Namespace:     r.namespace,
		TransactionID: id,
		Document:      string(encoded),
		Processed:     doc.Processed(),
		UpdatedAt:     r.now().UnixNano(),
	}
	if expected != nil && it.UpdatedAt <= *expected {
		it.UpdatedAt = *expected + 1
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	in := &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	}
	if expected != nil {
		in.ConditionExpression = aws.String("#updated_at = :expected")
		in.ExpressionAttributeNames = map[string]string{"#updated_at": "updated_at"}
		in.ExpressionAttributeValues = map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", *expected)},
		}
	}
	_, err = r.ddb.PutItem(ctx, in)
	return err
}

func (r *TransactionDynamoRepository) key(id string) string {
	sum := sha256.Sum256([]byte(id))
	return r.namespace + "#" + hex.EncodeToString(sum[:])
}
