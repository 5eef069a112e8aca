package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DynamoAPI is the subset of the DynamoDB client used by DynamoStore.
type DynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
}

// stateItem is the DynamoDB row layout; "key" is the partition key.
type stateItem struct {
	Key       string `dynamodbav:"key"`
	Value     string `dynamodbav:"value"`
	UpdatedAt string `dynamodbav:"updatedAt"`
}

// DynamoStore keeps values in a DynamoDB table.
type DynamoStore struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

// NewDynamoStore creates a store on the given table.
func NewDynamoStore(client DynamoAPI, tableName string) (*DynamoStore, error) {
	if client == nil {
		return nil, errors.New("storage: dynamodb client required")
	}
	if tableName == "" {
		return nil, errors.New("storage: dynamodb table required")
	}
	return &DynamoStore{client: client, tableName: tableName, now: time.Now}, nil
}

// Read fetches the item for key.
func (s *DynamoStore) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("storage: dynamodb get %s: %w", key, err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}

	var item stateItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("storage: dynamodb decode %s: %w", key, err)
	}
	return []byte(item.Value), nil
}

// Write puts the item for key, replacing any previous value.
func (s *DynamoStore) Write(ctx context.Context, key string, value []byte) error {
	item, err := attributevalue.MarshalMap(stateItem{
		Key:       key,
		Value:     string(value),
		UpdatedAt: s.now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("storage: dynamodb encode %s: %w", key, err)
	}
	if _, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	}); err != nil {
		return fmt.Errorf("storage: dynamodb put %s: %w", key, err)
	}
	return nil
}
