package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

// createdAtLayout is a fixed-width RFC 3339 layout. created_at is the sort key
// of both transaction indexes, so it must order lexically the same way it
// orders in time.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

func createdAtKey(t time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: t.UTC().Format(createdAtLayout)}
}

// AddTransaction appends a transaction record.
func (s *Store) AddTransaction(ctx context.Context, tx models.Transaction) (*models.Transaction, error) {
	txAV, err := attributevalue.MarshalMap(tx)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal transaction: %w", err)
	}
	txAV["created_at"] = createdAtKey(tx.CreatedAt)

	err = s.apply(ctx, write{
		item: types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.TransactionsTableName),
				Item:                txAV,
				ConditionExpression: aws.String("attribute_not_exists(id)"),
			},
		},
		onConditionFailed: func(map[string]types.AttributeValue) error {
			return fmt.Errorf("transaction %s already exists", tx.ID)
		},
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// GetTransaction reads one transaction by id.
func (s *Store) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.TransactionsTableName),
		Key:            map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: id}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction from DynamoDB: %w", err)
	}
	if out.Item == nil {
		return nil, fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, id)
	}

	var tx models.Transaction
	if err := attributevalue.UnmarshalMap(out.Item, &tx); err != nil {
		return nil, fmt.Errorf("failed to unmarshal transaction: %w", err)
	}
	return &tx, nil
}

// FetchUserTransactions queries the src_api_key index, oldest first.
func (s *Store) FetchUserTransactions(ctx context.Context, apiKey string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(srcAPIKeyIndex),
		KeyConditionExpression: aws.String("src_api_key = :apiKey"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":apiKey": &types.AttributeValueMemberS{Value: apiKey},
		},
		ScanIndexForward: aws.Bool(true),
	}

	txs, err := s.queryTransactions(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for transactions by user: %w", err)
	}
	return txs, nil
}

// FetchWalletTransactions narrows the user's transactions to one source wallet.
func (s *Store) FetchWalletTransactions(ctx context.Context, publicKey, apiKey string) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(srcAPIKeyIndex),
		KeyConditionExpression: aws.String("src_api_key = :apiKey"),
		FilterExpression:       aws.String("src_wallet = :wallet"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":apiKey": &types.AttributeValueMemberS{Value: apiKey},
			":wallet": &types.AttributeValueMemberS{Value: publicKey},
		},
		ScanIndexForward: aws.Bool(true),
	}

	txs, err := s.queryTransactions(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for transactions by wallet: %w", err)
	}
	return txs, nil
}

// ListStaleTransactions finds APPLIED transactions created before now - olderThan.
func (s *Store) ListStaleTransactions(ctx context.Context, olderThan time.Duration) ([]models.Transaction, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.TransactionsTableName),
		IndexName:              aws.String(staleTransactionGSI),
		KeyConditionExpression: aws.String("#status = :status AND created_at < :cutoff"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(models.StatusApplied)},
			":cutoff": createdAtKey(s.clock().Add(-olderThan)),
		},
	}

	txs, err := s.queryTransactions(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query for stale transactions: %w", err)
	}
	return txs, nil
}

func (s *Store) queryTransactions(ctx context.Context, input *dynamodb.QueryInput) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0)

	for {
		page, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, err
		}

		var batch []models.Transaction
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &batch); err != nil {
			return nil, fmt.Errorf("failed to unmarshal transactions: %w", err)
		}
		transactions = append(transactions, batch...)

		if len(page.LastEvaluatedKey) == 0 {
			return transactions, nil
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}
}
