package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

const (
	srcAPIKeyIndex      = "src_api_key-created_at-index"
	staleTransactionGSI = "status-created_at-index"

	// maxTransactItems is the DynamoDB limit for one TransactWriteItems call.
	maxTransactItems = 100
)

// DynamoDBAPI is the subset of the DynamoDB client the store uses.
type DynamoDBAPI interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// Tables names the four tables the store writes to.
type Tables struct {
	Users        string
	Wallets      string
	Transactions string
	Stats        string
}

// Store implements the Repository interface using AWS DynamoDB.
type Store struct {
	Client                DynamoDBAPI
	UsersTableName        string
	WalletsTableName      string
	TransactionsTableName string
	StatsTableName        string

	// tx buffers writes while the store is bound to a unit of work.
	tx  *unitOfWork
	now func() time.Time
}

// New creates a new Store.
func New(client DynamoDBAPI, tables Tables) *Store {
	return &Store{
		Client:                client,
		UsersTableName:        tables.Users,
		WalletsTableName:      tables.Wallets,
		TransactionsTableName: tables.Transactions,
		StatsTableName:        tables.Stats,
		now:                   time.Now,
	}
}

// Make sure we conform to the interface
var _ storage.Repository = (*Store)(nil)

func (s *Store) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// write is one conditional item write. onConditionFailed receives the item as
// it was before the write (nil if it did not exist) and names the failure.
type write struct {
	item              types.TransactWriteItem
	onConditionFailed func(old map[string]types.AttributeValue) error
}

// apply runs the writes now, or buffers them when bound to a unit of work.
func (s *Store) apply(ctx context.Context, ws ...write) error {
	if s.tx != nil {
		s.tx.writes = append(s.tx.writes, ws...)
		return nil
	}
	if len(ws) == 1 {
		return s.applyOne(ctx, ws[0])
	}
	return s.transact(ctx, ws)
}

func (s *Store) applyOne(ctx context.Context, w write) error {
	var err error
	switch {
	case w.item.Put != nil:
		p := w.item.Put
		_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:                           p.TableName,
			Item:                                p.Item,
			ConditionExpression:                 p.ConditionExpression,
			ExpressionAttributeNames:            p.ExpressionAttributeNames,
			ExpressionAttributeValues:           p.ExpressionAttributeValues,
			ReturnValuesOnConditionCheckFailure: p.ReturnValuesOnConditionCheckFailure,
		})
	case w.item.Update != nil:
		u := w.item.Update
		_, err = s.Client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
			TableName:                           u.TableName,
			Key:                                 u.Key,
			UpdateExpression:                    u.UpdateExpression,
			ConditionExpression:                 u.ConditionExpression,
			ExpressionAttributeNames:            u.ExpressionAttributeNames,
			ExpressionAttributeValues:           u.ExpressionAttributeValues,
			ReturnValuesOnConditionCheckFailure: u.ReturnValuesOnConditionCheckFailure,
		})
	default:
		return errors.New("unsupported write")
	}
	if err == nil {
		return nil
	}

	var condCheckFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condCheckFailed) && w.onConditionFailed != nil {
		return w.onConditionFailed(condCheckFailed.Item)
	}
	return fmt.Errorf("failed to write item: %w", err)
}

// transact executes the writes as one TransactWriteItems call and maps a
// cancelled transaction back to the failing write.
func (s *Store) transact(ctx context.Context, ws []write) error {
	if len(ws) == 0 {
		return nil
	}
	if len(ws) > maxTransactItems {
		return fmt.Errorf("unit of work has %d writes, limit is %d", len(ws), maxTransactItems)
	}

	items := make([]types.TransactWriteItem, len(ws))
	for i, w := range ws {
		items[i] = w.item
	}

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err == nil {
		return nil
	}

	var tce *types.TransactionCanceledException
	if errors.As(err, &tce) {
		for i, reason := range tce.CancellationReasons {
			switch aws.ToString(reason.Code) {
			case "ConditionalCheckFailed":
				if i < len(ws) && ws[i].onConditionFailed != nil {
					return ws[i].onConditionFailed(reason.Item)
				}
				return fmt.Errorf("condition failed on write %d: %w", i, err)
			case "TransactionConflict":
				return storage.ErrConflict
			}
		}
	}
	return fmt.Errorf("failed to execute transaction: %w", err)
}
