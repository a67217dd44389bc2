package dynamodb

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/btc-wallet-ledger/pkg/models"
	"github.com/chris/btc-wallet-ledger/pkg/result"
	"github.com/chris/btc-wallet-ledger/pkg/storage"
)

// GetWallet retrieves a wallet by its public key.
func (s *Store) GetWallet(ctx context.Context, publicKey string) (*models.Wallet, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(s.WalletsTableName),
		Key:            map[string]types.AttributeValue{"public_key": &types.AttributeValueMemberS{Value: publicKey}},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet from DynamoDB: %w", err)
	}
	if out.Item == nil {
		return nil, result.WalletNotFound
	}

	var wallet models.Wallet
	if err := attributevalue.UnmarshalMap(out.Item, &wallet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal wallet: %w", err)
	}
	return &wallet, nil
}

// CountWalletsOfUser reads the owner's wallet_count counter. Inside a unit of
// work the value is remembered and the wallet insert is conditioned on it.
func (s *Store) CountWalletsOfUser(ctx context.Context, ownerAPIKey string) (int, error) {
	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.UsersTableName),
		Key:                  map[string]types.AttributeValue{"api_key": &types.AttributeValueMemberS{Value: ownerAPIKey}},
		ProjectionExpression: aws.String("wallet_count"),
		ConsistentRead:       aws.Bool(true),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get wallet owner from DynamoDB: %w", err)
	}

	var owner models.User
	if out.Item != nil {
		if err := attributevalue.UnmarshalMap(out.Item, &owner); err != nil {
			return 0, fmt.Errorf("failed to unmarshal wallet owner: %w", err)
		}
	}
	if s.tx != nil {
		s.tx.walletCounts[ownerAPIKey] = owner.WalletCount
	}
	return owner.WalletCount, nil
}

// AddWallet puts the wallet and increments the owner's wallet_count together.
func (s *Store) AddWallet(ctx context.Context, wallet models.Wallet) (*models.Wallet, error) {
	walletAV, err := attributevalue.MarshalMap(wallet)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal wallet: %w", err)
	}

	condition := "attribute_exists(api_key)"
	values := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
	}
	if s.tx != nil {
		if seen, ok := s.tx.walletCounts[wallet.OwnerAPIKey]; ok {
			condition = "attribute_exists(api_key) AND wallet_count = :seen"
			values[":seen"] = &types.AttributeValueMemberN{Value: strconv.Itoa(seen)}
			s.tx.walletCounts[wallet.OwnerAPIKey] = seen + 1
		}
	}

	err = s.apply(ctx,
		write{
			item: types.TransactWriteItem{
				Put: &types.Put{
					TableName:           aws.String(s.WalletsTableName),
					Item:                walletAV,
					ConditionExpression: aws.String("attribute_not_exists(public_key)"),
				},
			},
			onConditionFailed: func(map[string]types.AttributeValue) error {
				return fmt.Errorf("wallet %s already exists", wallet.PublicKey)
			},
		},
		write{
			item: types.TransactWriteItem{
				Update: &types.Update{
					TableName:                           aws.String(s.UsersTableName),
					Key:                                 map[string]types.AttributeValue{"api_key": &types.AttributeValueMemberS{Value: wallet.OwnerAPIKey}},
					UpdateExpression:                    aws.String("ADD wallet_count :one"),
					ConditionExpression:                 aws.String(condition),
					ExpressionAttributeValues:           values,
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			onConditionFailed: func(old map[string]types.AttributeValue) error {
				if len(old) == 0 {
					return result.UserNotFound
				}
				return storage.ErrConflict
			},
		},
	)
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// UpdateWalletBalance adds delta with a conditional ADD that refuses to take
// the balance below zero.
func (s *Store) UpdateWalletBalance(ctx context.Context, publicKey string, delta float64) error {
	deltaAV, err := attributevalue.Marshal(delta)
	if err != nil {
		return fmt.Errorf("failed to marshal balance delta: %w", err)
	}
	minAV, err := attributevalue.Marshal(-delta)
	if err != nil {
		return fmt.Errorf("failed to marshal minimum balance: %w", err)
	}

	return s.apply(ctx, write{
		item: types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.WalletsTableName),
				Key:                 map[string]types.AttributeValue{"public_key": &types.AttributeValueMemberS{Value: publicKey}},
				UpdateExpression:    aws.String("ADD btc_balance :delta"),
				ConditionExpression: aws.String("attribute_exists(public_key) AND btc_balance >= :min"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":delta": deltaAV,
					":min":   minAV,
				},
				ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
			},
		},
		onConditionFailed: func(old map[string]types.AttributeValue) error {
			if len(old) == 0 {
				return result.WalletNotAccessible
			}
			return result.NotEnoughBalance
		},
	})
}
