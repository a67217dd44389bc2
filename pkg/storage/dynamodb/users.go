package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/chris/btc-wallet-ledger/pkg/models"
)

// AddUser creates a user item with a zero wallet_count.
func (s *Store) AddUser(ctx context.Context, user models.User) (*models.User, error) {
	user.WalletCount = 0
	userAV, err := attributevalue.MarshalMap(user)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal user: %w", err)
	}

	err = s.apply(ctx, write{
		item: types.TransactWriteItem{
			Put: &types.Put{
				TableName:           aws.String(s.UsersTableName),
				Item:                userAV,
				ConditionExpression: aws.String("attribute_not_exists(api_key)"),
			},
		},
		onConditionFailed: func(map[string]types.AttributeValue) error {
			return fmt.Errorf("user with api key %s already exists", user.APIKey)
		},
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}
