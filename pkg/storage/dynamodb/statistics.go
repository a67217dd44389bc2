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
	"github.com/shopspring/decimal"
)

// UpdateCommissionStats moves the transaction from APPLIED to COMPLETED and
// adds it to its day bucket. The status condition acts as the idempotency
// lock: a second delivery fails the condition and nothing is counted twice.
func (s *Store) UpdateCommissionStats(ctx context.Context, txID string, commission float64, createdAt time.Time) error {
	commissionAV, err := attributevalue.Marshal(commission)
	if err != nil {
		return fmt.Errorf("failed to marshal commission: %w", err)
	}

	return s.apply(ctx,
		write{
			item: types.TransactWriteItem{
				Update: &types.Update{
					TableName:           aws.String(s.TransactionsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: txID}},
					UpdateExpression:    aws.String("SET #status = :completed_status"),
					ConditionExpression: aws.String("#status = :applied_status"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":completed_status": &types.AttributeValueMemberS{Value: string(models.StatusCompleted)},
						":applied_status":   &types.AttributeValueMemberS{Value: string(models.StatusApplied)},
					},
					ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
				},
			},
			onConditionFailed: func(old map[string]types.AttributeValue) error {
				if len(old) == 0 {
					return fmt.Errorf("%w: %s", storage.ErrTransactionNotFound, txID)
				}
				return storage.ErrStatsAlreadyApplied
			},
		},
		write{
			item: types.TransactWriteItem{
				Update: &types.Update{
					TableName:        aws.String(s.StatsTableName),
					Key:              map[string]types.AttributeValue{"stat_period": &types.AttributeValueMemberS{Value: models.StatPeriodOf(createdAt)}},
					UpdateExpression: aws.String("ADD commission_sum_btc :commission, total_transactions :one"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":commission": commissionAV,
						":one":        &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	)
}

// FetchStatistics scans every day bucket and sums them.
func (s *Store) FetchStatistics(ctx context.Context) (*models.CommissionStats, error) {
	sum := decimal.Zero
	var total int64

	input := &dynamodb.ScanInput{
		TableName:      aws.String(s.StatsTableName),
		ConsistentRead: aws.Bool(true),
	}
	for {
		page, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statistics: %w", err)
		}

		var buckets []models.CommissionStats
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &buckets); err != nil {
			return nil, fmt.Errorf("failed to unmarshal statistics: %w", err)
		}
		for _, b := range buckets {
			sum = sum.Add(decimal.NewFromFloat(b.CommissionSumBTC))
			total += b.TotalTransactions
		}

		if len(page.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = page.LastEvaluatedKey
	}

	return &models.CommissionStats{
		CommissionSumBTC:  sum.InexactFloat64(),
		TotalTransactions: total,
	}, nil
}
