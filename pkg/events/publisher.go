package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Publisher defines the interface for a component that hands committed
// transactions to an asynchronous consumer.
type Publisher interface {
	Publish(ctx context.Context, evt TransactionCommitted) error
}

// SQSAPI is the subset of the SQS client the publisher uses.
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SQSPublisher implements the Publisher interface using AWS SQS.
type SQSPublisher struct {
	Client   SQSAPI
	QueueURL string
}

// NewSQSPublisher creates a new SQSPublisher.
func NewSQSPublisher(client SQSAPI, queueURL string) *SQSPublisher {
	return &SQSPublisher{
		Client:   client,
		QueueURL: queueURL,
	}
}

// Make sure we conform to the interface
var _ Publisher = (*SQSPublisher)(nil)

// Publish sends the event to the SQS queue.
func (p *SQSPublisher) Publish(ctx context.Context, evt TransactionCommitted) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal event for SQS: %w", err)
	}

	_, err = p.Client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(p.QueueURL),
		MessageBody: aws.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("failed to send message to SQS: %w", err)
	}

	return nil
}

// NoOpPublisher drops every event.
type NoOpPublisher struct{}

var _ Publisher = NoOpPublisher{}

func (NoOpPublisher) Publish(context.Context, TransactionCommitted) error { return nil }

// PublishingObserver forwards committed transactions to a Publisher.
type PublishingObserver struct {
	Publisher Publisher
}

var _ Observer = (*PublishingObserver)(nil)

func (o *PublishingObserver) OnTransactionCommitted(ctx context.Context, evt TransactionCommitted) error {
	return o.Publisher.Publish(ctx, evt)
}

// DecodeTransactionCommitted parses a message body produced by SQSPublisher.
func DecodeTransactionCommitted(body string) (TransactionCommitted, error) {
	var evt TransactionCommitted
	if err := json.Unmarshal([]byte(body), &evt); err != nil {
		return TransactionCommitted{}, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if evt.TransactionID == "" {
		return TransactionCommitted{}, errors.New("event has no transaction id")
	}
	return evt, nil
}
