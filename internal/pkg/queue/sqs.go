package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
)

const visibilityTimeoutSeconds = 10

// SQSAPI is the subset of the SQS client used by SQSQueue.
type SQSAPI interface {
	GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error)
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
	CreateQueue(ctx context.Context, params *sqs.CreateQueueInput, optFns ...func(*sqs.Options)) (*sqs.CreateQueueOutput, error)
	DeleteQueue(ctx context.Context, params *sqs.DeleteQueueInput, optFns ...func(*sqs.Options)) (*sqs.DeleteQueueOutput, error)
}

// SQSQueue resolves queue names to URLs on every call.
type SQSQueue struct {
	client SQSAPI
}

func NewSQSQueue(client SQSAPI) *SQSQueue {
	return &SQSQueue{client: client}
}

func (q *SQSQueue) queueURL(ctx context.Context, name string) (string, error) {
	out, err := q.client.GetQueueUrl(ctx, &sqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err != nil {
		var missing *types.QueueDoesNotExist
		if errors.As(err, &missing) {
			return "", fmt.Errorf("%w: %s", ErrQueueNotFound, name)
		}
		return "", fmt.Errorf("get queue url for %s failed: %w", name, err)
	}
	return aws.ToString(out.QueueUrl), nil
}

func (q *SQSQueue) Enqueue(ctx context.Context, queueName, body string) error {
	url, err := q.queueURL(ctx, queueName)
	if err != nil {
		return err
	}

	if _, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(url),
		MessageBody: aws.String(body),
	}); err != nil {
		return fmt.Errorf("send message to %s failed: %w", queueName, err)
	}
	return nil
}

func (q *SQSQueue) DequeueOne(ctx context.Context, queueName string) (*Message, bool, error) {
	url, err := q.queueURL(ctx, queueName)
	if err != nil {
		return nil, false, err
	}

	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(url),
		MaxNumberOfMessages: 1,
		VisibilityTimeout:   visibilityTimeoutSeconds,
	})
	if err != nil {
		return nil, false, fmt.Errorf("receive message from %s failed: %w", queueName, err)
	}
	if len(out.Messages) == 0 {
		return nil, false, nil
	}

	m := out.Messages[0]
	if _, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(url),
		ReceiptHandle: m.ReceiptHandle,
	}); err != nil {
		return nil, false, fmt.Errorf("delete message from %s failed: %w", queueName, err)
	}

	return &Message{ID: aws.ToString(m.MessageId), Body: aws.ToString(m.Body)}, true, nil
}

// CreateQueue creates a standard queue and returns its URL.
func (q *SQSQueue) CreateQueue(ctx context.Context, name string) (string, error) {
	out, err := q.client.CreateQueue(ctx, &sqs.CreateQueueInput{QueueName: aws.String(name)})
	if err != nil {
		return "", fmt.Errorf("create queue %s failed: %w", name, err)
	}
	return aws.ToString(out.QueueUrl), nil
}

func (q *SQSQueue) DeleteQueue(ctx context.Context, name string) error {
	url, err := q.queueURL(ctx, name)
	if err != nil {
		return err
	}
	if _, err := q.client.DeleteQueue(ctx, &sqs.DeleteQueueInput{QueueUrl: aws.String(url)}); err != nil {
		return fmt.Errorf("delete queue %s failed: %w", name, err)
	}
	return nil
}
