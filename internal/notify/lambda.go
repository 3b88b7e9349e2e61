package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// LambdaAPI is the subset of the Lambda client used by LambdaNotifier.
type LambdaAPI interface {
	Invoke(ctx context.Context, params *lambda.InvokeInput, optFns ...func(*lambda.Options)) (*lambda.InvokeOutput, error)
}

// LambdaNotifier invokes a function asynchronously with the snapshot as payload.
type LambdaNotifier struct {
	client       LambdaAPI
	functionName string
}

func NewLambdaNotifier(client LambdaAPI, functionName string) *LambdaNotifier {
	return &LambdaNotifier{client: client, functionName: functionName}
}

func (n *LambdaNotifier) NotifyBookingConfirmed(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal booking payload failed: %w", err)
	}

	out, err := n.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(n.functionName),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("invoke %s failed: %w", n.functionName, err)
	}
	if out.FunctionError != nil {
		return fmt.Errorf("invoke %s failed: %s", n.functionName, aws.ToString(out.FunctionError))
	}
	return nil
}
