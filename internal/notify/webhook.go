package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// WebhookNotifier posts the snapshot as JSON to a fixed URL.
type WebhookNotifier struct {
	client *resty.Client
	url    string
}

func NewWebhookNotifier(url string, timeout time.Duration) *WebhookNotifier {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json")

	return &WebhookNotifier{client: client, url: url}
}

func (n *WebhookNotifier) NotifyBookingConfirmed(ctx context.Context, snap Snapshot) error {
	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(snap).
		Post(n.url)
	if err != nil {
		return fmt.Errorf("post booking webhook failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("booking webhook returned status %d", resp.StatusCode())
	}
	return nil
}
