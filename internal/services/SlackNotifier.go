package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"aocbot/internal/providers"
	"aocbot/internal/structures"

	"github.com/slack-go/slack"
)

var ErrNotify = errors.New("notification failed")

type NotifierInterface interface {
	Submit(ctx context.Context, message string) error
}

type SlackNotifier struct {
	webhookURL string
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	client     *http.Client
}

func NewSlackNotifier(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: conf.Board.WebhookURL,
		logger:     logger,
		metrics:    metrics,
		client:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit posts message to the webhook. Blank messages are dropped without a
// request; any non-200 answer is returned as an ErrNotify.
func (n *SlackNotifier) Submit(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		n.logger.Infof(providers.TypeNotify, "Empty message, not submitting to Slack")
		n.metrics.IncNotifications("skipped")
		return nil
	}

	msg := &slack.WebhookMessage{Text: "\n" + message}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.client, msg); err != nil {
		n.metrics.IncNotifications("failed")
		return fmt.Errorf("%w: %w", ErrNotify, err)
	}

	n.metrics.IncNotifications("sent")
	n.logger.Infof(providers.TypeNotify, "Submitted %d line(s) to Slack", strings.Count(message, "\n"))
	return nil
}

// BufferedNotifier records every message it is given and forwards it only
// when a forward notifier is set. The batch command uses it for dry runs.
type BufferedNotifier struct {
	forward NotifierInterface

	mu       sync.Mutex
	messages []string
}

func NewBufferedNotifier(forward NotifierInterface) *BufferedNotifier {
	return &BufferedNotifier{forward: forward}
}

// NewDryRunNotifier forwards to Slack only when --post-to-slack was given.
func NewDryRunNotifier(flags *structures.CliFlags, slackNotifier *SlackNotifier) *BufferedNotifier {
	if flags.PostToSlack {
		return NewBufferedNotifier(slackNotifier)
	}
	return NewBufferedNotifier(nil)
}

func (b *BufferedNotifier) Submit(ctx context.Context, message string) error {
	b.mu.Lock()
	b.messages = append(b.messages, message)
	b.mu.Unlock()

	if b.forward == nil {
		return nil
	}
	return b.forward.Submit(ctx, message)
}

func (b *BufferedNotifier) Messages() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.messages...)
}
