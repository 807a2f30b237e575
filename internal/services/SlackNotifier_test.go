package services_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"aocbot/internal/services"
	"aocbot/internal/structures"
	"aocbot/internal/testutil"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notifierConfig(url string) *structures.Config {
	return &structures.Config{Board: structures.BoardConfig{WebhookURL: url}}
}

func TestSlackNotifier_PostsTextWithLeadingNewline(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &payload)
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	metrics := testutil.NewMockMetrics()
	n := services.NewSlackNotifier(notifierConfig(srv.URL), &testutil.MockLogger{}, metrics)

	require.NoError(t, n.Submit(context.Background(), "⭐ Some One has completed day 1 part 1 at x\n"))
	assert.Equal(t, "\n⭐ Some One has completed day 1 part 1 at x\n", payload["text"])
	assert.Equal(t, 1, metrics.Notifications["sent"])
}

func TestSlackNotifier_BlankMessageSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	logger := &testutil.MockLogger{}
	metrics := testutil.NewMockMetrics()
	n := services.NewSlackNotifier(notifierConfig(srv.URL), logger, metrics)

	require.NoError(t, n.Submit(context.Background(), ""))
	require.NoError(t, n.Submit(context.Background(), " \n\t"))
	assert.False(t, called)
	assert.Equal(t, 2, metrics.Notifications["skipped"])
	assert.True(t, logger.HasLog("info", "Empty message"))
}

func TestSlackNotifier_Non200IsNotifyError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_token", http.StatusForbidden)
	}))
	defer srv.Close()

	metrics := testutil.NewMockMetrics()
	n := services.NewSlackNotifier(notifierConfig(srv.URL), &testutil.MockLogger{}, metrics)

	err := n.Submit(context.Background(), "hello\n")
	require.Error(t, err)
	assert.True(t, errors.Is(err, services.ErrNotify))
	assert.Equal(t, 1, metrics.Notifications["failed"])
}

func TestBufferedNotifier_RecordsWithoutForwarding(t *testing.T) {
	b := services.NewBufferedNotifier(nil)
	require.NoError(t, b.Submit(context.Background(), "one"))
	require.NoError(t, b.Submit(context.Background(), ""))
	assert.Equal(t, []string{"one", ""}, b.Messages())
}

func TestBufferedNotifier_ForwardsAndPropagatesErrors(t *testing.T) {
	forward := &testutil.MockNotifier{Err: services.ErrNotify}
	b := services.NewBufferedNotifier(forward)

	err := b.Submit(context.Background(), "msg")
	assert.ErrorIs(t, err, services.ErrNotify)
	assert.Equal(t, []string{"msg"}, forward.Messages)
	assert.Equal(t, []string{"msg"}, b.Messages())
}

func TestNewDryRunNotifier(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()
	slackNotifier := services.NewSlackNotifier(notifierConfig(srv.URL), &testutil.MockLogger{}, testutil.NewMockMetrics())

	dry := services.NewDryRunNotifier(&structures.CliFlags{}, slackNotifier)
	require.NoError(t, dry.Submit(context.Background(), "text\n"))
	assert.False(t, called)

	live := services.NewDryRunNotifier(&structures.CliFlags{PostToSlack: true}, slackNotifier)
	require.NoError(t, live.Submit(context.Background(), "text\n"))
	assert.True(t, called)
}
