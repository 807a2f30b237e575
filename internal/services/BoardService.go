package services

import (
	"context"
	"sync"
	"time"

	"aocbot/internal/models"
	"aocbot/internal/providers"
)

const UnreachableMessage = "Unable to connect to advent of code leaderboard. Please check logs."

type BoardServiceInterface interface {
	Invoke(ctx context.Context, previous *models.Baseline) (*models.Baseline, error)
	NextState(ctx context.Context, previous *models.Baseline, current *models.Leaderboard) (*models.Baseline, error)
	Status() InvocationStatus
}

// InvocationStatus describes the most recent invocation.
type InvocationStatus struct {
	At      time.Time `json:"at"`
	Outcome string    `json:"outcome"`
	Members int       `json:"members"`
}

const (
	OutcomeNone        = "none"
	OutcomeFirstRun    = "first_run"
	OutcomeUpdated     = "updated"
	OutcomeUnreachable = "unreachable"
	OutcomeFailed      = "failed"
)

type BoardService struct {
	fetcher  LeaderboardFetcherInterface
	composer *MessageComposer
	notifier NotifierInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface

	// invocations never overlap
	invokeMu sync.Mutex

	statusMu sync.Mutex
	status   InvocationStatus
}

func NewBoardService(fetcher LeaderboardFetcherInterface, composer *MessageComposer, notifier NotifierInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) BoardServiceInterface {
	return &BoardService{
		fetcher:  fetcher,
		composer: composer,
		notifier: notifier,
		logger:   logger,
		metrics:  metrics,
		status:   InvocationStatus{Outcome: OutcomeNone},
	}
}

// Invoke fetches the leaderboard and advances previous to the next baseline.
func (bs *BoardService) Invoke(ctx context.Context, previous *models.Baseline) (*models.Baseline, error) {
	bs.invokeMu.Lock()
	defer bs.invokeMu.Unlock()

	if previous == nil {
		bs.logger.Infof(providers.TypeState, "No previous baseline, initializing")
	}
	current := bs.fetcher.Fetch(ctx)
	return bs.NextState(ctx, previous, current)
}

// NextState sends exactly one message and returns the baseline to persist.
// An unreachable leaderboard keeps previous; a first run only records the
// current snapshot.
func (bs *BoardService) NextState(ctx context.Context, previous *models.Baseline, current *models.Leaderboard) (*models.Baseline, error) {
	var (
		message string
		outcome string
	)

	switch {
	case current == nil:
		message = UnreachableMessage
		outcome = OutcomeUnreachable
	case previous == nil:
		outcome = OutcomeFirstRun
	default:
		digest := bs.composer.Compose(previous, current)
		message = digest.Text
		outcome = OutcomeUpdated
		bs.metrics.AddEvents("joined", digest.Joined)
		bs.metrics.AddEvents("star", digest.Stars)
		bs.logger.Debugf(providers.TypeState, "Composed %d join(s) and %d star(s)", digest.Joined, digest.Stars)
	}

	next := previous
	if current != nil {
		next = current.Baseline()
	}

	if err := bs.notifier.Submit(ctx, message); err != nil {
		bs.record(OutcomeFailed, previous)
		bs.metrics.IncInvocations(OutcomeFailed)
		return nil, err
	}

	bs.record(outcome, next)
	bs.metrics.IncInvocations(outcome)
	bs.metrics.SetMembersTracked(next.Len())
	return next, nil
}

func (bs *BoardService) record(outcome string, baseline *models.Baseline) {
	bs.statusMu.Lock()
	defer bs.statusMu.Unlock()
	bs.status = InvocationStatus{At: time.Now(), Outcome: outcome, Members: baseline.Len()}
}

func (bs *BoardService) Status() InvocationStatus {
	bs.statusMu.Lock()
	defer bs.statusMu.Unlock()
	return bs.status
}
