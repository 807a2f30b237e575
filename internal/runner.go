package internal

import (
	"context"
	"fmt"
	"io"
	"os"

	"aocbot/internal/providers"
	"aocbot/internal/services"
	"aocbot/internal/state"
	"aocbot/internal/structures"
)

// Runner performs one batch invocation: baseline in from a file, baseline
// out to a file, every computed message echoed to Out.
type Runner struct {
	Out io.Writer

	conf        *structures.Config
	logger      providers.Logger
	service     services.BoardServiceInterface
	fileManager *state.FileManager
	notifier    *services.BufferedNotifier
}

func NewRunner(conf *structures.Config, logger providers.Logger, service services.BoardServiceInterface, fileManager *state.FileManager, notifier *services.BufferedNotifier) *Runner {
	return &Runner{
		Out:         os.Stdout,
		conf:        conf,
		logger:      logger,
		service:     service,
		fileManager: fileManager,
		notifier:    notifier,
	}
}

func (r *Runner) Run(ctx context.Context, input, output string) error {
	defer r.logger.Close()
	defer r.fileManager.Close()

	r.logger.Infof(providers.TypeApp, "Obtained config: year=%s, board=%s", r.conf.Board.Year, r.conf.Board.Board)

	previous, err := r.fileManager.Load(input)
	if err != nil {
		return fmt.Errorf("read baseline %s: %w", input, err)
	}

	next, err := r.service.Invoke(ctx, previous)
	for i, msg := range r.notifier.Messages() {
		fmt.Fprintf(r.Out, "### Submitted msg no. %d\n%s\n", i, msg)
	}
	if err != nil {
		return err
	}

	if err := r.fileManager.Save(output, next); err != nil {
		return fmt.Errorf("write baseline %s: %w", output, err)
	}
	r.logger.Infof(providers.TypeApp, "Obtained next baseline with %d member(s)", next.Len())
	return nil
}
