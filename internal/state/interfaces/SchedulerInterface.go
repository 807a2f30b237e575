package interfaces

import "context"

type SchedulerInterface interface {
	Init() error
	Run(ctx context.Context) error
	Stop()
}
