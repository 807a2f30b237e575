package providers

import (
	"fmt"
	"time"

	"aocbot/internal/structures"

	"github.com/gookit/validate"
	"github.com/robfig/cron/v3"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors
	}

	if _, err := time.LoadLocation(cv.conf.Output.Timezone); err != nil {
		return fmt.Errorf("output.timezone: %w", err)
	}
	if _, err := cron.ParseStandard(cv.conf.Schedule.Spec); err != nil {
		return fmt.Errorf("schedule.spec: %w", err)
	}
	return nil
}
