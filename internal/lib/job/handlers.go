package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// WelcomeSender delivers welcome emails. *email.Client implements it.
type WelcomeSender interface {
	Configured() bool
	SendWelcomeEmail(to, name string) error
}

// handleWelcomeEmailTask decodes the payload and sends the welcome email.
//
// A sender without credentials acknowledges the task without sending.
// Returning an error makes asynq schedule a retry.
func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", "welcome").
		Str("to", p.To).
		Logger()

	if j.sender == nil || !j.sender.Configured() {
		logger.Warn().Msg("email provider not configured, skipping welcome email")
		return nil
	}

	logger.Info().Msg("processing welcome email task")

	if err := j.sender.SendWelcomeEmail(p.To, p.Name); err != nil {
		logger.Error().Err(err).Msg("failed to send welcome email")
		return err
	}

	logger.Info().Msg("successfully sent welcome email")
	return nil
}
