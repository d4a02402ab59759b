package service

import (
	"context"
	"fmt"

	"github.com/deppfellow/account-service/internal/model"
	"github.com/deppfellow/account-service/internal/repository"
	"github.com/rs/zerolog"
)

//go:generate mockgen -source=account.go -destination=../mocks/mock_enqueuer.go -package=mocks

// WelcomeEmailEnqueuer schedules the welcome email for a new account.
// *job.JobService implements it.
type WelcomeEmailEnqueuer interface {
	EnqueueWelcomeEmail(ctx context.Context, to, name string) error
}

// AccountService implements the account operations on top of the repository.
type AccountService struct {
	repo   repository.AccountRepository
	jobs   WelcomeEmailEnqueuer
	logger *zerolog.Logger
}

// NewAccountService constructs an AccountService. jobs may be nil, in which
// case no welcome email is scheduled.
func NewAccountService(logger *zerolog.Logger, repo repository.AccountRepository, jobs WelcomeEmailEnqueuer) *AccountService {
	return &AccountService{
		repo:   repo,
		jobs:   jobs,
		logger: logger,
	}
}

// withDefaults fills date_joined with today's date when it was not supplied.
func withDefaults(fields model.AccountFields) model.AccountFields {
	if fields.DateJoined.IsZero() {
		fields.DateJoined = model.Today()
	}
	return fields
}

// Create persists a new account and schedules its welcome email.
//
// Failing to schedule the email is logged and does not fail the create.
func (s *AccountService) Create(ctx context.Context, fields model.AccountFields) (*model.Account, error) {
	account, err := s.repo.Create(ctx, withDefaults(fields))
	if err != nil {
		return nil, err
	}

	if s.jobs != nil {
		if err := s.jobs.EnqueueWelcomeEmail(ctx, account.Email, account.Name); err != nil {
			s.logger.Error().
				Err(err).
				Int64("account_id", account.ID).
				Msg("failed to enqueue welcome email")
		}
	}

	return account, nil
}

func (s *AccountService) List(ctx context.Context) ([]model.Account, error) {
	return s.repo.List(ctx)
}

func (s *AccountService) Get(ctx context.Context, id int64) (*model.Account, error) {
	return s.repo.Get(ctx, id)
}

// Update replaces every mutable field of the account. A missing date_joined
// resets to today, the same as on create.
func (s *AccountService) Update(ctx context.Context, id int64, fields model.AccountFields) (*model.Account, error) {
	return s.repo.Update(ctx, id, withDefaults(fields))
}

// Delete removes the account. Deleting an unknown id succeeds.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
