// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import (
	"github.com/deppfellow/account-service/internal/lib/job"
	"github.com/deppfellow/account-service/internal/repository"
	"github.com/deppfellow/account-service/internal/server"
)

type Services struct {
	Account *AccountService
	Job     *job.JobService
}

func NewServices(s *server.Server, repos *repository.Repositories) *Services {
	// A nil *job.JobService must stay a nil interface.
	var jobs WelcomeEmailEnqueuer
	if s.Job != nil {
		jobs = s.Job
	}

	return &Services{
		Account: NewAccountService(s.Logger, repos.Account, jobs),
		Job:     s.Job,
	}
}
