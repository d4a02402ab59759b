package repository

import (
	"github.com/deppfellow/account-service/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Account AccountRepository
}

// NewRepositories constructs the repository container on top of the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return &Repositories{
		Account: NewAccountRepository(s.DB.Pool),
	}
}
