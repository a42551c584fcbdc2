package service

import (
	"github.com/fernando-mashimo/github-users-db/internal/logger"
	"github.com/fernando-mashimo/github-users-db/internal/store"
)

type Services struct {
	UserService UserService
}

func NewServices(fetcher Fetcher, userRepository store.UserRepository, logger *logger.Logger) *Services {
	return &Services{
		UserService: NewUserService(fetcher, userRepository, logger),
	}
}
