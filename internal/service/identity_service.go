package service

import (
	"context"

	"codecollab-be/internal/pkg/logger"
	"codecollab-be/internal/pkg/serverutils"
	"codecollab-be/internal/repository/memory"
	"codecollab-be/internal/repository/specification"
	"codecollab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// AnonymousDisplayName is used for callers without a valid identity.
const AnonymousDisplayName = "Anonymous"

type IIdentityService interface {
	DisplayName(ctx context.Context, token string) string
}

type identityService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.DisplayNameCache
	jwtSecret  string
	anonymous  string
	logger     logger.ILogger
}

func NewIdentityService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.DisplayNameCache,
	jwtSecret string,
	anonymous string,
	log logger.ILogger,
) IIdentityService {
	if anonymous == "" {
		anonymous = AnonymousDisplayName
	}
	return &identityService{
		uowFactory: uowFactory,
		cache:      cache,
		jwtSecret:  jwtSecret,
		anonymous:  anonymous,
		logger:     log,
	}
}

// DisplayName resolves token to the username it belongs to. It never fails:
// anything short of a valid token for an existing user is anonymous.
func (s *identityService) DisplayName(ctx context.Context, token string) string {
	if token == "" {
		return s.anonymous
	}

	userIdStr, err := serverutils.ParseUserID(token, s.jwtSecret)
	if err != nil {
		s.logger.Debug("IdentityService", "Rejected token", map[string]interface{}{"error": err.Error()})
		return s.anonymous
	}

	if name, ok := s.cache.Get(userIdStr); ok {
		return name
	}

	userId, err := uuid.Parse(userIdStr)
	if err != nil {
		return s.anonymous
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		s.logger.Warn("IdentityService", "User lookup failed", map[string]interface{}{
			"user_id": userIdStr,
			"error":   err.Error(),
		})
		return s.anonymous
	}
	if user == nil {
		return s.anonymous
	}

	s.cache.Save(userIdStr, user.Username)
	return user.Username
}
