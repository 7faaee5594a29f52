package service

import (
	"context"
	"time"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/repository/specification"
	"codecollab-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProfileService interface {
	Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
	UpdateInterests(ctx context.Context, userId uuid.UUID, req *dto.UpdateInterestsRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProfileService(uowFactory unitofwork.RepositoryFactory) IProfileService {
	return &profileService{uowFactory: uowFactory}
}

func (s *profileService) Get(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	profile, err := uow.ProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return toProfileResponse(profile), nil
}

// UpdateInterests replaces the caller's interests, creating the profile on first use.
func (s *profileService) UpdateInterests(ctx context.Context, userId uuid.UUID, req *dto.UpdateInterestsRequest) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if profile == nil {
		profile = &entity.Profile{
			Id:        uuid.New(),
			UserId:    userId,
			Interests: req.Interests,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err = uow.ProfileRepository().Create(ctx, profile)
	} else {
		profile.Interests = req.Interests
		profile.UpdatedAt = now
		err = uow.ProfileRepository().Update(ctx, profile)
	}
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return toProfileResponse(profile), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		UserId:    p.UserId,
		Interests: p.Interests,
		UpdatedAt: p.UpdatedAt,
	}
}
