package service

import (
	"context"

	"codecollab-be/internal/dto"
	"codecollab-be/internal/entity"
	"codecollab-be/internal/repository/specification"
	"codecollab-be/internal/repository/unitofwork"
	"codecollab-be/pkg/similarity"

	"github.com/google/uuid"
)

const recommendedRoomLimit = 5

type IRecommendationService interface {
	RecommendedRooms(ctx context.Context, userId uuid.UUID) ([]*dto.RecommendedRoomResponse, error)
}

type recommendationService struct {
	uowFactory  unitofwork.RepositoryFactory
	maxClusters int
}

func NewRecommendationService(uowFactory unitofwork.RepositoryFactory) IRecommendationService {
	return &recommendationService{
		uowFactory:  uowFactory,
		maxClusters: similarity.DefaultMaxClusters,
	}
}

// RecommendedRooms clusters the caller's interests with every other non-empty
// profile and returns the newest rooms created by users in the caller's cluster.
func (s *recommendationService) RecommendedRooms(ctx context.Context, userId uuid.UUID) ([]*dto.RecommendedRoomResponse, error) {
	result := make([]*dto.RecommendedRoomResponse, 0)
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return result, nil
	}

	others, err := uow.ProfileRepository().FindAll(ctx,
		specification.ExcludeUser{UserID: userId},
		specification.InterestsNotEmpty{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	similar := similarity.RecommendProfiles(profile, others, s.maxClusters)
	if len(similar) == 0 {
		return result, nil
	}

	creatorIds := make([]uuid.UUID, 0, len(similar))
	for _, p := range similar {
		creatorIds = append(creatorIds, p.UserId)
	}

	rooms, err := uow.RoomRepository().FindAll(ctx,
		specification.CreatedByIn{UserIDs: creatorIds},
		specification.WithCreator{},
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recommendedRoomLimit},
	)
	if err != nil {
		return nil, err
	}

	for _, room := range rooms {
		result = append(result, toRecommendedRoom(room))
	}
	return result, nil
}

func toRecommendedRoom(room *entity.Room) *dto.RecommendedRoomResponse {
	creator := ""
	if room.Creator != nil {
		creator = room.Creator.Username
	}
	return &dto.RecommendedRoomResponse{
		Name:    room.Name,
		Creator: creator,
		Id:      room.Id,
	}
}
