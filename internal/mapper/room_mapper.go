package mapper

import (
	"codecollab-be/internal/entity"
	"codecollab-be/internal/model"
)

type RoomMapper struct {
	users *UserMapper
}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{users: NewUserMapper()}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}
	return &entity.Room{
		Id:        r.Id,
		Name:      r.Name,
		Language:  r.Language,
		CreatorId: r.CreatorId,
		Creator:   m.users.ToEntity(r.Creator),
		CreatedAt: r.CreatedAt,
	}
}

// ToModel leaves the Creator association unset; only CreatorId is persisted.
func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}
	return &model.Room{
		Id:        r.Id,
		Name:      r.Name,
		Language:  r.Language,
		CreatorId: r.CreatorId,
		CreatedAt: r.CreatedAt,
	}
}

func (m *RoomMapper) ToEntities(rooms []*model.Room) []*entity.Room {
	result := make([]*entity.Room, 0, len(rooms))
	for _, r := range rooms {
		result = append(result, m.ToEntity(r))
	}
	return result
}
