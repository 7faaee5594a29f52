package mapper

import (
	"codecollab-be/internal/entity"
	"codecollab-be/internal/model"
)

type ProfileMapper struct{}

func NewProfileMapper() *ProfileMapper {
	return &ProfileMapper{}
}

func (m *ProfileMapper) ToEntity(p *model.Profile) *entity.Profile {
	if p == nil {
		return nil
	}
	return &entity.Profile{
		Id:        p.Id,
		UserId:    p.UserId,
		Interests: p.Interests,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToModel(p *entity.Profile) *model.Profile {
	if p == nil {
		return nil
	}
	return &model.Profile{
		Id:        p.Id,
		UserId:    p.UserId,
		Interests: p.Interests,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProfileMapper) ToEntities(profiles []*model.Profile) []*entity.Profile {
	result := make([]*entity.Profile, 0, len(profiles))
	for _, p := range profiles {
		result = append(result, m.ToEntity(p))
	}
	return result
}
