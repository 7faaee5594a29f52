package implementation

import (
	"context"
	"errors"

	"codecollab-be/internal/entity"
	"codecollab-be/internal/mapper"
	"codecollab-be/internal/model"
	"codecollab-be/internal/repository/contract"
	"codecollab-be/internal/repository/specification"

	"gorm.io/gorm"
)

type RoomRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RoomMapper
}

func NewRoomRepository(db *gorm.DB) contract.RoomRepository {
	return &RoomRepositoryImpl{
		db:     db,
		mapper: mapper.NewRoomMapper(),
	}
}

func (r *RoomRepositoryImpl) Create(ctx context.Context, room *entity.Room) error {
	m := r.mapper.ToModel(room)
	if err := r.db.WithContext(ctx).Omit("Creator").Create(m).Error; err != nil {
		return err
	}
	creator := room.Creator
	*room = *r.mapper.ToEntity(m)
	room.Creator = creator
	return nil
}

func (r *RoomRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Room, error) {
	var m model.Room
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *RoomRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Room, error) {
	var models []*model.Room
	query := specification.Apply(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *RoomRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := specification.Apply(r.db.WithContext(ctx).Model(&model.Room{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
