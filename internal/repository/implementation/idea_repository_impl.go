package implementation

import (
	"context"
	"errors"

	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/mapper"
	"ideaboard-be/internal/model"
	"ideaboard-be/internal/repository/contract"
	"ideaboard-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IdeaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.IdeaMapper
}

func NewIdeaRepository(db *gorm.DB) contract.IdeaRepository {
	return &IdeaRepositoryImpl{
		db:     db,
		mapper: mapper.NewIdeaMapper(),
	}
}

func (r *IdeaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *IdeaRepositoryImpl) Create(ctx context.Context, idea *entity.Idea) error {
	m := r.mapper.ToModel(idea)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*idea = *r.mapper.ToEntity(m)
	return nil
}

func (r *IdeaRepositoryImpl) Update(ctx context.Context, idea *entity.Idea) error {
	m := r.mapper.ToModel(idea)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*idea = *r.mapper.ToEntity(m)
	return nil
}

func (r *IdeaRepositoryImpl) UpdatePosition(ctx context.Context, id uuid.UUID, x, y float64) error {
	return r.db.WithContext(ctx).
		Model(&model.Idea{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"x": x, "y": y}).Error
}

func (r *IdeaRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Idea{}, id).Error
}

func (r *IdeaRepositoryImpl) DeleteAllByRoomId(ctx context.Context, roomId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("room_id = ?", roomId).
		Delete(&model.Idea{}).Error
}

func (r *IdeaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Idea, error) {
	var m model.Idea
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *IdeaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Idea, error) {
	var models []*model.Idea
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *IdeaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Idea{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
