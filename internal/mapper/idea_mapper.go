package mapper

import (
	"time"

	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/model"
)

type IdeaMapper struct{}

func NewIdeaMapper() *IdeaMapper {
	return &IdeaMapper{}
}

func (m *IdeaMapper) ToEntity(i *model.Idea) *entity.Idea {
	if i == nil {
		return nil
	}

	var updatedAt *time.Time
	if !i.UpdatedAt.IsZero() {
		t := i.UpdatedAt
		updatedAt = &t
	}

	color := entity.IdeaColor(i.Color)
	if !entity.ValidIdeaColor(color) {
		color = entity.DefaultIdeaColor
	}

	return &entity.Idea{
		Id:              i.Id,
		RoomId:          i.RoomId,
		Text:            i.Text,
		AuthorId:        i.AuthorId,
		AuthorName:      i.AuthorName,
		AuthorAvatarURL: i.AuthorAvatarURL,
		X:               i.X,
		Y:               i.Y,
		Color:           color,
		Width:           i.Width,
		Height:          i.Height,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *IdeaMapper) ToModel(i *entity.Idea) *model.Idea {
	if i == nil {
		return nil
	}

	var updatedAt time.Time
	if i.UpdatedAt != nil {
		updatedAt = *i.UpdatedAt
	}

	return &model.Idea{
		Id:              i.Id,
		RoomId:          i.RoomId,
		Text:            i.Text,
		AuthorId:        i.AuthorId,
		AuthorName:      i.AuthorName,
		AuthorAvatarURL: i.AuthorAvatarURL,
		X:               i.X,
		Y:               i.Y,
		Color:           string(i.Color),
		Width:           i.Width,
		Height:          i.Height,
		CreatedAt:       i.CreatedAt,
		UpdatedAt:       updatedAt,
	}
}

func (m *IdeaMapper) ToEntities(ideas []*model.Idea) []*entity.Idea {
	entities := make([]*entity.Idea, len(ideas))
	for i, idea := range ideas {
		entities[i] = m.ToEntity(idea)
	}
	return entities
}
