package mapper

import (
	"time"

	"ideaboard-be/internal/entity"
	"ideaboard-be/internal/model"
)

type RoomMapper struct{}

func NewRoomMapper() *RoomMapper {
	return &RoomMapper{}
}

func (m *RoomMapper) ToEntity(r *model.Room) *entity.Room {
	if r == nil {
		return nil
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	return &entity.Room{
		Id:        r.Id,
		Name:      r.Name,
		OwnerId:   r.OwnerId,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RoomMapper) ToModel(r *entity.Room) *model.Room {
	if r == nil {
		return nil
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	return &model.Room{
		Id:        r.Id,
		Name:      r.Name,
		OwnerId:   r.OwnerId,
		CreatedAt: r.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *RoomMapper) ToEntities(rooms []*model.Room) []*entity.Room {
	entities := make([]*entity.Room, len(rooms))
	for i, r := range rooms {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

type MembershipMapper struct{}

func NewMembershipMapper() *MembershipMapper {
	return &MembershipMapper{}
}

func (m *MembershipMapper) ToEntity(ms *model.Membership) *entity.Membership {
	if ms == nil {
		return nil
	}
	return &entity.Membership{
		RoomId:   ms.RoomId,
		UserId:   ms.UserId,
		Role:     entity.MemberRole(ms.Role),
		JoinedAt: ms.JoinedAt,
	}
}

func (m *MembershipMapper) ToModel(ms *entity.Membership) *model.Membership {
	if ms == nil {
		return nil
	}
	return &model.Membership{
		RoomId:   ms.RoomId,
		UserId:   ms.UserId,
		Role:     string(ms.Role),
		JoinedAt: ms.JoinedAt,
	}
}

func (m *MembershipMapper) ToEntities(memberships []*model.Membership) []*entity.Membership {
	entities := make([]*entity.Membership, len(memberships))
	for i, ms := range memberships {
		entities[i] = m.ToEntity(ms)
	}
	return entities
}
