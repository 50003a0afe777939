package mapper

import (
	"docvault-rag-be/internal/entity"
	"docvault-rag-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

// ToEntity fails if the stored role name is unknown. A row with a role the
// code does not recognise must not become a usable identity.
func (m *UserMapper) ToEntity(u *model.User) (*entity.User, error) {
	if u == nil {
		return nil, nil
	}

	role, err := entity.ParseRole(u.Role)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         role,
		Department:   u.Department,
		Status:       entity.UserStatus(u.Status),
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}, nil
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}

	return &model.User{
		Id:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		FullName:     u.FullName,
		Role:         u.Role.String(),
		Department:   u.Department,
		Status:       string(u.Status),
		LastLoginAt:  u.LastLoginAt,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
