package services

import (
	"zakup_backend/internal/models"
	"zakup_backend/internal/repositories"
	"zakup_backend/internal/services/dto"
	"zakup_backend/pkg/apperrors"
)

type UserService interface {
	GetProfile(userID string) (*dto.UserDTO, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error)
	ListUsers(criteria dto.UserSearchCriteria) (*dto.UserListResponse, error)
	SuspendUser(userID string) error
	ActivateUser(userID string) error
	DeleteUser(userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// GetProfile - профиль пользователя
func (s *UserServiceImpl) GetProfile(userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	profile := dto.UserFromModel(user)
	return &profile, nil
}

// UpdateProfile - правка собственного профиля
func (s *UserServiceImpl) UpdateProfile(userID string, req *dto.UpdateProfileRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.CompanyName != nil {
		user.CompanyName = *req.CompanyName
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile := dto.UserFromModel(user)
	return &profile, nil
}

// ListUsers - админский список пользователей с фильтрами
func (s *UserServiceImpl) ListUsers(criteria dto.UserSearchCriteria) (*dto.UserListResponse, error) {
	if criteria.Page < 1 {
		criteria.Page = 1
	}
	if criteria.PageSize < 1 || criteria.PageSize > 100 {
		criteria.PageSize = 20
	}

	users, total, err := s.userRepo.FindWithFilter(repositories.UserFilter{
		Role:     models.UserRole(criteria.Role),
		Status:   models.UserStatus(criteria.Status),
		Search:   criteria.Query,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	dtos := make([]dto.UserDTO, len(users))
	for i := range users {
		dtos[i] = dto.UserFromModel(&users[i])
	}

	return &dto.UserListResponse{
		Users:    dtos,
		Total:    total,
		Page:     criteria.Page,
		PageSize: criteria.PageSize,
	}, nil
}

// SuspendUser - блокировка пользователя админом
func (s *UserServiceImpl) SuspendUser(userID string) error {
	return s.setStatus(userID, models.UserStatusSuspended)
}

// ActivateUser - разблокировка
func (s *UserServiceImpl) ActivateUser(userID string) error {
	return s.setStatus(userID, models.UserStatusActive)
}

// DeleteUser - удаление пользователя (soft delete)
func (s *UserServiceImpl) DeleteUser(userID string) error {
	if err := s.userRepo.Delete(userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) setStatus(userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
