package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/manabi09/job-portal/internal/models"
	pgrepo "github.com/manabi09/job-portal/internal/repositories/postgres"
	"github.com/manabi09/job-portal/internal/storage"
	"github.com/manabi09/job-portal/internal/utils"
	"gorm.io/datatypes"
)

type UpdateProfileInput struct {
	Name       *string
	Phone      *string
	Bio        *string
	Skills     *[]string
	Experience *int
	Education  *json.RawMessage
	Location   *json.RawMessage
}

type UserService interface {
	GetMe(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error)
	UpdatePassword(ctx context.Context, userID, current, next string) error
	UploadAvatar(ctx context.Context, userID, objectName, contentType string, r io.Reader) (*models.User, error)
	UploadResume(ctx context.Context, userID, objectName, contentType string, r io.Reader) (*models.User, error)
}

type userService struct {
	users    pgrepo.UserRepository
	uploader storage.Uploader
}

func NewUserService(users pgrepo.UserRepository, uploader storage.Uploader) UserService {
	return &userService{users: users, uploader: uploader}
}

func (s *userService) GetMe(ctx context.Context, userID string) (*models.User, error) {
	const op = "UserService.GetMe"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return u, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*models.User, error) {
	const op = "UserService.UpdateProfile"

	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		u.Name = *in.Name
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Skills != nil {
		u.Skills = *in.Skills
	}
	if in.Experience != nil {
		u.Experience = *in.Experience
	}
	if in.Education != nil {
		u.Education = datatypes.JSON(*in.Education)
	}
	if in.Location != nil {
		u.Location = datatypes.JSON(*in.Location)
	}
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to update profile", err)
	}
	return u, nil
}

func (s *userService) UpdatePassword(ctx context.Context, userID, current, next string) error {
	const op = "UserService.UpdatePassword"

	if len(next) < 6 {
		return utils.E(utils.CodeInvalidArgument, op, "password must be at least 6 characters", nil)
	}

	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return err
	}
	if err := utils.CheckPassword(u.Password, current); err != nil {
		return utils.E(utils.CodeUnauthorized, op, "current password is incorrect", nil)
	}

	hash, err := utils.HashPassword(next)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to hash password", err)
	}
	u.Password = hash
	u.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, u); err != nil {
		return utils.E(utils.CodeInternal, op, "failed to update password", err)
	}
	return nil
}

func (s *userService) UploadAvatar(ctx context.Context, userID, objectName, contentType string, r io.Reader) (*models.User, error) {
	const op = "UserService.UploadAvatar"
	return s.uploadTo(ctx, op, userID, objectName, contentType, r, func(u *models.User, path string) {
		u.Avatar = path
	})
}

func (s *userService) UploadResume(ctx context.Context, userID, objectName, contentType string, r io.Reader) (*models.User, error) {
	const op = "UserService.UploadResume"
	return s.uploadTo(ctx, op, userID, objectName, contentType, r, func(u *models.User, path string) {
		u.Resume = path
	})
}

func (s *userService) uploadTo(ctx context.Context, op, userID, objectName, contentType string, r io.Reader, set func(*models.User, string)) (*models.User, error) {
	if userID == "" || objectName == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id and object_name are required", nil)
	}
	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	u, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	storedPath, err := s.uploader.Upload(ctx, objectName, contentType, r)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload file", err)
	}

	set(u, storedPath)
	u.UpdatedAt = time.Now().UTC()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to persist file path", err)
	}
	return u, nil
}
