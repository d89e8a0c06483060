package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogapi/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user with this email or username already exists")
)

type UserService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db, now: time.Now}
}

func (s *UserService) CreateUser(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	if err := s.ensureUnique(ctx, 0, req.Email, req.Username); err != nil {
		return nil, err
	}

	user := &models.User{
		Username:       req.Username,
		Email:          req.Email,
		Password:       req.Password,
		ProfilePicture: models.DefaultProfilePicture,
	}

	if err := user.HashPassword(); err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	if err := s.insert(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// insert relies on the unique indexes when two writers pass ensureUnique
// at the same time.
func (s *UserService) insert(ctx context.Context, user *models.User) error {
	return duplicateErr(s.db.WithContext(ctx).Create(user).Error)
}

func duplicateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser
	}
	return err
}

// GetUsers lists users newest first unless sort is "asc", along with the
// total count and the count created since MonthAgo.
func (s *UserService) GetUsers(ctx context.Context, startIndex, limit int, sort string) (*models.UserListResponse, error) {
	db := s.db.WithContext(ctx)

	order := "created_at DESC"
	if sort == SortAscending {
		order = "created_at ASC"
	}

	users := []models.User{}
	if err := db.Order(order).Offset(startIndex).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	response := &models.UserListResponse{Users: users}
	if err := db.Model(&models.User{}).Count(&response.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.User{}).
		Where("created_at >= ?", MonthAgo(s.now())).
		Count(&response.LastMonthUsers).Error; err != nil {
		return nil, err
	}

	return response, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uint, req *models.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.ensureUnique(ctx, id, req.Email, req.Username); err != nil {
		return nil, err
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.ProfilePicture != "" {
		user.ProfilePicture = req.ProfilePicture
	}
	if req.Password != "" {
		user.Password = req.Password
		if err := user.HashPassword(); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	if err := duplicateErr(s.db.WithContext(ctx).Save(user).Error); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

// ensureUnique reports ErrDuplicateUser when another user already holds the
// email or username. exceptID excludes the user being updated.
func (s *UserService) ensureUnique(ctx context.Context, exceptID uint, email, username string) error {
	if email == "" && username == "" {
		return nil
	}

	query := s.db.WithContext(ctx).Model(&models.User{}).Where("id <> ?", exceptID)
	switch {
	case email != "" && username != "":
		query = query.Where("email = ? OR username = ?", email, username)
	case email != "":
		query = query.Where("email = ?", email)
	default:
		query = query.Where("username = ?", username)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicateUser
	}
	return nil
}
