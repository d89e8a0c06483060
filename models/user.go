package models

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

const DefaultProfilePicture = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_960_720.png"

type User struct {
	ID             uint      `json:"_id" gorm:"primaryKey"`
	Username       string    `json:"username" gorm:"uniqueIndex;not null"`
	Email          string    `json:"email" gorm:"uniqueIndex;not null"`
	Password       string    `json:"-" gorm:"not null"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin" gorm:"default:false"`
	CreatedAt      time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Caller is the authenticated identity the auth middleware attaches to a
// request.
type Caller struct {
	ID      uint
	IsAdmin bool
}

type SignupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest changes only the fields that are set.
type UpdateUserRequest struct {
	Password       string `json:"password" binding:"omitempty,min=6"`
	Username       string `json:"username" binding:"omitempty,min=7,max=20,lowercase,alphanum"`
	Email          string `json:"email"`
	ProfilePicture string `json:"profilePicture"`
}

type UserListResponse struct {
	Users          []User `json:"users"`
	TotalUsers     int64  `json:"totalUsers"`
	LastMonthUsers int64  `json:"lastMonthUsers"`
}

// UpdateUserMessage turns a validation failure on UpdateUserRequest into the
// message clients display. Only the first failing rule is reported.
func UpdateUserMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body"
	}

	fe := verrs[0]
	switch fe.StructField() {
	case "Password":
		return "Password must be at least 6 characters"
	case "Username":
		value, _ := fe.Value().(string)
		switch {
		case fe.Tag() == "min" || fe.Tag() == "max":
			return "Username must be between 7 and 20 characters"
		case strings.Contains(value, " "):
			return "Username cannot contain spaces"
		case fe.Tag() == "lowercase":
			return "Username must be lowercase"
		default:
			return "Username can only contain letters and numbers"
		}
	}
	return fe.Error()
}

func (u *User) HashPassword() error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
