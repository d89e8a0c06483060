package models

import (
	"encoding/json"
	"time"
)

const (
	DefaultPostCategory = "uncategorized"
	DefaultPostImage    = "https://www.hostinger.com/tutorials/wp-content/uploads/sites/2/2021/09/how-to-write-a-blog-post.png"
)

type Post struct {
	ID        uint      `json:"_id" gorm:"primaryKey"`
	UserID    uint      `json:"userID" gorm:"not null;index"`
	Title     string    `json:"title" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Slug      string    `json:"slug" gorm:"not null;index"`
	Category  string    `json:"category" gorm:"index"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"index"`
}

type CreatePostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// UpdatePostRequest carries the editable fields. UserID is only read for the
// permission check; nil fields are left untouched.
type UpdatePostRequest struct {
	UserID   OwnerID `json:"userID"`
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	Category *string `json:"category"`
	Image    *string `json:"image"`
}

// OwnerID is a user id as clients send it: a JSON string or number. Any
// string is accepted so that a mismatch is an authorization failure rather
// than a decode error.
type OwnerID string

func (id *OwnerID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = OwnerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = OwnerID(n.String())
	return nil
}

type PostListResponse struct {
	Posts          []Post `json:"posts"`
	TotalPosts     int64  `json:"totalPosts"`
	PostsLastMonth int64  `json:"postsLastMonth"`
}
