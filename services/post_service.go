package services

import (
	"context"
	"errors"
	"time"

	"blogapi/models"
	"blogapi/utils"

	"gorm.io/gorm"
)

type PostService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewPostService(db *gorm.DB) *PostService {
	return &PostService{db: db, now: time.Now}
}

func (s *PostService) CreatePost(ctx context.Context, userID uint, req *models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		UserID:   userID,
		Title:    req.Title,
		Content:  req.Content,
		Slug:     utils.Slugify(req.Title),
		Category: req.Category,
		Image:    req.Image,
	}
	if post.Category == "" {
		post.Category = models.DefaultPostCategory
	}
	if post.Image == "" {
		post.Image = models.DefaultPostImage
	}

	if err := s.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) GetPosts(ctx context.Context, filter PostFilter) (*models.PostListResponse, error) {
	db := s.db.WithContext(ctx)

	posts := []models.Post{}
	if err := db.Model(&models.Post{}).
		Scopes(filter.Where, filter.Page).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	response := &models.PostListResponse{Posts: posts}

	if err := db.Model(&models.Post{}).Count(&response.TotalPosts).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Post{}).
		Where("created_at >= ?", MonthAgo(s.now())).
		Count(&response.PostsLastMonth).Error; err != nil {
		return nil, err
	}

	return response, nil
}

// UpdatePost sets the provided editable fields and returns the stored post.
// A missing post yields (nil, nil). Slug and owner are never written.
func (s *PostService) UpdatePost(ctx context.Context, id uint, req *models.UpdatePostRequest) (*models.Post, error) {
	db := s.db.WithContext(ctx)

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	updates["updated_at"] = s.now()

	result := db.Model(&models.Post{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var post models.Post
	if err := db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &post, nil
}

// DeletePost removes the post without checking that it exists first.
func (s *PostService) DeletePost(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}
