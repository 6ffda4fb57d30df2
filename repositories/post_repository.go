// File: /repositories/post_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(authorID, text string, options models.JSONMap) (*models.Post, error) {
	post := models.Post{
		ID:       models.NewID(),
		AuthorID: authorID,
		Text:     text,
		Options:  options,
	}
	if err := r.db.Create(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *PostRepository) Get(id string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("id = ?", id).First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post", id)
		}
		return nil, err
	}
	return &post, nil
}

// List returns posts newest first, optionally filtered to one author.
func (r *PostRepository) List(authorID string, page, limit int) ([]models.Post, int64, error) {
	query := r.db.Model(&models.Post{})
	if authorID != "" {
		query = query.Where("author_id = ?", authorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// ListByAuthors returns posts by any of the given authors, newest first.
// An empty author set yields an empty page, not everyone's posts.
func (r *PostRepository) ListByAuthors(authorIDs []string, page, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	query := r.db.Model(&models.Post{}).Where("author_id IN ?", authorIDs)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *PostRepository) Update(id, text string, options models.JSONMap) (*models.Post, error) {
	updates := map[string]interface{}{
		"text":       text,
		"updated_at": time.Now(),
	}
	if options != nil {
		updates["options"] = options
	}

	res := r.db.Model(&models.Post{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("post", id)
	}
	return r.Get(id)
}

func (r *PostRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Post{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("post", id)
	}
	return nil
}

func (r *PostRepository) Exists(id string) (bool, error) {
	return exists(r.db, &models.Post{}, id)
}

func (r *PostRepository) AssertExists(id string) error {
	return assertExists(r.db, &models.Post{}, "post", id)
}

func (r *PostRepository) AssertAuthor(id, userID string) error {
	return assertAuthor(r.db, &models.Post{}, "post", id, userID)
}

func (r *PostRepository) GetAuthorID(id string) (string, error) {
	var row struct {
		AuthorID string
	}
	err := r.db.Model(&models.Post{}).Select("author_id").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("post", id)
		}
		return "", err
	}
	return row.AuthorID, nil
}

func (r *PostRepository) CountByAuthor(authorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}
