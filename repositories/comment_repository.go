// File: /repositories/comment_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create stores the comment under an item id the caller has already
// resolved. The collection itself never checks what the item is.
func (r *CommentRepository) Create(authorID, itemID, body string) (*models.Comment, error) {
	comment := models.Comment{
		ID:       models.NewID(),
		AuthorID: authorID,
		ItemID:   itemID,
		Body:     body,
	}
	if err := r.db.Create(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) Get(id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.Where("id = ?", id).First(&comment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

// ListForItem returns the item's comments oldest first. An unknown item id
// simply has no comments.
func (r *CommentRepository) ListForItem(itemID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Where("item_id = ?", itemID).Order("created_at ASC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *CommentRepository) Update(id, body string) (*models.Comment, error) {
	res := r.db.Model(&models.Comment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"body":       body,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("comment", id)
	}
	return r.Get(id)
}

func (r *CommentRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Comment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("comment", id)
	}
	return nil
}

func (r *CommentRepository) Exists(id string) (bool, error) {
	return exists(r.db, &models.Comment{}, id)
}

func (r *CommentRepository) AssertExists(id string) error {
	return assertExists(r.db, &models.Comment{}, "comment", id)
}

func (r *CommentRepository) AssertAuthor(id, userID string) error {
	return assertAuthor(r.db, &models.Comment{}, "comment", id, userID)
}

func (r *CommentRepository) GetAuthorID(id string) (string, error) {
	var row struct {
		AuthorID string
	}
	err := r.db.Model(&models.Comment{}).Select("author_id").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("comment", id)
		}
		return "", err
	}
	return row.AuthorID, nil
}
