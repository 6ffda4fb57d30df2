// File: /repositories/reaction_repository.go
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type ReactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Create stores a reaction. An author holds each reaction type at most once
// per item; duplicates are rejected, backed by the composite unique index.
func (r *ReactionRepository) Create(authorID, itemID, reactionType string) (*models.Reaction, error) {
	var existing models.Reaction
	err := r.db.Where("author_id = ? AND item_id = ? AND type = ?", authorID, itemID, reactionType).
		First(&existing).Error
	if err == nil {
		return nil, apperr.InvalidState("user %s already reacted with %q to %s", authorID, reactionType, itemID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	reaction := models.Reaction{
		ID:       models.NewID(),
		AuthorID: authorID,
		ItemID:   itemID,
		Type:     reactionType,
	}
	if err := r.db.Create(&reaction).Error; err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *ReactionRepository) Get(id string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("id = ?", id).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("reaction", id)
		}
		return nil, err
	}
	return &reaction, nil
}

func (r *ReactionRepository) ListForItem(itemID string) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.Where("item_id = ?", itemID).Order("created_at ASC").Find(&reactions).Error
	if err != nil {
		return nil, err
	}
	return reactions, nil
}

func (r *ReactionRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.Reaction{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("reaction", id)
	}
	return nil
}

func (r *ReactionRepository) AssertAuthor(id, userID string) error {
	return assertAuthor(r.db, &models.Reaction{}, "reaction", id, userID)
}
