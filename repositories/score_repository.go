// File: /repositories/score_repository.go
package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type ScoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create writes the item's score record. The first write wins; an item
// never carries a second record, backed by the unique index on item_id.
func (r *ScoreRepository) Create(itemID string, value float64) (*models.Score, error) {
	var existing models.Score
	err := r.db.Where("item_id = ?", itemID).First(&existing).Error
	if err == nil {
		return nil, apperr.InvalidState("item %s already has a score record", itemID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	score := models.Score{
		ID:     models.NewID(),
		ItemID: itemID,
		Value:  value,
	}
	if err := r.db.Create(&score).Error; err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *ScoreRepository) Get(itemID string) (*models.Score, error) {
	var score models.Score
	err := r.db.Where("item_id = ?", itemID).First(&score).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("score for item", itemID)
		}
		return nil, err
	}
	return &score, nil
}

// Update overwrites the item's score value. Only items that already have a
// record can be scored; records only ever come from item creation.
func (r *ScoreRepository) Update(itemID string, value float64) (*models.Score, error) {
	res := r.db.Model(&models.Score{}).Where("item_id = ?", itemID).Updates(map[string]interface{}{
		"value":      value,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("score for item", itemID)
	}
	return r.Get(itemID)
}
