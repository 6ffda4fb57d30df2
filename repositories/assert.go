// File: /repositories/assert.go
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"loopline-api/apperr"
)

// assertExists answers apperr.NotFound when no row of model carries the id.
func assertExists(db *gorm.DB, model interface{}, resource, id string) error {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperr.NotFound(resource, id)
	}
	return nil
}

// assertAuthor loads only the author column of the row and compares it to
// userID. One helper serves every authored collection, so the ownership
// rule cannot drift between them.
func assertAuthor(db *gorm.DB, model interface{}, resource, id, userID string) error {
	var row struct {
		AuthorID string
	}
	err := db.Model(model).Select("author_id").Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound(resource, id)
		}
		return err
	}
	if row.AuthorID != userID {
		return apperr.NotAuthor(userID, id)
	}
	return nil
}

// exists is the probe behind polymorphic item resolution. A miss is just
// false; only storage failures surface as errors.
func exists(db *gorm.DB, model interface{}, id string) (bool, error) {
	var count int64
	if err := db.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
