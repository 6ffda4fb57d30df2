// File: /repositories/follow_repository.go
package repositories

import (
	"errors"

	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create adds the follow edge. Following someone twice is rejected;
// whether follower and following are distinct users is the caller's check.
func (r *FollowRepository) Create(followerID, followingID string) error {
	var existing models.Follow
	err := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		First(&existing).Error
	if err == nil {
		return apperr.InvalidState("user %s already follows %s", followerID, followingID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	follow := models.Follow{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	return r.db.Create(&follow).Error
}

func (r *FollowRepository) Delete(followerID, followingID string) error {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "user %s does not follow %s", followerID, followingID)
	}
	return nil
}

func (r *FollowRepository) Exists(followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

// FollowerIDs lists who follows the user, newest edge first.
func (r *FollowRepository) FollowerIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("following_id = ?", userID).
		Order("created_at DESC").
		Pluck("follower_id", &ids).Error
	return ids, err
}

// FollowingIDs lists who the user follows, newest edge first.
func (r *FollowRepository) FollowingIDs(userID string) ([]string, error) {
	var ids []string
	err := r.db.Model(&models.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Pluck("following_id", &ids).Error
	return ids, err
}

func (r *FollowRepository) CountFollowers(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *FollowRepository) CountFollowing(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}

// DeleteAllForUser removes every edge touching the user, both directions.
// Used when the account goes away.
func (r *FollowRepository) DeleteAllForUser(userID string) error {
	return r.db.Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&models.Follow{}).Error
}
