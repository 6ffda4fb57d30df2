package repositories

import (
	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

// FriendRepository owns the friend machinery: pending requests, their
// terminal history rows, and friendships.
type FriendRepository struct {
	db *gorm.DB
}

func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// orderPair returns the two ids smaller-first, the canonical friendship
// storage order.
func orderPair(a, b string) (string, string) {
	if a > b {
		return b, a
	}
	return a, b
}

// HasPendingBetween reports whether a pending request exists in either
// direction between the two users.
func (r *FriendRepository) HasPendingBetween(a, b string) (bool, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("status = ?", models.FriendRequestStatusPending).
		Where("(from_id = ? AND to_id = ?) OR (from_id = ? AND to_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// HasPending reports whether fromID has a pending request to toID.
func (r *FriendRepository) HasPending(fromID, toID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.FriendRequest{}).
		Where("from_id = ? AND to_id = ? AND status = ?", fromID, toID, models.FriendRequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

// CreateRequest writes the pending row. The no-duplicate and
// not-already-friends rules are checked by the caller, which sees both
// collections.
func (r *FriendRepository) CreateRequest(fromID, toID string) (*models.FriendRequest, error) {
	request := models.FriendRequest{
		FromID: fromID,
		ToID:   toID,
		Status: models.FriendRequestStatusPending,
	}
	if err := r.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ConsumeRequest resolves the pending request from fromID to toID: the
// pending row is deleted, a terminal-status row records the outcome, and an
// accepted request also creates the friendship. The writes share one
// transaction so a request can never be resolved twice.
func (r *FriendRepository) ConsumeRequest(fromID, toID string, status models.FriendRequestStatus) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("from_id = ? AND to_id = ? AND status = ?",
			fromID, toID, models.FriendRequestStatusPending).
			Delete(&models.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("no pending friend request from %s to %s", fromID, toID)
		}

		record := models.FriendRequest{
			FromID: fromID,
			ToID:   toID,
			Status: status,
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}

		if status == models.FriendRequestStatusAccepted {
			user1, user2 := orderPair(fromID, toID)
			friendship := models.Friendship{
				User1ID: user1,
				User2ID: user2,
			}
			if err := tx.Create(&friendship).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteRequest withdraws a pending request before the receiver acts on it.
// Nothing is kept: a withdrawn request never happened.
func (r *FriendRepository) DeleteRequest(fromID, toID string) error {
	res := r.db.Where("from_id = ? AND to_id = ? AND status = ?",
		fromID, toID, models.FriendRequestStatusPending).
		Delete(&models.FriendRequest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.InvalidState("no pending friend request from %s to %s", fromID, toID)
	}
	return nil
}

func (r *FriendRepository) AreFriends(a, b string) (bool, error) {
	user1, user2 := orderPair(a, b)
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? AND user2_id = ?", user1, user2).
		Count(&count).Error
	return count > 0, err
}

func (r *FriendRepository) RemoveFriendship(a, b string) error {
	user1, user2 := orderPair(a, b)
	res := r.db.Where("user1_id = ? AND user2_id = ?", user1, user2).
		Delete(&models.Friendship{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.KindNotFound, "no friendship between %s and %s", a, b)
	}
	return nil
}

// FriendIDs lists the user's friends, newest friendship first.
func (r *FriendRepository) FriendIDs(userID string) ([]string, error) {
	var friendships []models.Friendship
	err := r.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(friendships))
	for _, f := range friendships {
		if f.User1ID == userID {
			ids = append(ids, f.User2ID)
		} else {
			ids = append(ids, f.User1ID)
		}
	}
	return ids, nil
}

// ListIncoming returns pending requests addressed to the user, newest first.
func (r *FriendRepository) ListIncoming(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("to_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListSent returns pending requests the user has sent, newest first.
func (r *FriendRepository) ListSent(userID string) ([]models.FriendRequest, error) {
	var requests []models.FriendRequest
	err := r.db.Where("from_id = ? AND status = ?", userID, models.FriendRequestStatusPending).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *FriendRepository) CountFriends(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Friendship{}).
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Count(&count).Error
	return count, err
}

// DeleteAllForUser removes friendships and requests touching the user,
// both directions, history rows included. Used when the account goes away.
func (r *FriendRepository) DeleteAllForUser(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user1_id = ? OR user2_id = ?", userID, userID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("from_id = ? OR to_id = ?", userID, userID).
			Delete(&models.FriendRequest{}).Error
	})
}
