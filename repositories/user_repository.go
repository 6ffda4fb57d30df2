// File: /repositories/user_repository.go
package repositories

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loopline-api/apperr"
	"loopline-api/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create registers a new user. The password is hashed here and the hash
// never leaves this repository. The check-then-create pair on the username
// is backed by the unique index.
func (r *UserRepository) Create(username, password string, email *string) (*models.User, error) {
	var existing models.User
	err := r.db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, apperr.DuplicateUsername(username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:       models.NewID(),
		Username: username,
		Password: string(hashed),
		Email:    email,
	}
	if err := r.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies a username/password pair. Which of the two was
// wrong is never revealed.
func (r *UserRepository) Authenticate(username, password string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.InvalidCredentials()
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperr.InvalidCredentials()
	}
	return &user, nil
}

func (r *UserRepository) GetByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", id)
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", username)
		}
		return nil, err
	}
	return &user, nil
}

// SummariesByID resolves a set of user ids to summaries in one query.
// Ids with no matching user are simply absent from the map.
func (r *UserRepository) SummariesByID(ids []string) (map[string]models.UserSummary, error) {
	summaries := make(map[string]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return summaries, nil
	}
	var users []models.User
	if err := r.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		summaries[u.ID] = u.Summary()
	}
	return summaries, nil
}

// Rename changes the username, re-checking uniqueness against everyone else.
func (r *UserRepository) Rename(id, username string) error {
	var existing models.User
	err := r.db.Where("username = ? AND id <> ?", username, id).First(&existing).Error
	if err == nil {
		return apperr.DuplicateUsername(username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("username", username)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func (r *UserRepository) UpdateEmail(id string, email *string) error {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("email", email)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func (r *UserRepository) Delete(id string) error {
	res := r.db.Where("id = ?", id).Delete(&models.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	return nil
}

func (r *UserRepository) Exists(id string) (bool, error) {
	return exists(r.db, &models.User{}, id)
}

func (r *UserRepository) AssertExists(id string) error {
	return assertExists(r.db, &models.User{}, "user", id)
}
