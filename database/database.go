// File: /database/database.go
package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loopline-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Info),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Follow{},
		&models.FriendRequest{},
		&models.Friendship{},
		&models.Score{},
		&models.Notification{},
	)

	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Add custom indexes for better performance
	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	// Add triggers or constraints if needed
	if err := addDatabaseConstraints(db); err != nil {
		return fmt.Errorf("failed to add database constraints: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hot list queries

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_posts_author_created ON posts(author_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for posts: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_comments_item_created ON comments(item_id, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for comments: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_notifications_recipient_created ON notifications(recipient_id, created_at DESC)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for notifications: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_friend_requests_to_status ON friend_requests(to_id, status)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for friend_requests: %v\n", err)
	}

	// Stale-session cleanup scans unbound sessions by idle time
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for sessions: %v\n", err)
	}

	return nil
}

func addDatabaseConstraints(db *gorm.DB) error {
	// Unique constraints backing up the check-then-create paths

	// Prevent duplicate follows
	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT uk_follows_follower_following UNIQUE (follower_id, following_id)").Error; err != nil {
		// Ignore error if constraint already exists
		fmt.Printf("Warning: Could not add unique constraint for follows: %v\n", err)
	}

	// Prevent self-following
	if err := db.Exec("ALTER TABLE follows ADD CONSTRAINT ck_follows_no_self_follow CHECK (follower_id != following_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for follows: %v\n", err)
	}

	// Prevent duplicate reactions of the same type by the same user
	if err := db.Exec("ALTER TABLE reactions ADD CONSTRAINT uk_reactions_author_item_type UNIQUE (author_id, item_id, type)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for reactions: %v\n", err)
	}

	// One friendship row per pair; the pair is stored ordered
	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT uk_friendships_pair UNIQUE (user1_id, user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add unique constraint for friendships: %v\n", err)
	}

	if err := db.Exec("ALTER TABLE friendships ADD CONSTRAINT ck_friendships_ordered CHECK (user1_id < user2_id)").Error; err != nil {
		fmt.Printf("Warning: Could not add check constraint for friendships: %v\n", err)
	}

	return nil
}

// SeedData can be used to populate the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	// Check if we already have users
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)

	if userCount > 0 {
		fmt.Println("Database already has data, skipping seed")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	aliceEmail := "alice@example.com"
	testUsers := []models.User{
		{
			ID:       "00000000-0000-0000-0000-000000000001",
			Username: "alice",
			Password: string(hash),
			Email:    &aliceEmail,
		},
		{
			ID:       "00000000-0000-0000-0000-000000000002",
			Username: "bob",
			Password: string(hash),
		},
	}

	for _, user := range testUsers {
		if err := db.Create(&user).Error; err != nil {
			fmt.Printf("Warning: Could not create test user %s: %v\n", user.Username, err)
		}
	}

	testPosts := []models.Post{
		{
			ID:       "00000000-0000-0000-0000-000000000101",
			AuthorID: testUsers[0].ID,
			Text:     "First loop! Anyone else around this weekend?",
			Options:  models.JSONMap{"visibility": "public"},
		},
		{
			ID:       "00000000-0000-0000-0000-000000000102",
			AuthorID: testUsers[1].ID,
			Text:     "Trying out the new feed. Hello everyone!",
		},
	}

	for _, post := range testPosts {
		if err := db.Create(&post).Error; err != nil {
			fmt.Printf("Warning: Could not create test post by %s: %v\n", post.AuthorID, err)
		}
	}

	if err := db.Create(&models.Follow{FollowerID: testUsers[1].ID, FollowingID: testUsers[0].ID}).Error; err != nil {
		fmt.Printf("Warning: Could not create test follow: %v\n", err)
	}

	// Every seeded entity gets its score record, same as registration
	// and posting would have produced.
	for _, itemID := range []string{testUsers[0].ID, testUsers[1].ID, testPosts[0].ID, testPosts[1].ID} {
		if err := db.Create(&models.Score{ID: models.NewID(), ItemID: itemID}).Error; err != nil {
			fmt.Printf("Warning: Could not create score record for %s: %v\n", itemID, err)
		}
	}

	fmt.Println("Database seeded with test data")
	return nil
}
