// File: /controllers/user_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopline-api/apperr"
	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/repositories"
	"loopline-api/utils"
)

type UserController struct {
	users    *repositories.UserRepository
	sessions *repositories.SessionRepository
	posts    *repositories.PostRepository
	follows  *repositories.FollowRepository
	friends  *repositories.FriendRepository
	bus      *events.Bus
}

func NewUserController(users *repositories.UserRepository, sessions *repositories.SessionRepository, posts *repositories.PostRepository, follows *repositories.FollowRepository, friends *repositories.FriendRepository, bus *events.Bus) *UserController {
	return &UserController{
		users:    users,
		sessions: sessions,
		posts:    posts,
		follows:  follows,
		friends:  friends,
		bus:      bus,
	}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	user, err := uc.users.GetByID(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	profile, err := uc.buildProfile(user)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	profile.Email = user.Email

	c.JSON(http.StatusOK, profile)
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Username != nil {
		if !utils.IsValidUsername(*req.Username) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username must be 3-50 characters and contain only letters, numbers, dots and underscores"})
			return
		}
		if err := uc.users.Rename(userID, *req.Username); err != nil {
			utils.SendAppError(c, err)
			return
		}
	}

	if req.Email != nil {
		if *req.Email != "" && !utils.IsValidEmail(*req.Email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		if err := uc.users.UpdateEmail(userID, req.Email); err != nil {
			utils.SendAppError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}

// DeleteAccount removes the user, every session bound to them and their
// relationship rows. Authored posts and comments stay behind with a
// dangling author id.
func (uc *UserController) DeleteAccount(c *gin.Context) {
	userID := c.GetString("user_id")

	if err := uc.users.Delete(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}
	if err := uc.sessions.EndAllForUser(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}
	if err := uc.follows.DeleteAllForUser(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}
	if err := uc.friends.DeleteAllForUser(userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// GetUser answers a public profile: summary, counts and how the target
// relates to the caller. The email never leaves the owner's own profile.
func (uc *UserController) GetUser(c *gin.Context) {
	viewerID := c.GetString("user_id")
	targetID, ok := pathID(c, "id")
	if !ok {
		return
	}

	user, err := uc.users.GetByID(targetID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	profile, err := uc.buildProfile(user)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	isFollowing, err := uc.follows.Exists(viewerID, targetID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	isFriend, err := uc.friends.AreFriends(viewerID, targetID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	requestSent, err := uc.friends.HasPending(viewerID, targetID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	requestReceived, err := uc.friends.HasPending(targetID, viewerID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.PublicProfileResponse{
		ProfileResponse: profile,
		IsFollowing:     isFollowing,
		IsFriend:        isFriend,
		RequestSent:     requestSent,
		RequestReceived: requestReceived,
	})
}

func (uc *UserController) FollowUser(c *gin.Context) {
	followerID := c.GetString("user_id")
	followingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if followerID == followingID {
		utils.SendAppError(c, apperr.Invalid("cannot follow yourself"))
		return
	}

	if err := uc.users.AssertExists(followingID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	if err := uc.follows.Create(followerID, followingID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	uc.bus.Publish(events.FollowCreated{
		FollowerID:  followerID,
		FollowingID: followingID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Successfully followed user"})
}

func (uc *UserController) UnfollowUser(c *gin.Context) {
	followerID := c.GetString("user_id")
	followingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := uc.follows.Delete(followerID, followingID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

func (uc *UserController) GetFollowers(c *gin.Context) {
	userID := c.GetString("user_id")

	ids, err := uc.follows.FollowerIDs(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	users, err := uc.orderedSummaries(ids)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"followers": users})
}

func (uc *UserController) GetFollowing(c *gin.Context) {
	userID := c.GetString("user_id")

	ids, err := uc.follows.FollowingIDs(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	users, err := uc.orderedSummaries(ids)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"following": users})
}

func (uc *UserController) buildProfile(user *models.User) (models.ProfileResponse, error) {
	followers, err := uc.follows.CountFollowers(user.ID)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	following, err := uc.follows.CountFollowing(user.ID)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	friends, err := uc.friends.CountFriends(user.ID)
	if err != nil {
		return models.ProfileResponse{}, err
	}
	posts, err := uc.posts.CountByAuthor(user.ID)
	if err != nil {
		return models.ProfileResponse{}, err
	}

	return models.ProfileResponse{
		User:           user.Summary(),
		FollowersCount: followers,
		FollowingCount: following,
		FriendsCount:   friends,
		PostsCount:     posts,
		CreatedAt:      user.CreatedAt,
	}, nil
}

func (uc *UserController) orderedSummaries(ids []string) ([]models.UserSummary, error) {
	summaries, err := uc.users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	users := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		users = append(users, summaries[id])
	}
	return users, nil
}
