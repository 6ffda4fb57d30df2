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

type FriendController struct {
	friends *repositories.FriendRepository
	users   *repositories.UserRepository
	bus     *events.Bus
}

func NewFriendController(friends *repositories.FriendRepository, users *repositories.UserRepository, bus *events.Bus) *FriendController {
	return &FriendController{
		friends: friends,
		users:   users,
		bus:     bus,
	}
}

func (fc *FriendController) SendFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if senderID == receiverID {
		utils.SendAppError(c, apperr.Invalid("cannot send a friend request to yourself"))
		return
	}

	if err := fc.users.AssertExists(receiverID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	// A pending request and a friendship never coexist for the same pair,
	// in either direction.
	areFriends, err := fc.friends.AreFriends(senderID, receiverID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	if areFriends {
		utils.SendAppError(c, apperr.InvalidState("users %s and %s are already friends", senderID, receiverID))
		return
	}

	hasPending, err := fc.friends.HasPendingBetween(senderID, receiverID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	if hasPending {
		utils.SendAppError(c, apperr.InvalidState("a pending friend request already exists between %s and %s", senderID, receiverID))
		return
	}

	if _, err := fc.friends.CreateRequest(senderID, receiverID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	fc.bus.Publish(events.FriendRequestSent{
		FromID: senderID,
		ToID:   receiverID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Friend request sent successfully"})
}

// WithdrawFriendRequest removes a pending request the caller sent. Only
// the sender can withdraw; the recipient rejects instead.
func (fc *FriendController) WithdrawFriendRequest(c *gin.Context) {
	senderID := c.GetString("user_id")
	receiverID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := fc.friends.DeleteRequest(senderID, receiverID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request withdrawn"})
}

func (fc *FriendController) AcceptFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	senderID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := fc.friends.ConsumeRequest(senderID, userID, models.FriendRequestStatusAccepted); err != nil {
		utils.SendAppError(c, err)
		return
	}

	fc.bus.Publish(events.FriendRequestAccepted{
		FromID: senderID,
		ToID:   userID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Friend request accepted"})
}

func (fc *FriendController) RejectFriendRequest(c *gin.Context) {
	userID := c.GetString("user_id")
	senderID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := fc.friends.ConsumeRequest(senderID, userID, models.FriendRequestStatusRejected); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected"})
}

func (fc *FriendController) RemoveFriend(c *gin.Context) {
	userID := c.GetString("user_id")
	friendID, ok := pathID(c, "user_id")
	if !ok {
		return
	}

	if err := fc.friends.RemoveFriendship(userID, friendID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend removed successfully"})
}

func (fc *FriendController) GetFriends(c *gin.Context) {
	userID := c.GetString("user_id")

	friendIDs, err := fc.friends.FriendIDs(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	summaries, err := fc.users.SummariesByID(friendIDs)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	friends := make([]models.UserSummary, 0, len(friendIDs))
	for _, id := range friendIDs {
		friends = append(friends, summaries[id])
	}

	c.JSON(http.StatusOK, gin.H{"friends": friends})
}

func (fc *FriendController) GetPendingRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := fc.friends.ListIncoming(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses, err := fc.toRequestResponses(requests, false)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": responses})
}

func (fc *FriendController) GetSentRequests(c *gin.Context) {
	userID := c.GetString("user_id")

	requests, err := fc.friends.ListSent(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses, err := fc.toRequestResponses(requests, true)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"requests": responses})
}

// toRequestResponses shapes pending requests around the counterpart user:
// the sender for incoming requests, the recipient for sent ones.
func (fc *FriendController) toRequestResponses(requests []models.FriendRequest, sent bool) ([]models.FriendRequestResponse, error) {
	ids := make([]string, 0, len(requests))
	for _, r := range requests {
		if sent {
			ids = append(ids, r.ToID)
		} else {
			ids = append(ids, r.FromID)
		}
	}
	summaries, err := fc.users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.FriendRequestResponse, len(requests))
	for i, r := range requests {
		responses[i] = models.FriendRequestResponse{User: summaries[ids[i]], CreatedAt: r.CreatedAt}
	}
	return responses, nil
}
