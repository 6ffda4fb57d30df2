// File: /controllers/reaction_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/repositories"
	"loopline-api/utils"
)

type ReactionController struct {
	reactions *repositories.ReactionRepository
	users     *repositories.UserRepository
	resolver  *ItemResolver
	bus       *events.Bus
}

func NewReactionController(reactions *repositories.ReactionRepository, users *repositories.UserRepository, resolver *ItemResolver, bus *events.Bus) *ReactionController {
	return &ReactionController{
		reactions: reactions,
		users:     users,
		resolver:  resolver,
		bus:       bus,
	}
}

type CreateReactionRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Type   string `json:"type" binding:"required,max=50"`
}

func (rc *ReactionController) CreateReaction(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	itemID, err := models.ParseID(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	kind, err := rc.resolver.Resolve(itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	itemAuthorID, err := rc.resolver.AuthorOf(kind, itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	reaction, err := rc.reactions.Create(userID, itemID, req.Type)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	rc.bus.Publish(events.ReactionCreated{
		ReactionID:   reaction.ID,
		AuthorID:     userID,
		ItemID:       itemID,
		Type:         reaction.Type,
		ItemKind:     kind,
		ItemAuthorID: itemAuthorID,
	})

	response, err := rc.toReactionResponse(*reaction)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// GetItemReactions lists the reactions on an item. Like comments, an
// unknown item yields an empty list rather than a probe failure.
func (rc *ReactionController) GetItemReactions(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reactions, err := rc.reactions.ListForItem(itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses, err := rc.toReactionResponses(reactions)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reactions": responses})
}

func (rc *ReactionController) DeleteReaction(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := rc.reactions.AssertAuthor(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	if err := rc.reactions.Delete(id); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reaction removed successfully"})
}

func (rc *ReactionController) toReactionResponses(reactions []models.Reaction) ([]models.ReactionResponse, error) {
	ids := make([]string, 0, len(reactions))
	for _, r := range reactions {
		ids = append(ids, r.AuthorID)
	}
	summaries, err := rc.users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.ReactionResponse, len(reactions))
	for i, r := range reactions {
		responses[i] = models.ReactionResponse{Reaction: r, Author: summaries[r.AuthorID]}
	}
	return responses, nil
}

func (rc *ReactionController) toReactionResponse(reaction models.Reaction) (models.ReactionResponse, error) {
	responses, err := rc.toReactionResponses([]models.Reaction{reaction})
	if err != nil {
		return models.ReactionResponse{}, err
	}
	return responses[0], nil
}
