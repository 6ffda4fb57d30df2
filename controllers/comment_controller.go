package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopline-api/events"
	"loopline-api/models"
	"loopline-api/repositories"
	"loopline-api/utils"
)

type CommentController struct {
	comments *repositories.CommentRepository
	users    *repositories.UserRepository
	resolver *ItemResolver
	bus      *events.Bus
}

func NewCommentController(comments *repositories.CommentRepository, users *repositories.UserRepository, resolver *ItemResolver, bus *events.Bus) *CommentController {
	return &CommentController{
		comments: comments,
		users:    users,
		resolver: resolver,
		bus:      bus,
	}
}

type CreateCommentRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	Body   string `json:"body" binding:"required,max=2000"`
}

type UpdateCommentRequest struct {
	Body string `json:"body" binding:"required,max=2000"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	itemID, err := models.ParseID(req.ItemID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	// The parent must exist right now; it may be a post or another comment.
	kind, err := cc.resolver.Resolve(itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	itemAuthorID, err := cc.resolver.AuthorOf(kind, itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	comment, err := cc.comments.Create(userID, itemID, req.Body)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	cc.bus.Publish(events.CommentCreated{
		CommentID:    comment.ID,
		AuthorID:     userID,
		ItemID:       itemID,
		ItemKind:     kind,
		ItemAuthorID: itemAuthorID,
	})

	response, err := cc.toCommentResponse(*comment)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// GetItemComments lists the comments under an item, oldest first. The item
// itself is not probed: a deleted or unknown parent just yields an empty
// list.
func (cc *CommentController) GetItemComments(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	comments, err := cc.comments.ListForItem(itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	responses, err := cc.toCommentResponses(comments)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": responses})
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cc.comments.AssertAuthor(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	comment, err := cc.comments.Update(id, req.Body)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	response, err := cc.toCommentResponse(*comment)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := cc.comments.AssertAuthor(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	if err := cc.comments.Delete(id); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}

func (cc *CommentController) toCommentResponses(comments []models.Comment) ([]models.CommentResponse, error) {
	ids := make([]string, 0, len(comments))
	for _, cm := range comments {
		ids = append(ids, cm.AuthorID)
	}
	summaries, err := cc.users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.CommentResponse, len(comments))
	for i, cm := range comments {
		responses[i] = models.CommentResponse{Comment: cm, Author: summaries[cm.AuthorID]}
	}
	return responses, nil
}

func (cc *CommentController) toCommentResponse(comment models.Comment) (models.CommentResponse, error) {
	responses, err := cc.toCommentResponses([]models.Comment{comment})
	if err != nil {
		return models.CommentResponse{}, err
	}
	return responses[0], nil
}
