// File: /controllers/post_controller.go
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

type PostController struct {
	posts   *repositories.PostRepository
	users   *repositories.UserRepository
	follows *repositories.FollowRepository
	bus     *events.Bus
}

func NewPostController(posts *repositories.PostRepository, users *repositories.UserRepository, follows *repositories.FollowRepository, bus *events.Bus) *PostController {
	return &PostController{
		posts:   posts,
		users:   users,
		follows: follows,
		bus:     bus,
	}
}

type CreatePostRequest struct {
	Text    string         `json:"text" binding:"required,max=5000"`
	Options models.JSONMap `json:"options"`
}

type UpdatePostRequest struct {
	Text    string         `json:"text" binding:"required,max=5000"`
	Options models.JSONMap `json:"options"`
}

func (pc *PostController) CreatePost(c *gin.Context) {
	userID := c.GetString("user_id")

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := pc.posts.Create(userID, req.Text, req.Options)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	pc.bus.Publish(events.PostCreated{
		PostID:   post.ID,
		AuthorID: userID,
	})

	response, err := pc.toPostResponse(*post)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// GetPosts lists posts newest first, optionally filtered by author.
func (pc *PostController) GetPosts(c *gin.Context) {
	page, limit := pagination(c)

	authorID := ""
	if author := c.Query("author"); author != "" {
		id, err := models.ParseID(author)
		if err != nil {
			utils.SendAppError(c, apperr.Invalid("invalid author id %q", author))
			return
		}
		authorID = id
	}

	posts, total, err := pc.posts.List(authorID, page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	pc.sendFeed(c, posts, page, limit, total)
}

// GetFeed lists posts by the users the caller follows, plus their own.
// Follow edges and posts live in different collections; the merge happens
// here, not in a join.
func (pc *PostController) GetFeed(c *gin.Context) {
	userID := c.GetString("user_id")
	page, limit := pagination(c)

	followingIDs, err := pc.follows.FollowingIDs(userID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	authorIDs := append(followingIDs, userID)

	posts, total, err := pc.posts.ListByAuthors(authorIDs, page, limit)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	pc.sendFeed(c, posts, page, limit, total)
}

func (pc *PostController) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := pc.posts.Get(id)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	response, err := pc.toPostResponse(*post)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (pc *PostController) UpdatePost(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Ownership first: a missing post is 404 and someone else's post is
	// 403, regardless of what the update would have been.
	if err := pc.posts.AssertAuthor(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	post, err := pc.posts.Update(id, req.Text, req.Options)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	response, err := pc.toPostResponse(*post)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (pc *PostController) DeletePost(c *gin.Context) {
	userID := c.GetString("user_id")
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := pc.posts.AssertAuthor(id, userID); err != nil {
		utils.SendAppError(c, err)
		return
	}

	// Deletion does not cascade: comments, reactions and the score record
	// keep their rows and dangle.
	if err := pc.posts.Delete(id); err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

func (pc *PostController) sendFeed(c *gin.Context, posts []models.Post, page, limit int, total int64) {
	responses, err := pc.toPostResponses(posts)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.FeedResponse{
		Posts:      responses,
		Page:       page,
		Limit:      limit,
		Total:      total,
		HasMore:    int64(page*limit) < total,
		TotalPages: totalPages(total, limit),
	})
}

// toPostResponses pairs posts with their authors' summaries in one user
// read. Authors that no longer exist come out as empty summaries.
func (pc *PostController) toPostResponses(posts []models.Post) ([]models.PostResponse, error) {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.AuthorID)
	}
	summaries, err := pc.users.SummariesByID(ids)
	if err != nil {
		return nil, err
	}

	responses := make([]models.PostResponse, len(posts))
	for i, p := range posts {
		responses[i] = models.PostResponse{Post: p, Author: summaries[p.AuthorID]}
	}
	return responses, nil
}

func (pc *PostController) toPostResponse(post models.Post) (models.PostResponse, error) {
	responses, err := pc.toPostResponses([]models.Post{post})
	if err != nil {
		return models.PostResponse{}, err
	}
	return responses[0], nil
}
