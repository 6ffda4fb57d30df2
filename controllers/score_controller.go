// File: /controllers/score_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"loopline-api/repositories"
	"loopline-api/utils"
)

type ScoreController struct {
	scores *repositories.ScoreRepository
}

func NewScoreController(scores *repositories.ScoreRepository) *ScoreController {
	return &ScoreController{scores: scores}
}

func (sc *ScoreController) GetScore(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	score, err := sc.scores.Get(itemID)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}

type UpdateScoreRequest struct {
	Value *float64 `json:"value" binding:"required"`
}

func (sc *ScoreController) UpdateScore(c *gin.Context) {
	itemID, ok := pathID(c, "item_id")
	if !ok {
		return
	}

	var req UpdateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	score, err := sc.scores.Update(itemID, *req.Value)
	if err != nil {
		utils.SendAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, score)
}
