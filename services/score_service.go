// File: /services/score_service.go
package services

import (
	"log"

	"loopline-api/events"
	"loopline-api/repositories"
)

// ScoreService seeds the score record for every newly created item. It
// consumes creation events off the bus; the request that created the item
// never waits on it and never hears about its failures.
type ScoreService struct {
	scores *repositories.ScoreRepository
}

func NewScoreService(scores *repositories.ScoreRepository) *ScoreService {
	return &ScoreService{scores: scores}
}

// HandleEvent is subscribed on the event bus.
func (s *ScoreService) HandleEvent(event interface{}) {
	switch e := event.(type) {
	case events.UserRegistered:
		s.seed(e.UserID)
	case events.PostCreated:
		s.seed(e.PostID)
	case events.CommentCreated:
		s.seed(e.CommentID)
	}
}

func (s *ScoreService) seed(itemID string) {
	if _, err := s.scores.Create(itemID, 0); err != nil {
		log.Printf("score service: failed to seed score for %s: %v", itemID, err)
	}
}
