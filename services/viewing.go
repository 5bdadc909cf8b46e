package services

import (
	"errors"
	"fmt"
	"time"

	"estate-portal-server/models"

	"gorm.io/gorm"
)

// ViewingService advances viewing requests and stamps the acting user and
// time for each reached state.
type ViewingService struct {
	DB *gorm.DB
}

var viewingTransitions = map[string][]string{
	models.ViewingPending:   {models.ViewingConfirmed, models.ViewingCancelled, models.ViewingCompleted},
	models.ViewingConfirmed: {models.ViewingCompleted, models.ViewingCancelled},
}

func viewingTransitionAllowed(from, to string) bool {
	for _, t := range viewingTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves a viewing request to a new state.
func (s *ViewingService) UpdateStatus(viewingID, actorID uint, newStatus string) (*models.ViewingRequest, error) {
	switch newStatus {
	case models.ViewingPending, models.ViewingConfirmed, models.ViewingCancelled, models.ViewingCompleted:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var viewing models.ViewingRequest
	if err := s.DB.First(&viewing, viewingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !viewingTransitionAllowed(viewing.Status, newStatus) {
		return nil, fmt.Errorf("%w: cannot move viewing from %s to %s", ErrValidation, viewing.Status, newStatus)
	}

	now := time.Now()
	updates := map[string]interface{}{"status": newStatus}
	switch newStatus {
	case models.ViewingConfirmed:
		updates["confirmed_by_id"] = actorID
		updates["confirmed_at"] = now
	case models.ViewingCompleted:
		updates["completed_by_id"] = actorID
		updates["completed_at"] = now
	case models.ViewingCancelled:
		updates["cancelled_by_id"] = actorID
		updates["cancelled_at"] = now
	}

	if err := s.DB.Model(&viewing).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &viewing, nil
}
