package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"estate-portal-server/models"
	"estate-portal-server/storage"

	"gorm.io/gorm"
)

// PriceChangeService implements the owner price-change proposal workflow:
// submit, list for the dashboard, and resolve.
type PriceChangeService struct {
	DB    *gorm.DB
	Cache *storage.ListingCache
}

// RequestFilter is the validated predicate set for listing requests.
// Replaces ad-hoc where-clause maps.
type RequestFilter struct {
	Status string
	Limit  int
}

var priceRequestStatuses = map[string]bool{
	models.PriceRequestPending:     true,
	models.PriceRequestApproved:    true,
	models.PriceRequestRejected:    true,
	models.PriceRequestAutoApplied: true,
}

// Apply validates the filter and attaches its predicates to the query.
func (f RequestFilter) Apply(q *gorm.DB) (*gorm.DB, error) {
	if f.Status != "" {
		if !priceRequestStatuses[f.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
		}
		q = q.Where("status = ?", f.Status)
	}
	limit := f.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.Order("created_at DESC").Limit(limit), nil
}

// RequestSummary joins a request with its property and owner summaries for
// the dashboard list. The lookups are separate queries, not a relational join.
type RequestSummary struct {
	Request       models.PriceChangeRequest `json:"request"`
	PropertyTitle string                    `json:"propertyTitle"`
	ListingNumber string                    `json:"listingNumber"`
	OwnerName     string                    `json:"ownerName"`
	OwnerEmail    string                    `json:"ownerEmail"`
}

// Submit creates a PENDING request for a property the owner holds. At most
// one PENDING request may exist per property.
func (s *PriceChangeService) Submit(ownerID uint, propertyID uint, proposedPrice float64) (*models.PriceChangeRequest, error) {
	if proposedPrice <= 0 {
		return nil, fmt.Errorf("%w: proposed price must be greater than zero", ErrValidation)
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if property.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	var pending int64
	if err := s.DB.Model(&models.PriceChangeRequest{}).
		Where("property_id = ? AND status = ?", propertyID, models.PriceRequestPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, fmt.Errorf("%w: a pending request already exists for this property", ErrValidation)
	}

	request := models.PriceChangeRequest{
		PropertyID:    property.ID,
		OwnerID:       ownerID,
		OldPrice:      property.Price,
		ProposedPrice: proposedPrice,
		Status:        models.PriceRequestPending,
	}
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		meta, _ := json.Marshal(map[string]float64{"oldPrice": property.Price, "proposedPrice": proposedPrice})
		activity := models.OwnerActivityLog{
			UserID:      ownerID,
			PropertyID:  &property.ID,
			Action:      models.ActionPriceRequest,
			Description: fmt.Sprintf("price change requested on listing %s", property.ListingNumber),
			Metadata:    meta,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns request summaries matching the filter plus the PENDING count
// for the dashboard badge.
func (s *PriceChangeService) List(filter RequestFilter) ([]RequestSummary, int64, error) {
	q, err := filter.Apply(s.DB.Model(&models.PriceChangeRequest{}))
	if err != nil {
		return nil, 0, err
	}

	var requests []models.PriceChangeRequest
	if err := q.Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	summaries := make([]RequestSummary, 0, len(requests))
	for _, r := range requests {
		summary := RequestSummary{Request: r}
		var property models.Property
		if err := s.DB.Select("id, title, listing_number").First(&property, r.PropertyID).Error; err == nil {
			summary.PropertyTitle = property.Title
			summary.ListingNumber = property.ListingNumber
		}
		var owner models.User
		if err := s.DB.Select("id, first_name, last_name, email").First(&owner, r.OwnerID).Error; err == nil {
			summary.OwnerName = owner.FirstName + " " + owner.LastName
			summary.OwnerEmail = owner.Email
		}
		summaries = append(summaries, summary)
	}

	var pendingCount int64
	if err := s.DB.Model(&models.PriceChangeRequest{}).
		Where("status = ?", models.PriceRequestPending).
		Count(&pendingCount).Error; err != nil {
		return nil, 0, err
	}
	return summaries, pendingCount, nil
}

// Resolve approves or rejects a PENDING request. Terminal requests are
// immutable: a second resolution returns ErrTerminal and applies nothing.
// Approval writes the property's new price in the same transaction.
func (s *PriceChangeService) Resolve(ctx context.Context, resolverID uint, requestID uint, approve bool, reason string) (*models.PriceChangeRequest, error) {
	var request models.PriceChangeRequest
	if err := s.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if request.Terminal() {
		return nil, ErrTerminal
	}

	now := time.Now()
	newStatus := models.PriceRequestRejected
	if approve {
		newStatus = models.PriceRequestApproved
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Guard against a concurrent resolution: only a row still PENDING
		// is moved to its terminal state.
		res := tx.Model(&models.PriceChangeRequest{}).
			Where("id = ? AND status = ?", request.ID, models.PriceRequestPending).
			Updates(map[string]interface{}{
				"status":           newStatus,
				"rejection_reason": reason,
				"resolved_by_id":   resolverID,
				"resolved_at":      now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrTerminal
		}
		if approve {
			if err := tx.Model(&models.Property{}).
				Where("id = ?", request.PropertyID).
				Update("price", request.ProposedPrice).Error; err != nil {
				return err
			}
		}
		meta, _ := json.Marshal(map[string]interface{}{
			"requestID": request.ID,
			"approved":  approve,
			"price":     request.ProposedPrice,
		})
		activity := models.OwnerActivityLog{
			UserID:      resolverID,
			PropertyID:  &request.PropertyID,
			Action:      models.ActionPriceResolve,
			Description: fmt.Sprintf("price change request #%d resolved as %s", request.ID, newStatus),
			Metadata:    meta,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	request.Status = newStatus
	request.RejectionReason = reason
	request.ResolvedByID = &resolverID
	request.ResolvedAt = &now
	if approve {
		s.Cache.Invalidate(ctx, request.PropertyID)
	}
	return &request, nil
}
