package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"estate-portal-server/models"
	"estate-portal-server/storage"

	"gorm.io/gorm"
)

// StatusService validates and applies property status transitions and writes
// both audit records in the same transaction as the status itself.
type StatusService struct {
	DB    *gorm.DB
	Cache *storage.ListingCache
}

// Targets an owner may move an ACTIVE listing to.
var ownerStatusTargets = map[string]bool{
	models.PropertyStatusSold:     true,
	models.PropertyStatusRented:   true,
	models.PropertyStatusInactive: true,
}

// ChangeStatus applies a status transition on behalf of the caller.
// Owners may move their own ACTIVE listing to SOLD, RENTED or INACTIVE.
// Staff may additionally reactivate an INACTIVE listing.
func (s *StatusService) ChangeStatus(ctx context.Context, callerID uint, callerRole string, propertyID uint, newStatus string) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	isStaff := callerRole == models.RoleAdmin || callerRole == models.RoleAgent
	if !isStaff {
		if callerRole != models.RoleOwner || property.OwnerID != callerID {
			return nil, ErrForbidden
		}
	}

	switch {
	case isStaff && newStatus == models.PropertyStatusActive:
		if property.Status != models.PropertyStatusInactive {
			return nil, fmt.Errorf("%w: only INACTIVE listings can be reactivated", ErrValidation)
		}
	case ownerStatusTargets[newStatus]:
		if property.Status != models.PropertyStatusActive {
			return nil, fmt.Errorf("%w: transition must originate from ACTIVE", ErrValidation)
		}
	default:
		return nil, fmt.Errorf("%w: status %q is not an allowed target", ErrValidation, newStatus)
	}

	previous := property.Status
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&property).Update("status", newStatus).Error; err != nil {
			return err
		}
		statusLog := models.OwnerStatusChangeLog{
			PropertyID:     property.ID,
			OwnerID:        property.OwnerID,
			PreviousStatus: previous,
			NewStatus:      newStatus,
		}
		if err := tx.Create(&statusLog).Error; err != nil {
			return err
		}
		meta, _ := json.Marshal(map[string]string{"from": previous, "to": newStatus})
		activity := models.OwnerActivityLog{
			UserID:      callerID,
			PropertyID:  &property.ID,
			Action:      models.ActionStatusChange,
			Description: fmt.Sprintf("listing %s moved from %s to %s", property.ListingNumber, previous, newStatus),
			Metadata:    meta,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, property.ID)
	return &property, nil
}

// SetBidding flips the bidding-enabled flag. Owner only; logged to the
// activity trail.
func (s *StatusService) SetBidding(ctx context.Context, callerID uint, propertyID uint, enabled bool) (*models.Property, error) {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if property.OwnerID != callerID {
		return nil, ErrForbidden
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&property).Update("bidding_enabled", enabled).Error; err != nil {
			return err
		}
		meta, _ := json.Marshal(map[string]bool{"enabled": enabled})
		activity := models.OwnerActivityLog{
			UserID:      callerID,
			PropertyID:  &property.ID,
			Action:      models.ActionBiddingToggle,
			Description: fmt.Sprintf("bidding set to %t on listing %s", enabled, property.ListingNumber),
			Metadata:    meta,
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return nil, err
	}

	s.Cache.Invalidate(ctx, property.ID)
	return &property, nil
}
