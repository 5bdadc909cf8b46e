package services

import (
	"fmt"
	"time"

	"estate-portal-server/models"

	"gorm.io/gorm"
)

// DashboardService aggregates the audit trail for the admin dashboard.
// The trail itself is append-only; this service only reads.
type DashboardService struct {
	DB *gorm.DB
}

// AuditFilter is the validated predicate set for activity queries.
type AuditFilter struct {
	Actions    []string
	PropertyID uint
	From       time.Time
	To         time.Time
	Limit      int
}

var knownActions = map[string]bool{
	models.ActionStatusChange:   true,
	models.ActionBiddingToggle:  true,
	models.ActionPriceRequest:   true,
	models.ActionPriceResolve:   true,
	models.ActionPriceAutoApply: true,
	models.ActionInviteRedeem:   true,
	models.ActionUserLogin:      true,
}

// Apply validates the filter and attaches its predicates.
func (f AuditFilter) Apply(q *gorm.DB) (*gorm.DB, error) {
	for _, action := range f.Actions {
		if !knownActions[action] {
			return nil, fmt.Errorf("%w: unknown action %q", ErrValidation, action)
		}
	}
	if len(f.Actions) > 0 {
		q = q.Where("action IN ?", f.Actions)
	}
	if f.PropertyID != 0 {
		q = q.Where("property_id = ?", f.PropertyID)
	}
	if !f.From.IsZero() {
		q = q.Where("created_at >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("created_at < ?", f.To)
	}
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	return q.Order("created_at DESC").Limit(limit), nil
}

// Stats is the dashboard widget payload.
type Stats struct {
	RecentSold           int64 `json:"recentSold"`
	RecentRented         int64 `json:"recentRented"`
	TodayLogins          int64 `json:"todayLogins"`
	PendingPriceRequests int64 `json:"pendingPriceRequests"`
	ActiveListings       int64 `json:"activeListings"`
}

// Stats computes the dashboard numbers: sold/rented in the last 30 days from
// the status-change trail, today's logins from the activity trail, the
// pending price-request badge, and the live listing count.
func (s *DashboardService) Stats() (*Stats, error) {
	var stats Stats
	since := time.Now().AddDate(0, 0, -30)

	if err := s.DB.Model(&models.OwnerStatusChangeLog{}).
		Where("new_status = ? AND created_at >= ?", models.PropertyStatusSold, since).
		Count(&stats.RecentSold).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.OwnerStatusChangeLog{}).
		Where("new_status = ? AND created_at >= ?", models.PropertyStatusRented, since).
		Count(&stats.RecentRented).Error; err != nil {
		return nil, err
	}

	// local midnight, not the UTC-epoch day boundary Truncate would give
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := s.DB.Model(&models.OwnerActivityLog{}).
		Where("action = ? AND created_at >= ?", models.ActionUserLogin, today).
		Count(&stats.TodayLogins).Error; err != nil {
		return nil, err
	}

	if err := s.DB.Model(&models.PriceChangeRequest{}).
		Where("status = ?", models.PriceRequestPending).
		Count(&stats.PendingPriceRequests).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Property{}).
		Where("status = ?", models.PropertyStatusActive).
		Count(&stats.ActiveListings).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// Activity returns audit entries matching the filter, newest first.
func (s *DashboardService) Activity(filter AuditFilter) ([]models.OwnerActivityLog, error) {
	q, err := filter.Apply(s.DB.Model(&models.OwnerActivityLog{}))
	if err != nil {
		return nil, err
	}
	var entries []models.OwnerActivityLog
	if err := q.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// StatusHistory returns a property's status trail, oldest first.
func (s *DashboardService) StatusHistory(propertyID uint) ([]models.OwnerStatusChangeLog, error) {
	var entries []models.OwnerStatusChangeLog
	if err := s.DB.Where("property_id = ?", propertyID).
		Order("created_at ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
