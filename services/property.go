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

// PropertyService covers listing creation and the public read side.
type PropertyService struct {
	DB    *gorm.DB
	Cache *storage.ListingCache
}

// ListingFilter is the validated predicate set for public listing search.
type ListingFilter struct {
	Status       string
	PropertyType string
	City         string
	MinPrice     float64
	MaxPrice     float64
	Page         int
	Limit        int
}

// PerPage returns the effective page size after clamping.
func (f ListingFilter) PerPage() int {
	if f.Limit <= 0 || f.Limit > 100 {
		return 50
	}
	return f.Limit
}

// PageOrFirst returns the 1-based page number.
func (f ListingFilter) PageOrFirst() int {
	if f.Page <= 0 {
		return 1
	}
	return f.Page
}

var propertyStatuses = map[string]bool{
	models.PropertyStatusActive:   true,
	models.PropertyStatusSold:     true,
	models.PropertyStatusRented:   true,
	models.PropertyStatusInactive: true,
}

var propertyTypes = map[string]bool{
	models.PropertyTypeForSale: true,
	models.PropertyTypeForRent: true,
}

// Apply validates the filter and attaches its predicates.
func (f ListingFilter) Apply(q *gorm.DB) (*gorm.DB, error) {
	status := f.Status
	if status == "" {
		status = models.PropertyStatusActive // public default
	}
	if !propertyStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, f.Status)
	}
	q = q.Where("status = ?", status)

	if f.PropertyType != "" {
		if !propertyTypes[f.PropertyType] {
			return nil, fmt.Errorf("%w: unknown property type %q", ErrValidation, f.PropertyType)
		}
		q = q.Where("property_type = ?", f.PropertyType)
	}
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		if f.MinPrice > f.MaxPrice {
			return nil, fmt.Errorf("%w: minPrice above maxPrice", ErrValidation)
		}
		q = q.Where("price <= ?", f.MaxPrice)
	}
	return q, nil
}

// CreateInput is the owner-facing create payload.
type CreateInput struct {
	Title        string   `json:"title" validate:"required"`
	Description  string   `json:"description"`
	Price        float64  `json:"price" validate:"required,gt=0"`
	Currency     string   `json:"currency"`
	PropertyType string   `json:"propertyType" validate:"required,oneof=FOR_SALE FOR_RENT"`
	Address      string   `json:"address" validate:"required"`
	City         string   `json:"city" validate:"required"`
	PostalCode   string   `json:"postalCode"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         int      `json:"area"`
	Images       []string `json:"images"`
	Features     []string `json:"features"`
}

// Create inserts an ACTIVE listing for the owner. The listing number is
// assigned once, by the model hook, and never changes afterwards.
func (s *PropertyService) Create(ownerID uint, input CreateInput) (*models.Property, error) {
	images, _ := json.Marshal(input.Images)
	features, _ := json.Marshal(input.Features)
	currency := input.Currency
	if currency == "" {
		currency = "EUR"
	}

	property := models.Property{
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		Price:        input.Price,
		Currency:     currency,
		Status:       models.PropertyStatusActive,
		PropertyType: input.PropertyType,
		Address:      input.Address,
		City:         input.City,
		PostalCode:   input.PostalCode,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		Area:         input.Area,
		Images:       images,
		Features:     features,
	}
	if err := s.DB.Create(&property).Error; err != nil {
		return nil, err
	}
	return &property, nil
}

// ListPublic runs a filtered listing search and returns one page plus the
// total match count.
func (s *PropertyService) ListPublic(filter ListingFilter) ([]models.Property, int64, error) {
	q, err := filter.Apply(s.DB.Model(&models.Property{}))
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	perPage := filter.PerPage()
	offset := (filter.PageOrFirst() - 1) * perPage
	var properties []models.Property
	if err := q.Order("created_at DESC").Limit(perPage).Offset(offset).Find(&properties).Error; err != nil {
		return nil, 0, err
	}
	return properties, total, nil
}

// GetPublic serves one listing through the cache. The cached payload is the
// marshalled property; mutating services invalidate it.
func (s *PropertyService) GetPublic(ctx context.Context, propertyID uint) (json.RawMessage, error) {
	if cached := s.Cache.Get(ctx, propertyID); cached != "" {
		return json.RawMessage(cached), nil
	}

	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	payload, err := json.Marshal(property)
	if err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, propertyID, string(payload))
	return payload, nil
}

// ListOwned returns the owner's portal view of their listings.
func (s *PropertyService) ListOwned(ownerID uint) ([]models.Property, error) {
	var properties []models.Property
	if err := s.DB.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

// Delete removes an owner's listing and best-effort deletes its CDN images.
func (s *PropertyService) Delete(ownerID uint, propertyID uint) error {
	var property models.Property
	if err := s.DB.First(&property, propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if property.OwnerID != ownerID {
		return ErrForbidden
	}
	if err := s.DB.Delete(&property).Error; err != nil {
		return err
	}

	var images []string
	if err := json.Unmarshal(property.Images, &images); err == nil {
		for _, imageURL := range images {
			storage.DeleteImage(imageURL) // swallowed on failure
		}
	}
	s.Cache.Invalidate(context.Background(), property.ID)
	return nil
}
