package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateup/backend/internal/models"
	"github.com/plateup/backend/internal/validation"
)

// ProfileService reads and updates the account fields a user manages from
// their profile page.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// ProfileUpdate holds the editable fields. Nil pointers are left untouched
// so a partial update does not blank the rest of the profile.
type ProfileUpdate struct {
	FirstName  *string `json:"firstName"`
	LastName   *string `json:"lastName"`
	Phone      *string `json:"phone"`
	Location   *string `json:"location"`
	Bio        *string `json:"bio"`
	ProfilePic *string `json:"profilePic"`
}

// Get returns the user's profile.
func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Update applies the provided fields and returns the refreshed profile.
func (s *ProfileService) Update(ctx context.Context, userID uuid.UUID, upd ProfileUpdate) (*models.User, error) {
	fields := make(map[string]interface{})
	if upd.FirstName != nil {
		if strings.TrimSpace(*upd.FirstName) == "" {
			return nil, &ValidationError{Fields: map[string]string{"firstName": "First name is required"}}
		}
		fields["first_name"] = strings.TrimSpace(*upd.FirstName)
	}
	if upd.LastName != nil {
		if strings.TrimSpace(*upd.LastName) == "" {
			return nil, &ValidationError{Fields: map[string]string{"lastName": "Last name is required"}}
		}
		fields["last_name"] = strings.TrimSpace(*upd.LastName)
	}
	if upd.Phone != nil {
		phone := strings.TrimSpace(*upd.Phone)
		if phone != "" && !validation.ValidPhone(phone) {
			return nil, &ValidationError{Fields: map[string]string{"phone": "Please enter a valid phone number"}}
		}
		fields["phone"] = phone
	}
	if upd.Location != nil {
		fields["location"] = strings.TrimSpace(*upd.Location)
	}
	if upd.Bio != nil {
		fields["bio"] = strings.TrimSpace(*upd.Bio)
	}
	if upd.ProfilePic != nil {
		fields["profile_pic"] = strings.TrimSpace(*upd.ProfilePic)
	}

	if len(fields) > 0 {
		res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}

	return s.Get(ctx, userID)
}
