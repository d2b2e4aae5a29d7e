package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"shashoo/internal/model"
)

type RegistrationRepository struct {
	db *gorm.DB
}

type RegistrationRepositoryInterface interface {
	Create(ctx context.Context, registration *model.Registration) error
	List(ctx context.Context) ([]model.Registration, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error)
	Decide(ctx context.Context, id uuid.UUID, status, memo string, reviewerID uuid.UUID) (*model.Registration, error)
}

var _ RegistrationRepositoryInterface = (*RegistrationRepository)(nil)

func NewRegistrationRepository(db *gorm.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration *model.Registration) error {
	return r.db.WithContext(ctx).Create(registration).Error
}

func (r *RegistrationRepository) List(ctx context.Context) ([]model.Registration, error) {
	var registrations []model.Registration
	err := r.db.WithContext(ctx).Order("submitted_at DESC").Find(&registrations).Error
	return registrations, err
}

func (r *RegistrationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Registration, error) {
	var registration model.Registration
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&registration).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &registration, nil
}

// Decide moves a pending registration to approved or rejected, recording
// the reviewer and decision time. The transition is terminal: a second call
// returns ErrAlreadyDecided without touching the row. Approval also
// provisions an approved basic account for the applicant email inside the
// same transaction, so a crash cannot leave an approved registration
// without its user.
func (r *RegistrationRepository) Decide(ctx context.Context, id uuid.UUID, status, memo string, reviewerID uuid.UUID) (*model.Registration, error) {
	var registration model.Registration

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&registration).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if registration.Status != model.StatusPending {
			return ErrAlreadyDecided
		}

		now := time.Now()
		registration.Status = status
		if memo != "" {
			registration.Memo = memo
		}
		registration.DecidedAt = &now
		registration.DecidedByID = &reviewerID

		if err := tx.Model(&model.Registration{}).
			Where("id = ?", registration.ID).
			Updates(map[string]interface{}{
				"status":        registration.Status,
				"memo":          registration.Memo,
				"decided_at":    registration.DecidedAt,
				"decided_by_id": registration.DecidedByID,
			}).Error; err != nil {
			return err
		}

		if status != model.StatusApproved {
			return nil
		}

		// Provision the account. The user may already exist when an admin
		// created it by hand; in that case only the status is lifted.
		var user model.User
		err := tx.Where("email = ?", registration.Email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = model.User{
				Email:        registration.Email,
				Name:         registration.Name,
				Role:         model.RoleBasic,
				Status:       model.StatusApproved,
				Organization: registration.Organization,
				Purpose:      registration.Purpose,
			}
			return tx.Create(&user).Error
		}
		if err != nil {
			return err
		}
		if user.Status != model.StatusApproved {
			return tx.Model(&user).Update("status", model.StatusApproved).Error
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &registration, nil
}
