package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
)

// DentistService implements the dentist directory: public reads, admin-only
// writes, cascade delete of dependent bookings.
type DentistService struct {
	dentists DentistStore
	bookings BookingStore
	logger   *zap.Logger
}

func NewDentistService(dentists DentistStore, bookings BookingStore, logger *zap.Logger) *DentistService {
	return &DentistService{dentists: dentists, bookings: bookings, logger: logger}
}

// List returns the page of dentists matching q plus next/prev descriptors.
// The total used for pagination is counted under the same filter.
func (s *DentistService) List(ctx context.Context, q storage.ListQuery) ([]models.Dentist, storage.Pagination, error) {
	dentists, total, err := s.dentists.List(ctx, q)
	if err != nil {
		return nil, storage.Pagination{}, err
	}
	return dentists, storage.Paginate(q.Page, q.Limit, total), nil
}

func (s *DentistService) Get(ctx context.Context, id string) (*models.Dentist, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	dentist, err := s.dentists.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return dentist, err
}

func (s *DentistService) Create(ctx context.Context, payload models.DentistPayload) (*models.Dentist, error) {
	if err := validateStruct(payload); err != nil {
		return nil, err
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}

	dentist := &models.Dentist{
		ID:                primitive.NewObjectID(),
		Name:              payload.Name,
		YearsOfExperience: *payload.YearsOfExperience,
		AreaOfExpertise:   payload.AreaOfExpertise,
		Available:         available,
		CreatedAt:         time.Now(),
	}

	if err := s.dentists.Insert(ctx, dentist); err != nil {
		return nil, err
	}
	return dentist, nil
}

// Update re-runs the field validators before persisting.
func (s *DentistService) Update(ctx context.Context, id string, payload models.DentistPayload) (*models.Dentist, error) {
	if err := validateStruct(payload); err != nil {
		return nil, err
	}

	dentist, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	dentist.Name = payload.Name
	dentist.YearsOfExperience = *payload.YearsOfExperience
	dentist.AreaOfExpertise = payload.AreaOfExpertise
	if payload.Available != nil {
		dentist.Available = *payload.Available
	}

	if err := s.dentists.Update(ctx, dentist); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return dentist, nil
}

// Delete removes a dentist and every booking referencing it. The bookings go
// first; if that fails the dentist record is left untouched so no booking can
// dangle.
func (s *DentistService) Delete(ctx context.Context, id string) error {
	dentist, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	removed, err := s.bookings.DeleteByDentist(ctx, dentist.ID)
	if err != nil {
		return fmt.Errorf("cascade delete bookings: %w", err)
	}

	if err := s.dentists.Delete(ctx, dentist.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("dentist deleted",
		zap.String("dentistId", dentist.ID.Hex()),
		zap.Int64("bookingsRemoved", removed))
	return nil
}
