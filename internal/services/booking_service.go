package services

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
)

const lockStripes = 64

// BookingService enforces the booking invariants: bookings are future-dated,
// a user holds at most one active booking, and only the owner or an admin may
// read or mutate a booking.
type BookingService struct {
	bookings BookingStore
	dentists DentistStore
	logger   *zap.Logger

	// Striped per-user locks serializing the active-booking check against the
	// insert that follows it, so two concurrent creates by the same user
	// cannot both pass the check.
	locks [lockStripes]sync.Mutex
}

func NewBookingService(bookings BookingStore, dentists DentistStore, logger *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, dentists: dentists, logger: logger}
}

func (s *BookingService) userLock(userID primitive.ObjectID) *sync.Mutex {
	h := fnv.New32a()
	h.Write(userID[:])
	return &s.locks[h.Sum32()%lockStripes]
}

// List returns the requester's bookings, or all bookings for admins. When
// dentistID is non-nil only bookings for that dentist are returned (the
// nested /dentists/:dentistId/bookings route).
func (s *BookingService) List(ctx context.Context, identity models.Identity, dentistID *primitive.ObjectID) ([]models.BookingWithDentist, error) {
	filter := bson.M{}
	if !identity.IsAdmin() {
		filter["user"] = identity.ID
	}
	if dentistID != nil {
		filter["dentist"] = *dentistID
	}

	bookings, err := s.bookings.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, bookings)
}

// Get returns a single booking, enforcing the ownership rule: only the
// owning user or an admin may read it.
func (s *BookingService) Get(ctx context.Context, id string, identity models.Identity) (*models.BookingWithDentist, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(booking, identity); err != nil {
		return nil, err
	}

	enriched, err := s.enrich(ctx, []models.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// Create books a dentist for the requester. The dentist must exist, the date
// must be strictly in the future, and non-admin users may not already hold an
// active booking.
func (s *BookingService) Create(ctx context.Context, dentistID string, date time.Time, identity models.Identity) (*models.BookingWithDentist, error) {
	oid, err := primitive.ObjectIDFromHex(dentistID)
	if err != nil {
		return nil, ErrNotFound
	}
	dentist, err := s.dentists.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if !date.After(time.Now()) {
		return nil, &ValidationError{Fields: []string{"date"}}
	}

	lock := s.userLock(identity.ID)
	lock.Lock()
	defer lock.Unlock()

	if !identity.IsAdmin() {
		exists, err := s.bookings.ExistsActiveForUser(ctx, identity.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateActiveBooking
		}
	}

	booking := &models.Booking{
		ID:        primitive.NewObjectID(),
		User:      identity.ID,
		Dentist:   dentist.ID,
		Date:      date,
		Status:    models.BookingPending,
		CreatedAt: time.Now(),
	}
	if err := s.bookings.Insert(ctx, booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("bookingId", booking.ID.Hex()),
		zap.String("userId", identity.ID.Hex()),
		zap.String("dentistId", dentist.ID.Hex()))

	return &models.BookingWithDentist{
		Booking: *booking,
		DentistInfo: &models.DentistSummary{
			Name:              dentist.Name,
			YearsOfExperience: dentist.YearsOfExperience,
			AreaOfExpertise:   dentist.AreaOfExpertise,
		},
	}, nil
}

// Update applies a partial update under the ownership rule. A changed date is
// re-validated; status is settable by admins only.
func (s *BookingService) Update(ctx context.Context, id string, req models.UpdateBookingRequest, identity models.Identity) (*models.BookingWithDentist, error) {
	booking, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(booking, identity); err != nil {
		return nil, err
	}

	if req.DentistID != nil {
		oid, err := primitive.ObjectIDFromHex(*req.DentistID)
		if err != nil {
			return nil, ErrNotFound
		}
		if _, err := s.dentists.FindByID(ctx, oid); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		booking.Dentist = oid
	}

	if req.Date != nil {
		if !req.Date.After(time.Now()) {
			return nil, &ValidationError{Fields: []string{"date"}}
		}
		booking.Date = *req.Date
	}

	if req.Status != nil {
		if !identity.IsAdmin() || !models.ValidStatus(*req.Status) {
			return nil, &ValidationError{Fields: []string{"status"}}
		}
		booking.Status = *req.Status
	}

	if err := s.bookings.Update(ctx, booking); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	enriched, err := s.enrich(ctx, []models.Booking{*booking})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// Delete removes a booking under the ownership rule. The record is deleted
// outright, which frees the user to book again.
func (s *BookingService) Delete(ctx context.Context, id string, identity models.Identity) error {
	booking, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := authorizeOwner(booking, identity); err != nil {
		return err
	}

	if err := s.bookings.Delete(ctx, booking.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.logger.Info("booking deleted",
		zap.String("bookingId", booking.ID.Hex()),
		zap.String("byUserId", identity.ID.Hex()))
	return nil
}

func (s *BookingService) find(ctx context.Context, id string) (*models.Booking, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	booking, err := s.bookings.FindByID(ctx, oid)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	return booking, err
}

// enrich attaches the dentist projection to each booking.
func (s *BookingService) enrich(ctx context.Context, bookings []models.Booking) ([]models.BookingWithDentist, error) {
	ids := make([]primitive.ObjectID, 0, len(bookings))
	seen := make(map[primitive.ObjectID]bool, len(bookings))
	for _, b := range bookings {
		if !seen[b.Dentist] {
			seen[b.Dentist] = true
			ids = append(ids, b.Dentist)
		}
	}

	summaries, err := s.dentists.Summaries(ctx, ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]models.BookingWithDentist, len(bookings))
	for i, b := range bookings {
		enriched[i] = models.BookingWithDentist{Booking: b}
		if summary, ok := summaries[b.Dentist]; ok {
			enriched[i].DentistInfo = &summary
		}
	}
	return enriched, nil
}

func authorizeOwner(booking *models.Booking, identity models.Identity) error {
	if booking.User != identity.ID && !identity.IsAdmin() {
		return ErrNotOwner
	}
	return nil
}
