package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
)

// In-memory store fakes standing in for the mongo-backed stores.

type fakeUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return storage.ErrDuplicateKey
		}
	}
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

type fakeDentistStore struct {
	dentists  map[primitive.ObjectID]*models.Dentist
	deleteErr error
}

func newFakeDentistStore() *fakeDentistStore {
	return &fakeDentistStore{dentists: make(map[primitive.ObjectID]*models.Dentist)}
}

func (f *fakeDentistStore) add(name string, years int, area string) *models.Dentist {
	d := &models.Dentist{
		ID:                primitive.NewObjectID(),
		Name:              name,
		YearsOfExperience: years,
		AreaOfExpertise:   area,
		Available:         true,
	}
	f.dentists[d.ID] = d
	return d
}

func (f *fakeDentistStore) List(_ context.Context, _ storage.ListQuery) ([]models.Dentist, int64, error) {
	out := make([]models.Dentist, 0, len(f.dentists))
	for _, d := range f.dentists {
		out = append(out, *d)
	}
	return out, int64(len(out)), nil
}

func (f *fakeDentistStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Dentist, error) {
	d, ok := f.dentists[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *d
	return &clone, nil
}

func (f *fakeDentistStore) Summaries(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.DentistSummary, error) {
	out := make(map[primitive.ObjectID]models.DentistSummary)
	for _, id := range ids {
		if d, ok := f.dentists[id]; ok {
			out[id] = models.DentistSummary{
				Name:              d.Name,
				YearsOfExperience: d.YearsOfExperience,
				AreaOfExpertise:   d.AreaOfExpertise,
			}
		}
	}
	return out, nil
}

func (f *fakeDentistStore) Insert(_ context.Context, dentist *models.Dentist) error {
	clone := *dentist
	f.dentists[dentist.ID] = &clone
	return nil
}

func (f *fakeDentistStore) Update(_ context.Context, dentist *models.Dentist) error {
	if _, ok := f.dentists[dentist.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *dentist
	f.dentists[dentist.ID] = &clone
	return nil
}

func (f *fakeDentistStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.dentists[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.dentists, id)
	return nil
}

type fakeBookingStore struct {
	bookings   map[primitive.ObjectID]*models.Booking
	cascadeErr error
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: make(map[primitive.ObjectID]*models.Booking)}
}

func (f *fakeBookingStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (f *fakeBookingStore) ExistsActiveForUser(_ context.Context, userID primitive.ObjectID) (bool, error) {
	for _, b := range f.bookings {
		if b.User == userID && b.IsActive() {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingStore) List(_ context.Context, filter bson.M) ([]models.Booking, error) {
	out := make([]models.Booking, 0)
	for _, b := range f.bookings {
		if user, ok := filter["user"].(primitive.ObjectID); ok && b.User != user {
			continue
		}
		if dentist, ok := filter["dentist"].(primitive.ObjectID); ok && b.Dentist != dentist {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBookingStore) Insert(_ context.Context, booking *models.Booking) error {
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingStore) Update(_ context.Context, booking *models.Booking) error {
	if _, ok := f.bookings[booking.ID]; !ok {
		return storage.ErrNotFound
	}
	clone := *booking
	f.bookings[booking.ID] = &clone
	return nil
}

func (f *fakeBookingStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.bookings[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingStore) DeleteByDentist(_ context.Context, dentistID primitive.ObjectID) (int64, error) {
	if f.cascadeErr != nil {
		return 0, f.cascadeErr
	}
	var removed int64
	for id, b := range f.bookings {
		if b.Dentist == dentistID {
			delete(f.bookings, id)
			removed++
		}
	}
	return removed, nil
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
