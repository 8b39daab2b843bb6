package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/dentabook/dentist-booking-api/internal/models"
	"github.com/dentabook/dentist-booking-api/internal/storage"
)

// Store interfaces consumed by the services. The mongo-backed types in
// internal/storage satisfy them; tests substitute in-memory fakes.

type UserStore interface {
	Insert(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type DentistStore interface {
	List(ctx context.Context, q storage.ListQuery) ([]models.Dentist, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dentist, error)
	Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.DentistSummary, error)
	Insert(ctx context.Context, dentist *models.Dentist) error
	Update(ctx context.Context, dentist *models.Dentist) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type BookingStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	ExistsActiveForUser(ctx context.Context, userID primitive.ObjectID) (bool, error)
	List(ctx context.Context, filter bson.M) ([]models.Booking, error)
	Insert(ctx context.Context, booking *models.Booking) error
	Update(ctx context.Context, booking *models.Booking) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByDentist(ctx context.Context, dentistID primitive.ObjectID) (int64, error)
}
