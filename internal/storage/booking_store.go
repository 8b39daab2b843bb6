package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dentabook/dentist-booking-api/internal/models"
)

// BookingStore persists bookings in the bookings collection.
type BookingStore struct {
	coll *mongo.Collection
}

func NewBookingStore(db *mongo.Database) *BookingStore {
	return &BookingStore{coll: db.Collection(bookingsCollection)}
}

func (s *BookingStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var booking models.Booking
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return &booking, nil
}

// ExistsActiveForUser reports whether the user holds a booking that is not in
// a terminal status. Backed by the {user, status} index.
func (s *BookingStore) ExistsActiveForUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"user":   userID,
		"status": bson.M{"$nin": bson.A{models.BookingCancelled, models.BookingCompleted}},
	}
	err := s.coll.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find active booking: %w", err)
	}
	return true, nil
}

// List returns bookings matching the filter, newest created first.
func (s *BookingStore) List(ctx context.Context, filter bson.M) ([]models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := make([]models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (s *BookingStore) Insert(ctx context.Context, booking *models.Booking) error {
	if _, err := s.coll.InsertOne(ctx, booking); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

// Update replaces the stored document with the given one.
func (s *BookingStore) Update(ctx context.Context, booking *models.Booking) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": booking.ID}, booking)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *BookingStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByDentist removes every booking referencing the dentist. Used by the
// dentist cascade delete.
func (s *BookingStore) DeleteByDentist(ctx context.Context, dentistID primitive.ObjectID) (int64, error) {
	res, err := s.coll.DeleteMany(ctx, bson.M{"dentist": dentistID})
	if err != nil {
		return 0, fmt.Errorf("delete bookings for dentist: %w", err)
	}
	return res.DeletedCount, nil
}
