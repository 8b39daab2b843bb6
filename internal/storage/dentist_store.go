package storage

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dentabook/dentist-booking-api/internal/models"
)

// DentistStore persists dentist profiles in the dentists collection.
type DentistStore struct {
	coll *mongo.Collection
}

func NewDentistStore(db *mongo.Database) *DentistStore {
	return &DentistStore{coll: db.Collection(dentistsCollection)}
}

// List executes a parsed list query and returns the matching page along with
// the total count under the same filter.
func (s *DentistStore) List(ctx context.Context, q ListQuery) ([]models.Dentist, int64, error) {
	total, err := s.coll.CountDocuments(ctx, q.Filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count dentists: %w", err)
	}

	cursor, err := s.coll.Find(ctx, q.Filter, q.FindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("find dentists: %w", err)
	}
	defer cursor.Close(ctx)

	dentists := make([]models.Dentist, 0)
	if err := cursor.All(ctx, &dentists); err != nil {
		return nil, 0, fmt.Errorf("decode dentists: %w", err)
	}
	return dentists, total, nil
}

func (s *DentistStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Dentist, error) {
	var dentist models.Dentist
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&dentist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find dentist: %w", err)
	}
	return &dentist, nil
}

// Summaries loads the read-only projections for a set of dentist ids, keyed
// by id. Missing dentists are simply absent from the map.
func (s *DentistStore) Summaries(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.DentistSummary, error) {
	if len(ids) == 0 {
		return map[primitive.ObjectID]models.DentistSummary{}, nil
	}

	cursor, err := s.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find dentists by ids: %w", err)
	}
	defer cursor.Close(ctx)

	var dentists []models.Dentist
	if err := cursor.All(ctx, &dentists); err != nil {
		return nil, fmt.Errorf("decode dentists: %w", err)
	}

	summaries := make(map[primitive.ObjectID]models.DentistSummary, len(dentists))
	for _, d := range dentists {
		summaries[d.ID] = models.DentistSummary{
			Name:              d.Name,
			YearsOfExperience: d.YearsOfExperience,
			AreaOfExpertise:   d.AreaOfExpertise,
		}
	}
	return summaries, nil
}

func (s *DentistStore) Insert(ctx context.Context, dentist *models.Dentist) error {
	if _, err := s.coll.InsertOne(ctx, dentist); err != nil {
		return fmt.Errorf("insert dentist: %w", err)
	}
	return nil
}

// Update replaces the stored document with the given one.
func (s *DentistStore) Update(ctx context.Context, dentist *models.Dentist) error {
	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": dentist.ID}, dentist)
	if err != nil {
		return fmt.Errorf("update dentist: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DentistStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete dentist: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
