package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Dentist struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name              string             `bson:"name" json:"name"`
	YearsOfExperience int                `bson:"yearsOfExperience" json:"yearsOfExperience"`
	AreaOfExpertise   string             `bson:"areaOfExpertise" json:"areaOfExpertise"`
	Available         bool               `bson:"available" json:"available"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// DentistPayload is the write shape for create and update. Field rules mirror
// the persisted schema: name and expertise capped at 100 characters,
// experience never negative.
type DentistPayload struct {
	Name              string `json:"name" validate:"required,max=100"`
	YearsOfExperience *int   `json:"yearsOfExperience" validate:"required,gte=0"`
	AreaOfExpertise   string `json:"areaOfExpertise" validate:"required,max=100"`
	Available         *bool  `json:"available"`
}

// DentistSummary is the read-only projection embedded in booking responses.
type DentistSummary struct {
	Name              string `bson:"name" json:"name"`
	YearsOfExperience int    `bson:"yearsOfExperience" json:"yearsOfExperience"`
	AreaOfExpertise   string `bson:"areaOfExpertise" json:"areaOfExpertise"`
}
