package templateRepo

import (
	"context"
	"fmt"
	"time"

	"climaedu/database"
	"climaedu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoTemplateRepo implements TemplateRepository using MongoDB.
type mongoTemplateRepo struct {
	coll *mongo.Collection
}

// NewMongoTemplateRepo constructs a new instance of mongoTemplateRepo.
func NewMongoTemplateRepo() TemplateRepository {
	db := database.MongoClient.Database("climaedu")
	return &mongoTemplateRepo{
		coll: db.Collection("availability_templates"),
	}
}

// ListTemplates retrieves all weekly availability templates for a tutor,
// ordered by day of week and start minute.
func (r *mongoTemplateRepo) ListTemplates(ctx context.Context, tutorID string) ([]models.WeeklyAvailabilityTemplate, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"tutorId": tutorID}
	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "start", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching templates for tutor %s: %w", tutorID, err)
	}
	defer cursor.Close(ctx)

	var templates []models.WeeklyAvailabilityTemplate
	if err := cursor.All(ctx, &templates); err != nil {
		return nil, fmt.Errorf("error decoding templates: %w", err)
	}
	return templates, nil
}
