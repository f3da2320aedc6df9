package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the sessions collection.
func (repo *MongoSessionRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		// Unique index on session ID
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Compound index for tutorId and scheduledStart (primary query pattern)
		{
			Keys:    bson.D{{Key: "tutorId", Value: 1}, {Key: "scheduledStart", Value: 1}, {Key: "scheduledEnd", Value: 1}},
			Options: options.Index().SetName("tutor_start_end_idx"),
		},
		// Unique multikey index on the occupied granularity quanta. Two
		// sessions for the same tutor with any overlapping quantum collide
		// here, which is what makes TryCommit safe across service instances.
		// slotKeys is unset on cancellation, so cancelled sessions never block.
		{
			Keys:    bson.D{{Key: "tutorId", Value: 1}, {Key: "slotKeys", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true).SetName("unique_tutor_slot_keys"),
		},
		// Sweeper query pattern: stale pending sessions by creation time.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index().SetName("status_created_idx"),
		},
	}

	_, err := repo.sessionColl.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}
	return nil
}
