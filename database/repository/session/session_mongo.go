package sessionRepo

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

// MongoSessionRepo implements SessionRepository using MongoDB.
type MongoSessionRepo struct {
	sessionColl *mongo.Collection
}

// NewMongoSessionRepo constructs a new instance of MongoSessionRepo.
func NewMongoSessionRepo() SessionRepository {
	db := database.MongoClient.Database("climaedu")
	return &MongoSessionRepo{
		sessionColl: db.Collection("sessions"),
	}
}

// ListSessionsOnDate retrieves a tutor's pending and confirmed sessions
// overlapping [dayStart, dayEnd). Half-open semantics: a session ending
// exactly at dayStart does not overlap.
func (repo *MongoSessionRepo) ListSessionsOnDate(ctx context.Context, tutorID string, dayStart, dayEnd time.Time) ([]models.BookedSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"tutorId":        tutorID,
		"status":         bson.M{"$in": bson.A{models.SessionStatusPending, models.SessionStatusConfirmed}},
		"scheduledStart": bson.M{"$lt": dayEnd},
		"scheduledEnd":   bson.M{"$gt": dayStart},
	}
	opts := options.Find().SetSort(bson.D{{Key: "scheduledStart", Value: 1}})
	cursor, err := repo.sessionColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding sessions for tutor %s: %w", tutorID, err)
	}
	defer cursor.Close(ctx)

	var sessions []models.BookedSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, fmt.Errorf("error decoding sessions: %w", err)
	}
	return sessions, nil
}

// GetSessionByID retrieves a session document by ID.
func (repo *MongoSessionRepo) GetSessionByID(ctx context.Context, sessionID string) (*models.BookedSession, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var session models.BookedSession
	filter := bson.M{"id": sessionID}
	if err := repo.sessionColl.FindOne(ctx, filter).Decode(&session); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("session with id %s not found", sessionID)
		}
		return nil, fmt.Errorf("error fetching session with id %s: %w", sessionID, err)
	}
	return &session, nil
}

// ConfirmSession transitions a pending session to confirmed using optimistic
// concurrency on the version field.
func (repo *MongoSessionRepo) ConfirmSession(ctx context.Context, sessionID string, expectedVersion int) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":      sessionID,
		"status":  models.SessionStatusPending,
		"version": expectedVersion,
	}
	update := bson.M{
		"$set": bson.M{"status": models.SessionStatusConfirmed},
		"$inc": bson.M{"version": 1},
	}
	res, err := repo.sessionColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error confirming session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return ErrVersionMismatch
	}
	return nil
}

// CancelSession marks a session cancelled and unsets its slot keys so the
// interval stops blocking conflict checks and the unique index frees up.
func (repo *MongoSessionRepo) CancelSession(ctx context.Context, sessionID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": sessionID}
	update := bson.M{
		"$set":   bson.M{"status": models.SessionStatusCancelled},
		"$unset": bson.M{"slotKeys": ""},
		"$inc":   bson.M{"version": 1},
	}
	res, err := repo.sessionColl.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error cancelling session %s: %w", sessionID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("session with id %s not found", sessionID)
	}
	return nil
}

// ExpireStalePending cancels pending sessions created before the cutoff and
// returns how many were released.
func (repo *MongoSessionRepo) ExpireStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{
		"status":    models.SessionStatusPending,
		"createdAt": bson.M{"$lt": cutoff},
	}
	update := bson.M{
		"$set":   bson.M{"status": models.SessionStatusCancelled},
		"$unset": bson.M{"slotKeys": ""},
		"$inc":   bson.M{"version": 1},
	}
	res, err := repo.sessionColl.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("error expiring stale pending sessions: %w", err)
	}
	return res.ModifiedCount, nil
}
