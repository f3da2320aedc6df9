package sessionRepo

import (
	"context"
	"fmt"
	"time"

	"climaedu/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TryCommit atomically inserts a new pending session after verifying that no
// blocking session overlaps [ScheduledStart, ScheduledEnd) for the tutor. The
// overlap count inside the transaction catches most races; the unique index
// on (tutorId, slotKeys) is the authoritative arbiter across concurrent
// transactions and service instances. Either way the caller sees
// ErrSessionConflict and nothing is written.
func (repo *MongoSessionRepo) TryCommit(ctx context.Context, session *models.BookedSession) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := repo.sessionColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		filter := bson.M{
			"tutorId":        session.TutorID,
			"status":         bson.M{"$in": bson.A{models.SessionStatusPending, models.SessionStatusConfirmed}},
			"scheduledStart": bson.M{"$lt": session.ScheduledEnd},
			"scheduledEnd":   bson.M{"$gt": session.ScheduledStart},
		}
		count, err := repo.sessionColl.CountDocuments(sc, filter)
		if err != nil {
			return fmt.Errorf("overlap check failed: %w", err)
		}
		if count > 0 {
			return ErrSessionConflict
		}

		if _, err := repo.sessionColl.InsertOne(sc, session); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return ErrSessionConflict
			}
			return fmt.Errorf("insert session failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if err == ErrSessionConflict {
			return err
		}
		return fmt.Errorf("session commit transaction failed: %w", err)
	}

	return nil
}
