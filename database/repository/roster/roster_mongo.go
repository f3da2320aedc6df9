package rosterRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"climaedu/config"
	"climaedu/database"
	"climaedu/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// mongoRosterRepo implements CourseRosterRepository with a Redis cache in
// front of the course_tutors collection.
type mongoRosterRepo struct {
	coll  *mongo.Collection
	cache *redis.Client
	ttl   time.Duration
}

// NewMongoRosterRepo constructs a new instance of mongoRosterRepo.
func NewMongoRosterRepo() CourseRosterRepository {
	db := database.MongoClient.Database("climaedu")
	return &mongoRosterRepo{
		coll:  db.Collection("course_tutors"),
		cache: utils.GetRosterCacheClient(),
		ttl:   time.Duration(config.AppConfig.RosterCacheTTLSeconds) * time.Second,
	}
}

type rosterEntry struct {
	CourseID string `bson:"courseId"`
	TutorID  string `bson:"tutorId"`
}

// ListTutorsForCourse returns tutor IDs for a course, consulting the cache
// first. Cache failures degrade to a direct MongoDB read.
func (r *mongoRosterRepo) ListTutorsForCourse(ctx context.Context, courseID string) ([]string, error) {
	cacheKey := "roster:" + courseID

	if data, err := r.cache.Get(ctx, cacheKey).Result(); err == nil {
		var tutorIDs []string
		if err := json.Unmarshal([]byte(data), &tutorIDs); err == nil {
			return tutorIDs, nil
		}
	} else if err != redis.Nil {
		utils.GetLogger().Warn("roster cache read failed", zap.String("courseId", courseID), zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"courseId": courseID})
	if err != nil {
		return nil, fmt.Errorf("error fetching roster for course %s: %w", courseID, err)
	}
	defer cursor.Close(ctx)

	var entries []rosterEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding roster entries: %w", err)
	}

	tutorIDs := make([]string, 0, len(entries))
	for _, e := range entries {
		tutorIDs = append(tutorIDs, e.TutorID)
	}

	if data, err := json.Marshal(tutorIDs); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, r.ttl).Err(); err != nil {
			utils.GetLogger().Warn("roster cache write failed", zap.String("courseId", courseID), zap.Error(err))
		}
	}

	return tutorIDs, nil
}
