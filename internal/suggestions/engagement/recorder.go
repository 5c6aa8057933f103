// Package engagement records user engagement signals such as likes.
package engagement

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"trip-suggestions/internal/common/logger"

	"github.com/lib/pq"
)

const EventDestinationLiked = "destination.liked"

var ErrUnknownDestination = errors.New("unknown destination")

const insertLikeQuery = `
	INSERT INTO destination_likes (user_id, destination_id, liked_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, destination_id) DO NOTHING`

const incrementLikesQuery = `
	INSERT INTO destination_stats (destination_id, total_likes, updated_at)
	VALUES ($1, 1, $2)
	ON CONFLICT (destination_id)
	DO UPDATE SET total_likes = destination_stats.total_likes + 1, updated_at = EXCLUDED.updated_at`

// Publisher fans an event out to downstream consumers.
type Publisher interface {
	PublishEvent(ctx context.Context, topicARN, eventType string, payload interface{}) (string, error)
}

type LikeEvent struct {
	UserID        string    `json:"userId"`
	DestinationID string    `json:"destinationId"`
	LikedAt       time.Time `json:"likedAt"`
}

type Recorder struct {
	db        *sql.DB
	publisher Publisher
	topicARN  string
	logger    logger.Logger
	now       func() time.Time
}

// NewRecorder builds a recorder. publisher may be nil, and an empty topicARN
// disables publishing.
func NewRecorder(db *sql.DB, publisher Publisher, topicARN string, log logger.Logger) *Recorder {
	return &Recorder{
		db:        db,
		publisher: publisher,
		topicARN:  topicARN,
		logger:    log.WithFields(map[string]interface{}{"component": "engagement"}),
		now:       time.Now,
	}
}

// RecordLike stores the like and bumps the destination's like counter. A
// repeated like by the same user is stored once and counted once.
func (r *Recorder) RecordLike(ctx context.Context, userID, destinationID string) error {
	likedAt := r.now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin like tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, insertLikeQuery, userID, destinationID, likedAt)
	if err != nil {
		return classify(err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("like rows affected: %w", err)
	}
	if inserted == 0 {
		r.logger.Debug("duplicate like ignored", map[string]interface{}{
			"userId":        userID,
			"destinationId": destinationID,
		})
		return tx.Commit()
	}

	if _, err := tx.ExecContext(ctx, incrementLikesQuery, destinationID, likedAt); err != nil {
		return classify(err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit like: %w", err)
	}

	if r.publisher == nil || r.topicARN == "" {
		return nil
	}
	msgID, err := r.publisher.PublishEvent(ctx, r.topicARN, EventDestinationLiked, LikeEvent{
		UserID:        userID,
		DestinationID: destinationID,
		LikedAt:       likedAt,
	})
	if err != nil {
		return err
	}
	r.logger.Debug("like event published", map[string]interface{}{
		"destinationId": destinationID,
		"messageId":     msgID,
	})
	return nil
}

// classify maps a foreign-key violation to ErrUnknownDestination.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return fmt.Errorf("%w: %s", ErrUnknownDestination, pqErr.Detail)
	}
	return fmt.Errorf("record like: %w", err)
}
