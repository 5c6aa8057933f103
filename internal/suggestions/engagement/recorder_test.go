package engagement

import (
	"context"
	"errors"
	"testing"
	"time"

	"trip-suggestions/internal/common/aws"
	"trip-suggestions/internal/common/logger"

	"github.com/DATA-DOG/go-sqlmock"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakeSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &sns.PublishOutput{MessageId: awssdk.String("msg-1")}, nil
}

var fixedNow = time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)

func newTestRecorder(t *testing.T, publisher Publisher, topic string) (*Recorder, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := NewRecorder(db, publisher, topic, logger.NewTestLogger(t))
	r.now = func() time.Time { return fixedNow }
	return r, mock
}

func TestRecordLike_CountsAndPublishes(t *testing.T) {
	fake := &fakeSNS{}
	r, mock := newTestRecorder(t, aws.NewSNSClientWith(fake), "arn:aws:sns:eu-west-1:123:likes")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO destination_likes").
		WithArgs("user-1", "dest-1", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO destination_stats").
		WithArgs("dest-1", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.RecordLike(context.Background(), "user-1", "dest-1"))
	assert.NoError(t, mock.ExpectationsWereMet())

	require.Len(t, fake.inputs, 1)
	in := fake.inputs[0]
	assert.Equal(t, "arn:aws:sns:eu-west-1:123:likes", awssdk.ToString(in.TopicArn))
	assert.JSONEq(t, `{"userId":"user-1","destinationId":"dest-1","likedAt":"2026-04-02T10:30:00Z"}`, awssdk.ToString(in.Message))
	assert.Equal(t, EventDestinationLiked, awssdk.ToString(in.MessageAttributes["eventType"].StringValue))
}

func TestRecordLike_DuplicateIsNotCounted(t *testing.T) {
	fake := &fakeSNS{}
	r, mock := newTestRecorder(t, aws.NewSNSClientWith(fake), "arn:topic")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO destination_likes").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	require.NoError(t, r.RecordLike(context.Background(), "user-1", "dest-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Empty(t, fake.inputs)
}

func TestRecordLike_NoTopicSkipsPublish(t *testing.T) {
	fake := &fakeSNS{}
	r, mock := newTestRecorder(t, aws.NewSNSClientWith(fake), "")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO destination_likes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO destination_stats").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, r.RecordLike(context.Background(), "user-1", "dest-1"))
	assert.Empty(t, fake.inputs)
}

func TestRecordLike_UnknownDestination(t *testing.T) {
	r, mock := newTestRecorder(t, nil, "")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO destination_likes").
		WillReturnError(&pq.Error{Code: "23503", Detail: "Key (destination_id)=(nope) is not present"})
	mock.ExpectRollback()

	err := r.RecordLike(context.Background(), "user-1", "nope")
	assert.ErrorIs(t, err, ErrUnknownDestination)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordLike_PublishFailure(t *testing.T) {
	fake := &fakeSNS{err: errors.New("throttled")}
	r, mock := newTestRecorder(t, aws.NewSNSClientWith(fake), "arn:topic")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO destination_likes").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO destination_stats").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.RecordLike(context.Background(), "user-1", "dest-1")
	assert.ErrorContains(t, err, "publish destination.liked event")
}
