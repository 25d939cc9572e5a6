package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/BrandGuard-Intelligence/internal/domain/listing"
	"github.com/turtacn/BrandGuard-Intelligence/internal/infrastructure/monitoring/logging"
)

func TestEventEnvelope_Roundtrip(t *testing.T) {
	payload := ListingScoredPayload{
		ListingID: "lst-1",
		Result: listing.ScoreResult{
			ListingID: "lst-1",
			Score:     85,
			RiskLevel: listing.RiskHigh,
			Outcome:   listing.OutcomeScored,
		},
	}

	env, err := NewEventEnvelope(TopicListingScored, "test", payload)
	require.NoError(t, err)
	assert.NotEmpty(t, env.EventID)
	assert.Equal(t, "v1", env.SchemaVersion)

	msg, err := env.ToMessage(TopicListingScored)
	require.NoError(t, err)
	assert.Equal(t, TopicListingScored, msg.Topic)
	assert.Equal(t, TopicListingScored, msg.Headers["event_type"])

	decoded, err := DecodeEnvelope(&Message{Topic: msg.Topic, Value: msg.Value})
	require.NoError(t, err)
	assert.Equal(t, env.EventID, decoded.EventID)

	var got ListingScoredPayload
	require.NoError(t, decoded.DecodePayload(&got))
	assert.Equal(t, "lst-1", got.ListingID)
	assert.Equal(t, 85, got.Result.Score)
}

func TestDecodeEnvelope_Empty(t *testing.T) {
	_, err := DecodeEnvelope(&Message{})
	assert.Error(t, err)
}

func TestEnvelope_DecodeMissingPayload(t *testing.T) {
	env := &EventEnvelope{}
	var got GraphUpdatedPayload
	assert.Error(t, env.DecodePayload(&got))
}

// mockConn implements ConnInterface.
type mockConn struct {
	mock.Mock
}

func (m *mockConn) CreateTopics(topics ...kafkago.TopicConfig) error {
	return m.Called(topics).Error(0)
}

func (m *mockConn) ReadPartitions(topics ...string) ([]kafkago.Partition, error) {
	args := m.Called(topics)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kafkago.Partition), args.Error(1)
}

func (m *mockConn) Close() error {
	return m.Called().Error(0)
}

func TestTopicManager_CreateTopic(t *testing.T) {
	conn := new(mockConn)
	conn.On("CreateTopics", mock.Anything).Return(nil)

	tm := &TopicManager{conn: conn, logger: logging.NewNopLogger()}
	err := tm.CreateTopic(context.Background(), TopicConfig{
		Name:              TopicListingSubmitted,
		NumPartitions:     3,
		ReplicationFactor: 1,
		RetentionMs:       int64(time.Hour / time.Millisecond),
	})
	require.NoError(t, err)
	conn.AssertExpectations(t)
}

func TestTopicManager_CreateTopicValidation(t *testing.T) {
	tm := &TopicManager{conn: new(mockConn), logger: logging.NewNopLogger()}

	assert.Error(t, tm.CreateTopic(context.Background(), TopicConfig{NumPartitions: 1, ReplicationFactor: 1}))
	assert.Error(t, tm.CreateTopic(context.Background(), TopicConfig{Name: "x", ReplicationFactor: 1}))
}

func TestDefaultTopics_CoverPipeline(t *testing.T) {
	names := make(map[string]bool)
	for _, tc := range DefaultTopics() {
		names[tc.Name] = true
	}
	assert.True(t, names[TopicListingSubmitted])
	assert.True(t, names[TopicListingScored])
	assert.True(t, names[TopicGraphUpdated])
	assert.True(t, names[TopicDeadLetterScoring])
}

//Personal.AI order the ending
