package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/plantpal/internal/models"
)

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestForCheck(t *testing.T) {
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	status := models.NeglectStatus{UserID: "u1", Stage: models.StageWilt, Wilting: true}

	evs := ForCheck(status, false, at)
	require.Len(t, evs, 1)
	assert.Equal(t, KindNeglectUpdated, evs[0].Kind)

	evs = ForCheck(status, true, at)
	require.Len(t, evs, 2)
	assert.Equal(t, KindPlantWilting, evs[1].Kind)
	assert.Equal(t, "u1", evs[1].UserID)
}

func TestKafkaPublisherEncodesEvents(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{w: w}
	at := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	status := models.NeglectStatus{UserID: "u1", Stage: models.StageWilt, Wilting: true, ConsecutiveMissedDays: 3, WiltThreshold: 3}

	require.NoError(t, p.Publish(context.Background(), ForCheck(status, true, at)...))
	require.Len(t, w.msgs, 2)

	msg := w.msgs[1]
	assert.Equal(t, "u1", string(msg.Key))
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "plant.wilting", string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, KindPlantWilting, decoded.Kind)
	assert.Equal(t, 3, decoded.Status.ConsecutiveMissedDays)
	assert.True(t, decoded.Status.Wilting)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteErrors(t *testing.T) {
	boom := errors.New("broker down")
	p := &KafkaPublisher{w: &fakeWriter{err: boom}}
	err := p.Publish(context.Background(), Event{Kind: KindNeglectUpdated, UserID: "u"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, p.Publish(context.Background()))
}

func TestNewKafkaPublisherValidation(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "topic")
	assert.Error(t, err)
	_, err = NewKafkaPublisher([]string{" ", ""}, "topic")
	assert.Error(t, err)
	_, err = NewKafkaPublisher([]string{"localhost:9092"}, "")
	assert.Error(t, err)

	p, err := NewKafkaPublisher([]string{"localhost:9092", " "}, "plantpal.reminders")
	require.NoError(t, err)
	assert.NoError(t, p.Close())
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher()
	assert.NoError(t, p.Publish(context.Background(), Event{Kind: KindNeglectUpdated, UserID: "u"}))
	assert.NoError(t, p.Close())
}
