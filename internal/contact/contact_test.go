package contact

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMessage() Message {
	return Message{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Hello",
		Message: "Loved the carousel.",
	}
}

type recordingDeliverer struct {
	mu    sync.Mutex
	calls []Message
	err   error
}

func (d *recordingDeliverer) Deliver(_ context.Context, m Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, m)
	return d.err
}

type recordingRecorder struct {
	statuses []Status
}

func (r *recordingRecorder) RecordSubmission(_ context.Context, _ string, status Status) {
	r.statuses = append(r.statuses, status)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*Message)
		field string
		want  error
	}{
		{"empty name", func(m *Message) { m.Name = "" }, "name", ErrMissingField},
		{"blank subject", func(m *Message) { m.Subject = "   " }, "subject", ErrMissingField},
		{"empty message", func(m *Message) { m.Message = "" }, "message", ErrMissingField},
		{"not an email", func(m *Message) { m.Email = "not-an-email" }, "email", ErrInvalidEmail},
		{"no dot", func(m *Message) { m.Email = "a@b" }, "email", ErrInvalidEmail},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMessage()
			tt.edit(&m)
			err := m.Validate()
			require.ErrorIs(t, err, tt.want)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
		})
	}

	assert.NoError(t, validMessage().Validate())
	m := validMessage()
	m.Email = "x@y.z"
	assert.NoError(t, m.Validate(), "pattern is deliberately loose")
}

func TestSubmitInvalidMakesNoCall(t *testing.T) {
	d := &recordingDeliverer{}
	s := NewSubmitter(d)

	f := &Form{Message: validMessage()}
	f.Subject = ""
	res := s.Submit(context.Background(), f)
	assert.Equal(t, StatusInvalid, res.Status)
	assert.ErrorIs(t, res.Err, ErrMissingField)

	f = &Form{Message: validMessage()}
	f.Email = "not-an-email"
	res = s.Submit(context.Background(), f)
	assert.Equal(t, StatusInvalid, res.Status)

	assert.Empty(t, d.calls)
	assert.Equal(t, "not-an-email", f.Email, "fields are kept")
}

func TestSubmitSuccessDeliversOnceAndClears(t *testing.T) {
	d := &recordingDeliverer{}
	rec := &recordingRecorder{}
	s := NewSubmitter(d, WithRecorder(rec))

	f := &Form{Message: validMessage()}
	res := s.Submit(context.Background(), f)

	require.Equal(t, StatusSent, res.Status)
	assert.NoError(t, res.Err)
	require.Len(t, d.calls, 1)
	assert.Equal(t, validMessage(), d.calls[0])
	assert.Equal(t, Message{}, f.Message)
	assert.Equal(t, []Status{StatusSent}, rec.statuses)

	_, err := ulid.Parse(res.ID)
	assert.NoError(t, err)
	assert.False(t, s.Submitting())
}

func TestSubmitFailureKeepsFields(t *testing.T) {
	d := &recordingDeliverer{err: errors.New("smtp: 535 bad credentials")}
	rec := &recordingRecorder{}
	s := NewSubmitter(d, WithRecorder(rec))

	f := &Form{Message: validMessage()}
	res := s.Submit(context.Background(), f)

	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrDelivery)
	assert.NotContains(t, res.Err.Error(), "535", "cause is not shown to visitors")
	assert.Equal(t, validMessage(), f.Message)
	assert.Equal(t, []Status{StatusFailed}, rec.statuses)
	assert.False(t, s.Submitting())
}

func TestSubmitRejectsConcurrentSubmission(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	d := DelivererFunc(func(ctx context.Context, m Message) error {
		close(entered)
		<-release
		return nil
	})
	s := NewSubmitter(d)

	done := make(chan Result)
	go func() {
		done <- s.Submit(context.Background(), &Form{Message: validMessage()})
	}()
	<-entered
	assert.True(t, s.Submitting())

	res := s.Submit(context.Background(), &Form{Message: validMessage()})
	assert.Equal(t, StatusBusy, res.Status)
	assert.ErrorIs(t, res.Err, ErrInFlight)

	close(release)
	assert.Equal(t, StatusSent, (<-done).Status)
	assert.False(t, s.Submitting())
}

func TestSubmitTimeout(t *testing.T) {
	d := DelivererFunc(func(ctx context.Context, m Message) error {
		<-ctx.Done()
		return ctx.Err()
	})
	s := NewSubmitter(d, WithTimeout(10*time.Millisecond))

	f := &Form{Message: validMessage()}
	res := s.Submit(context.Background(), f)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Equal(t, validMessage(), f.Message)
}
