package contact

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	ErrMissingField = errors.New("please fill in all fields")
	ErrInvalidEmail = errors.New("please enter a valid email address")
	ErrInFlight     = errors.New("a message is already being sent")
	ErrDelivery     = errors.New("failed to send message, try again later")
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidationError names the field that failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %v", e.Field, e.Err) }

func (e *ValidationError) Unwrap() error { return e.Err }

// Message is a contact form submission.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate checks that all fields are present and the email looks like one.
func (m Message) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"name", m.Name},
		{"email", m.Email},
		{"subject", m.Subject},
		{"message", m.Message},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Field: f.name, Err: ErrMissingField}
		}
	}
	if !emailPattern.MatchString(m.Email) {
		return &ValidationError{Field: "email", Err: ErrInvalidEmail}
	}
	return nil
}

// Deliverer forwards a validated message to an external mail service.
type Deliverer interface {
	Deliver(ctx context.Context, m Message) error
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(ctx context.Context, m Message) error

func (f DelivererFunc) Deliver(ctx context.Context, m Message) error { return f(ctx, m) }

// Form holds the field values between submissions.
type Form struct {
	Message
}

// Clear empties every field.
func (f *Form) Clear() { f.Message = Message{} }

// Status is the terminal state of a submission.
type Status string

const (
	StatusSent    Status = "sent"
	StatusInvalid Status = "invalid"
	StatusBusy    Status = "busy"
	StatusFailed  Status = "failed"
)

// Result reports how a submission ended. Err is user-facing.
type Result struct {
	ID     string
	Status Status
	Err    error
}

// Recorder receives one call per delivery attempt.
type Recorder interface {
	RecordSubmission(ctx context.Context, id string, status Status)
}

// Submitter validates and delivers contact messages. At most one delivery
// is in flight at a time.
type Submitter struct {
	deliverer  Deliverer
	timeout    time.Duration
	recorder   Recorder
	submitting atomic.Bool
}

// Option configures a Submitter.
type Option func(*Submitter)

// WithTimeout bounds each delivery call.
func WithTimeout(d time.Duration) Option {
	return func(s *Submitter) { s.timeout = d }
}

// WithRecorder reports every delivery outcome to r.
func WithRecorder(r Recorder) Option {
	return func(s *Submitter) { s.recorder = r }
}

// NewSubmitter creates a submitter that delivers through d.
func NewSubmitter(d Deliverer, opts ...Option) *Submitter {
	s := &Submitter{deliverer: d}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submitting reports whether a delivery is in flight.
func (s *Submitter) Submitting() bool { return s.submitting.Load() }

// Submit validates f and delivers it. The form is cleared only when delivery
// succeeds; on any failure the fields are left for resubmission.
func (s *Submitter) Submit(ctx context.Context, f *Form) Result {
	if err := f.Validate(); err != nil {
		return Result{Status: StatusInvalid, Err: err}
	}
	if !s.submitting.CompareAndSwap(false, true) {
		return Result{Status: StatusBusy, Err: ErrInFlight}
	}
	defer s.submitting.Store(false)

	id := NewID()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	if err := s.deliverer.Deliver(ctx, f.Message); err != nil {
		log.Printf("Contact %s: delivery failed: %v", id, err)
		s.record(ctx, id, StatusFailed)
		return Result{ID: id, Status: StatusFailed, Err: ErrDelivery}
	}

	log.Printf("Contact %s: message sent", id)
	s.record(ctx, id, StatusSent)
	f.Clear()
	return Result{ID: id, Status: StatusSent}
}

func (s *Submitter) record(ctx context.Context, id string, status Status) {
	if s.recorder == nil {
		return
	}
	// The delivery context may already be expired.
	s.recorder.RecordSubmission(context.WithoutCancel(ctx), id, status)
}

// NewID returns a new submission id.
func NewID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
