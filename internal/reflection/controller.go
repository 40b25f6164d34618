package reflection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/spacesedan/emotion-reflection/internal/clients"
	"github.com/spacesedan/emotion-reflection/internal/models"
)

type Classifier interface {
	AnalyzeEmotion(ctx context.Context, text string) (models.ClassificationResult, error)
}

// Observer receives every state the controller enters, in order. Observers run
// while the controller lock is held and must not call back into the Controller.
type Observer func(State)

type Option func(*Controller)

func WithObserver(o Observer) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, o)
	}
}

// Controller owns the reflection workflow. It is the only writer of its state.
type Controller struct {
	classifier Classifier
	observers  []Observer

	mu     sync.Mutex
	state  State
	input  string
	active uuid.UUID
}

func NewController(classifier Classifier, opts ...Option) *Controller {
	c := &Controller{
		classifier: classifier,
		state:      Idle{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Input returns the text of the last submission attempt.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// Submit validates raw and, when valid, enters Loading before returning and
// sends raw to the classifier in the background. Invalid input moves the
// workflow to Failed without touching the network.
func (c *Controller) Submit(ctx context.Context, raw string) (*Submission, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, loading := c.state.(Loading); loading {
		slog.Warn("[Controller] Submit ignored, request already in flight",
			slog.String("submission_id", c.active.String()))
		return nil, ErrSubmissionInFlight
	}

	c.input = raw
	if err := Validate(raw); err != nil {
		c.transition(Failed{Message: err.Error()})
		return nil, err
	}

	sub := newSubmission()
	c.active = sub.id
	c.transition(Loading{SubmissionID: sub.id})

	slog.Debug("[Controller] Dispatching reflection",
		slog.String("submission_id", sub.id.String()),
		slog.Int("length", len(raw)))

	go c.dispatch(ctx, sub, raw)
	return sub, nil
}

// Reset returns to Idle from any state. A response still in flight is
// discarded when it arrives.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, idle := c.state.(Idle); idle && c.input == "" && c.active == uuid.Nil {
		return
	}

	if c.active != uuid.Nil {
		slog.Debug("[Controller] Reset while in flight, response will be discarded",
			slog.String("submission_id", c.active.String()))
	}

	c.active = uuid.Nil
	c.input = ""
	c.transition(Idle{})
}

func (c *Controller) dispatch(ctx context.Context, sub *Submission, text string) {
	defer close(sub.done)

	result, err := c.classify(ctx, text)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != sub.id {
		slog.Debug("[Controller] Discarding stale response",
			slog.String("submission_id", sub.id.String()))
		sub.err = ErrSuperseded
		return
	}
	c.active = uuid.Nil

	if err != nil {
		logFailure(sub.id, err)
		sub.err = err
		c.transition(Failed{Message: GenericFailureMessage})
		return
	}

	c.transition(Succeeded{Result: clampConfidence(result)})
}

// classify turns a classifier panic into an error so the workflow always settles.
func (c *Controller) classify(ctx context.Context, text string) (result models.ClassificationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classifier panicked: %v", r)
		}
	}()
	return c.classifier.AnalyzeEmotion(ctx, text)
}

// caller holds c.mu
func (c *Controller) transition(next State) {
	c.state = next
	for _, o := range c.observers {
		o(next)
	}
}

func logFailure(id uuid.UUID, err error) {
	kind := "transport"
	attrs := []any{
		slog.String("submission_id", id.String()),
		slog.String("error", err.Error()),
	}

	var statusErr *clients.StatusError
	switch {
	case errors.As(err, &statusErr):
		kind = "status"
		attrs = append(attrs, slog.Int("status_code", statusErr.StatusCode))
	case errors.Is(err, clients.ErrMalformedResponse):
		kind = "parse"
	}

	attrs = append(attrs, slog.String("kind", kind))
	slog.Error("[Controller] Emotion analysis failed", attrs...)
}

func clampConfidence(r Result) Result {
	if r.Confidence >= 0 && r.Confidence <= 1 {
		return r
	}

	slog.Warn("[Controller] Confidence out of range, clamping",
		slog.String("emotion", r.Emotion),
		slog.Float64("confidence", r.Confidence))

	if r.Confidence < 0 {
		r.Confidence = 0
	} else {
		r.Confidence = 1
	}
	return r
}

// Submission tracks one dispatched request.
type Submission struct {
	id   uuid.UUID
	done chan struct{}
	err  error
}

func newSubmission() *Submission {
	return &Submission{
		id:   uuid.New(),
		done: make(chan struct{}),
	}
}

func (s *Submission) ID() uuid.UUID { return s.id }

// Done is closed once the response has been applied or discarded.
func (s *Submission) Done() <-chan struct{} { return s.done }

// Wait blocks until Done and returns the underlying fault, ErrSuperseded if
// the response was discarded, or nil if it was applied as a success.
func (s *Submission) Wait(ctx context.Context) error {
	select {
	case <-s.done:
		return s.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
