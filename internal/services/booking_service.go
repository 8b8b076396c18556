package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/payment"
	"github.com/mentorsetu/mentorsetu-api/internal/receipt"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/mentorsetu/mentorsetu-api/pkg/logger"
	"github.com/mentorsetu/mentorsetu-api/pkg/metrics"
	"go.uber.org/zap"
)

const (
	receiptTimeout = 30 * time.Second
	maxIDAttempts  = 5
)

// FormError is returned when a booking form fails validation.
// It matches apperrors.ErrInvalidInput and unwraps to the validator errors.
type FormError struct {
	Message string
	Err     error
}

func (e *FormError) Error() string {
	return e.Message + ": " + e.Err.Error()
}

func (e *FormError) Unwrap() []error {
	return []error{apperrors.ErrInvalidInput, e.Err}
}

// BookingConfig holds the booking flow timings
type BookingConfig struct {
	APIDelay  time.Duration
	Retention time.Duration
}

type submissionTask struct {
	sub    models.Submission
	cancel context.CancelFunc
	done   chan struct{}
}

// BookingService runs booking submissions as background tasks
type BookingService struct {
	mentors  repository.MentorRepositoryInterface
	store    repository.BookingStore
	gateway  payment.Gateway
	notifier notify.Notifier
	receipts ReceiptPublisher
	validate *validator.Validate
	config   BookingConfig

	now   func() time.Time
	newID func() string

	baseCtx context.Context
	stop    context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.RWMutex
	tasks map[string]*submissionTask
}

func NewBookingService(
	mentors repository.MentorRepositoryInterface,
	store repository.BookingStore,
	gateway payment.Gateway,
	notifier notify.Notifier,
	receipts ReceiptPublisher,
	cfg BookingConfig,
) *BookingService {
	baseCtx, stop := context.WithCancel(context.Background())
	s := &BookingService{
		mentors:  mentors,
		store:    store,
		gateway:  gateway,
		notifier: notifier,
		receipts: receipts,
		config:   cfg,
		now:      time.Now,
		newID:    uuid.NewString,
		baseCtx:  baseCtx,
		stop:     stop,
		tasks:    make(map[string]*submissionTask),
	}
	s.validate = newFormValidator(func() time.Time { return s.now() })
	return s
}

// WithClock replaces the time source
func (s *BookingService) WithClock(now func() time.Time) *BookingService {
	s.now = now
	return s
}

// WithIDGenerator replaces the id source for submissions and bookings
func (s *BookingService) WithIDGenerator(newID func() string) *BookingService {
	s.newID = newID
	return s
}

func newFormValidator(now func() time.Time) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	//nolint:errcheck
	_ = v.RegisterValidation("timeslot", func(fl validator.FieldLevel) bool {
		return models.IsTimeSlot(fl.Field().String())
	})
	//nolint:errcheck
	_ = v.RegisterValidation("sessiontype", func(fl validator.FieldLevel) bool {
		return models.IsSessionType(fl.Field().String())
	})
	//nolint:errcheck
	_ = v.RegisterValidation("futuredate", func(fl validator.FieldLevel) bool {
		d, err := models.ParseDate(fl.Field().String())
		if err != nil {
			return false
		}
		return d.After(models.DateOf(now()))
	})

	return v
}

// validateForm is the synchronous guard of the flow
func (s *BookingService) validateForm(form models.BookingForm) error {
	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &FormError{Message: "Validation failed", Err: err}
	}
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			return &FormError{Message: notify.MessageMissingFields, Err: fieldErrs}
		}
	}
	return &FormError{Message: "Validation failed", Err: fieldErrs}
}

// Submit validates form and, when it passes, starts the submission task.
// The returned snapshot is in state submitting; rejected forms return the
// rejected snapshot together with the validation error.
func (s *BookingService) Submit(ctx context.Context, form models.BookingForm) (*models.Submission, error) {
	s.sweep()

	form.Normalize()
	now := s.now().UTC()
	sub := models.Submission{
		ID:        s.newID(),
		MentorID:  form.MentorID,
		State:     models.StateEditing,
		History:   []models.StateChange{{State: models.StateEditing, At: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	advance(&sub, models.StateValidating, now)

	if err := s.validateForm(form); err != nil {
		return s.reject(sub, err), err
	}

	mentor, err := s.mentors.GetByID(ctx, form.MentorID)
	if err != nil {
		return s.reject(sub, err), err
	}

	advance(&sub, models.StateSubmitting, s.now().UTC())

	taskCtx, cancel := context.WithCancel(s.baseCtx)
	task := &submissionTask{sub: sub, cancel: cancel, done: make(chan struct{})}

	s.mu.Lock()
	s.tasks[sub.ID] = task
	s.mu.Unlock()

	metrics.SubmissionsInFlight.Inc()
	logger.Info("Booking submission started",
		zap.String("submission_id", sub.ID),
		zap.String("mentor_id", mentor.ID))

	s.wg.Add(1)
	go s.run(taskCtx, task, form, mentor.Ref())

	return s.snapshot(task), nil
}

func (s *BookingService) reject(sub models.Submission, err error) *models.Submission {
	advance(&sub, models.StateRejected, s.now().UTC())
	sub.Error = err.Error()
	var formErr *FormError
	if errors.As(err, &formErr) {
		sub.Message = formErr.Message
	}

	s.mu.Lock()
	done := make(chan struct{})
	close(done)
	s.tasks[sub.ID] = &submissionTask{sub: sub, cancel: func() {}, done: done}
	s.mu.Unlock()

	metrics.BookingSubmissions.WithLabelValues("rejected").Inc()
	logger.Info("Booking submission rejected",
		zap.String("submission_id", sub.ID),
		zap.String("reason", sub.Error))

	out := sub
	return &out
}

func (s *BookingService) run(ctx context.Context, task *submissionTask, form models.BookingForm, mentor models.MentorRef) {
	defer s.wg.Done()
	defer close(task.done)
	defer metrics.SubmissionsInFlight.Dec()
	defer s.update(task, func(sub *models.Submission) {
		sub.ProcessingPayment = false
	})
	defer task.cancel()

	id := task.sub.ID

	if err := payment.Sleep(ctx, s.config.APIDelay); err != nil {
		s.fail(task, err)
		return
	}

	s.transition(task, models.StateProcessingPayment, func(sub *models.Submission) {
		sub.ProcessingPayment = true
	})

	charge, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		SubmissionID: id,
		MentorID:     mentor.ID,
		Email:        form.Email,
		Amount:       mentor.Price,
	})
	if err != nil {
		s.fail(task, err)
		return
	}

	booking, err := s.buildBooking(ctx, form, mentor)
	if err != nil {
		s.fail(task, err)
		return
	}
	if err := ctx.Err(); err != nil {
		s.fail(task, err)
		return
	}

	if err := s.store.Append(ctx, booking); err != nil {
		s.fail(task, err)
		return
	}

	view := bookingView(booking)
	s.transition(task, models.StatePersisted, func(sub *models.Submission) {
		sub.Booking = &view
	})
	metrics.BookingSubmissions.WithLabelValues("persisted").Inc()
	logger.Info("Booking persisted",
		zap.String("submission_id", id),
		zap.String("booking_id", booking.ID),
		zap.String("transaction_id", charge.TransactionID),
		zap.Int("amount", booking.Amount))

	s.notifier.Notify(ctx, notify.Event{
		Kind:      notify.BookingConfirmed,
		BookingID: booking.ID,
		Message:   notify.MessageBookingConfirmed,
		At:        s.now().UTC(),
	})
	s.publishReceipt(booking)

	s.transition(task, models.StateClosed, func(sub *models.Submission) {
		sub.Message = notify.MessageBookingConfirmed
	})
}

// buildBooking creates the record to persist with an id not already in the collection
func (s *BookingService) buildBooking(ctx context.Context, form models.BookingForm, mentor models.MentorRef) (models.Booking, error) {
	date, err := models.ParseDate(form.Date)
	if err != nil {
		return models.Booking{}, apperrors.InvalidInputError("date", err.Error())
	}

	existing, err := s.store.List(ctx)
	if err != nil {
		return models.Booking{}, err
	}
	taken := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		taken[b.ID] = struct{}{}
	}

	id := ""
	for i := 0; i < maxIDAttempts; i++ {
		candidate := s.newID()
		if _, dup := taken[candidate]; candidate != "" && !dup {
			id = candidate
			break
		}
	}
	if id == "" {
		return models.Booking{}, apperrors.InternalError("could not allocate a booking id")
	}

	return models.Booking{
		ID:          id,
		MentorID:    mentor.ID,
		MentorName:  mentor.Name,
		StudentName: form.StudentName,
		Email:       form.Email,
		Date:        date,
		Time:        form.Time,
		Reason:      form.Reason,
		SessionType: form.SessionType,
		Amount:      mentor.Price,
		Status:      models.BookingStatusConfirmed,
		CreatedAt:   s.now().UTC(),
	}, nil
}

func (s *BookingService) publishReceipt(b models.Booking) {
	if s.receipts == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), receiptTimeout)
		defer cancel()
		//nolint:errcheck
		_, _ = s.receipts.Publish(ctx, b)
	}()
}

func (s *BookingService) fail(task *submissionTask, err error) {
	if errors.Is(err, context.Canceled) {
		s.transition(task, models.StateCancelled, func(sub *models.Submission) {
			sub.Error = "submission cancelled"
		})
		metrics.BookingSubmissions.WithLabelValues("cancelled").Inc()
		logger.Info("Booking submission cancelled", zap.String("submission_id", task.sub.ID))
		return
	}

	s.transition(task, models.StateFailed, func(sub *models.Submission) {
		sub.Error = err.Error()
		sub.Message = notify.MessageBookingFailed
	})
	metrics.BookingSubmissions.WithLabelValues("failed").Inc()
	logger.Error("Booking submission failed",
		zap.String("submission_id", task.sub.ID),
		zap.Error(err))

	s.notifier.Notify(context.Background(), notify.Event{
		Kind:    notify.BookingFailed,
		Message: notify.MessageBookingFailed,
		At:      s.now().UTC(),
	})
}

func advance(sub *models.Submission, next models.SubmissionState, at time.Time) bool {
	if !sub.State.CanTransitionTo(next) {
		logger.Warn("Ignoring invalid submission transition",
			zap.String("submission_id", sub.ID),
			zap.String("from", string(sub.State)),
			zap.String("to", string(next)))
		return false
	}
	sub.State = next
	sub.UpdatedAt = at
	sub.History = append(sub.History, models.StateChange{State: next, At: at})
	return true
}

func (s *BookingService) transition(task *submissionTask, next models.SubmissionState, mutate func(*models.Submission)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if advance(&task.sub, next, s.now().UTC()) && mutate != nil {
		mutate(&task.sub)
	}
}

func (s *BookingService) update(task *submissionTask, mutate func(*models.Submission)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&task.sub)
}

func (s *BookingService) snapshot(task *submissionTask) *models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := task.sub
	out.History = append([]models.StateChange(nil), task.sub.History...)
	if task.sub.Booking != nil {
		view := *task.sub.Booking
		out.Booking = &view
	}
	return &out
}

func (s *BookingService) lookup(id string) (*submissionTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperrors.NotFoundError("submission " + id)
	}
	return task, nil
}

// Get returns the current state of a submission
func (s *BookingService) Get(ctx context.Context, submissionID string) (*models.Submission, error) {
	task, err := s.lookup(submissionID)
	if err != nil {
		return nil, err
	}
	return s.snapshot(task), nil
}

// Wait blocks until the submission is terminal or ctx is done
func (s *BookingService) Wait(ctx context.Context, submissionID string) (*models.Submission, error) {
	task, err := s.lookup(submissionID)
	if err != nil {
		return nil, err
	}
	select {
	case <-task.done:
		return s.snapshot(task), nil
	case <-ctx.Done():
		return s.snapshot(task), ctx.Err()
	}
}

// Cancel cancels an in-flight submission and waits for its task to stop.
// A submission that already finished is a conflict.
func (s *BookingService) Cancel(ctx context.Context, submissionID string) (*models.Submission, error) {
	task, err := s.lookup(submissionID)
	if err != nil {
		return nil, err
	}
	if current := s.snapshot(task); current.Done() {
		return current, apperrors.ConflictError(fmt.Sprintf("submission already %s", current.State))
	}

	task.cancel()
	return s.Wait(ctx, submissionID)
}

// Receipt renders the PDF receipt of a stored booking
func (s *BookingService) Receipt(ctx context.Context, bookingID string) ([]byte, string, error) {
	bookings, err := s.store.List(ctx)
	if err != nil {
		return nil, "", err
	}
	for _, b := range bookings {
		if b.ID != bookingID {
			continue
		}
		data, err := receipt.Render(b)
		if err != nil {
			return nil, "", err
		}
		return data, receipt.Filename(b), nil
	}
	return nil, "", apperrors.NotFoundError("booking " + bookingID)
}

// sweep forgets finished submissions older than the retention window
func (s *BookingService) sweep() {
	if s.config.Retention <= 0 {
		return
	}
	cutoff := s.now().UTC().Add(-s.config.Retention)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, task := range s.tasks {
		if task.sub.State.IsTerminal() && task.sub.UpdatedAt.Before(cutoff) {
			delete(s.tasks, id)
		}
	}
}

// Shutdown cancels in-flight submissions and waits for background work
func (s *BookingService) Shutdown(ctx context.Context) error {
	s.stop()
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
