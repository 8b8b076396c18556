package services_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/payment"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/mentorsetu/mentorsetu-api/internal/services"
	apperrors "github.com/mentorsetu/mentorsetu-api/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var bookingNow = time.Date(2030, time.June, 10, 12, 0, 0, 0, time.UTC)

type bookingFixture struct {
	service  *services.BookingService
	store    repository.BookingStore
	notifier *recordingNotifier
	clock    *fakeClock
}

type fixtureOptions struct {
	store    repository.BookingStore
	gateway  payment.Gateway
	receipts services.ReceiptPublisher
	cfg      services.BookingConfig
	ids      func() string
}

func newBookingFixture(t *testing.T, opts fixtureOptions) *bookingFixture {
	t.Helper()
	if opts.store == nil {
		opts.store = repository.NewMemoryStore(repository.DefaultBookingsKey)
	}
	if opts.gateway == nil {
		opts.gateway = payment.NewSimulatedGateway(0)
	}

	notifier := &recordingNotifier{}
	clock := newFakeClock(bookingNow)
	service := services.NewBookingService(newCatalogRepository(t), opts.store, opts.gateway, notifier, opts.receipts, opts.cfg).
		WithClock(clock.Now)
	if opts.ids != nil {
		service.WithIDGenerator(opts.ids)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		assert.NoError(t, service.Shutdown(ctx))
	})

	return &bookingFixture{service: service, store: opts.store, notifier: notifier, clock: clock}
}

func validForm() models.BookingForm {
	return models.BookingForm{
		MentorID:    "1",
		StudentName: "Priya Sharma",
		Email:       "priya@example.com",
		Date:        "2030-06-11",
		Time:        "10:00 AM",
		Reason:      "Preparing for system design interviews",
		SessionType: "System Design",
	}
}

func submitAndWait(t *testing.T, f *bookingFixture, form models.BookingForm) *models.Submission {
	t.Helper()
	ctx := context.Background()
	sub, err := f.service.Submit(ctx, form)
	require.NoError(t, err)
	assert.Equal(t, models.StateSubmitting, sub.State)

	done, err := f.service.Wait(ctx, sub.ID)
	require.NoError(t, err)
	return done
}

func states(sub *models.Submission) []models.SubmissionState {
	out := make([]models.SubmissionState, 0, len(sub.History))
	for _, h := range sub.History {
		out = append(out, h.State)
	}
	return out
}

func TestBookingService_SubmitPersistsBooking(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{})

	sub := submitAndWait(t, f, validForm())

	assert.Equal(t, models.StateClosed, sub.State)
	assert.False(t, sub.ProcessingPayment)
	assert.Equal(t, notify.MessageBookingConfirmed, sub.Message)
	assert.Equal(t, []models.SubmissionState{
		models.StateEditing,
		models.StateValidating,
		models.StateSubmitting,
		models.StateProcessingPayment,
		models.StatePersisted,
		models.StateClosed,
	}, states(sub))

	require.NotNil(t, sub.Booking)
	assert.NotEmpty(t, sub.Booking.ID)
	assert.Equal(t, 2500, sub.Booking.Amount)
	assert.Equal(t, "₹2,500", sub.Booking.AmountDisplay)
	assert.Equal(t, models.BookingStatusConfirmed, sub.Booking.Status)
	assert.Equal(t, "Sarah Johnson", sub.Booking.MentorName)
	assert.Equal(t, bookingNow, sub.Booking.CreatedAt)

	stored, err := f.store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, sub.Booking.Booking, stored[0])
	assert.Equal(t, "2030-06-11", stored[0].Date.String())

	assert.Equal(t, []notify.Kind{notify.BookingConfirmed}, f.notifier.Kinds())
}

func TestBookingService_BookingIDAvoidsExistingIDs(t *testing.T) {
	store := repository.NewMemoryStore(repository.DefaultBookingsKey)
	existing := models.Booking{ID: "taken", MentorID: "2", Amount: 3000, Status: models.BookingStatusConfirmed}
	require.NoError(t, store.Append(context.Background(), existing))

	f := newBookingFixture(t, fixtureOptions{store: store, ids: sequenceIDs("sub-1", "taken", "fresh")})

	sub := submitAndWait(t, f, validForm())
	require.NotNil(t, sub.Booking)
	assert.Equal(t, "sub-1", sub.ID)
	assert.Equal(t, "fresh", sub.Booking.ID)

	stored, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestBookingService_MissingFieldsNeverAppend(t *testing.T) {
	blankers := map[string]func(*models.BookingForm){
		"studentName": func(f *models.BookingForm) { f.StudentName = "" },
		"email":       func(f *models.BookingForm) { f.Email = "   " },
		"date":        func(f *models.BookingForm) { f.Date = "" },
		"time":        func(f *models.BookingForm) { f.Time = "" },
		"reason":      func(f *models.BookingForm) { f.Reason = "" },
	}

	for field, blank := range blankers {
		t.Run(field, func(t *testing.T) {
			f := newBookingFixture(t, fixtureOptions{})
			form := validForm()
			blank(&form)

			sub, err := f.service.Submit(context.Background(), form)
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

			var formErr *services.FormError
			require.True(t, errors.As(err, &formErr))
			assert.Equal(t, notify.MessageMissingFields, formErr.Message)

			var fieldErrs validator.ValidationErrors
			require.True(t, errors.As(err, &fieldErrs))
			assert.Equal(t, field, fieldErrs[0].Field())

			assert.Equal(t, models.StateRejected, sub.State)
			stored, err := f.store.List(context.Background())
			require.NoError(t, err)
			assert.Empty(t, stored)
			assert.Empty(t, f.notifier.Kinds())
		})
	}
}

func TestBookingService_RejectsOutOfRangeValues(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(*models.BookingForm)
		field string
	}{
		{"unknown slot", func(f *models.BookingForm) { f.Time = "08:30 AM" }, "time"},
		{"unknown session type", func(f *models.BookingForm) { f.SessionType = "Pairing" }, "sessionType"},
		{"bad email", func(f *models.BookingForm) { f.Email = "not-an-email" }, "email"},
		{"today", func(f *models.BookingForm) { f.Date = "2030-06-10" }, "date"},
		{"past date", func(f *models.BookingForm) { f.Date = "2029-12-31" }, "date"},
		{"malformed date", func(f *models.BookingForm) { f.Date = "11/06/2030" }, "date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture(t, fixtureOptions{})
			form := validForm()
			tt.edit(&form)

			sub, err := f.service.Submit(context.Background(), form)
			require.Error(t, err)

			var formErr *services.FormError
			require.True(t, errors.As(err, &formErr))
			assert.Equal(t, "Validation failed", formErr.Message)

			var fieldErrs validator.ValidationErrors
			require.True(t, errors.As(err, &fieldErrs))
			assert.Equal(t, tt.field, fieldErrs[0].Field())
			assert.Equal(t, models.StateRejected, sub.State)
		})
	}
}

func TestBookingService_SessionTypeIsOptional(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{})
	form := validForm()
	form.SessionType = ""

	sub := submitAndWait(t, f, form)
	assert.Equal(t, models.StateClosed, sub.State)
	assert.Empty(t, sub.Booking.SessionType)
}

func TestBookingService_UnknownMentor(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{})
	form := validForm()
	form.MentorID = "42"

	sub, err := f.service.Submit(context.Background(), form)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	assert.Equal(t, models.StateRejected, sub.State)
}

func TestBookingService_GatewayFailure(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{gateway: decliningGateway{}})

	sub := submitAndWait(t, f, validForm())

	assert.Equal(t, models.StateFailed, sub.State)
	assert.False(t, sub.ProcessingPayment)
	assert.Equal(t, notify.MessageBookingFailed, sub.Message)
	assert.Contains(t, sub.Error, "card declined")
	assert.Equal(t, []notify.Kind{notify.BookingFailed}, f.notifier.Kinds())

	stored, err := f.store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestBookingService_AppendFailure(t *testing.T) {
	store := &failingStore{BookingStore: repository.NewMemoryStore(repository.DefaultBookingsKey), failAppend: true}
	f := newBookingFixture(t, fixtureOptions{store: store})

	sub := submitAndWait(t, f, validForm())

	assert.Equal(t, models.StateFailed, sub.State)
	assert.False(t, sub.ProcessingPayment)
	assert.Nil(t, sub.Booking)
	assert.Equal(t, []notify.Kind{notify.BookingFailed}, f.notifier.Kinds())
}

func TestBookingService_CancelInFlight(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{cfg: services.BookingConfig{APIDelay: time.Hour}})
	ctx := context.Background()

	sub, err := f.service.Submit(ctx, validForm())
	require.NoError(t, err)

	cancelled, err := f.service.Cancel(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, cancelled.State)
	assert.False(t, cancelled.ProcessingPayment)

	stored, err := f.store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Empty(t, f.notifier.Kinds())

	_, err = f.service.Cancel(ctx, sub.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}

func TestBookingService_CancelDuringPayment(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{gateway: payment.NewSimulatedGateway(time.Hour)})
	ctx := context.Background()

	sub, err := f.service.Submit(ctx, validForm())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := f.service.Get(ctx, sub.ID)
		return err == nil && current.ProcessingPayment
	}, 2*time.Second, 5*time.Millisecond)

	cancelled, err := f.service.Cancel(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StateCancelled, cancelled.State)
	assert.False(t, cancelled.ProcessingPayment)
}

func TestBookingService_WaitHonoursContext(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{cfg: services.BookingConfig{APIDelay: time.Hour}})

	sub, err := f.service.Submit(context.Background(), validForm())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	current, err := f.service.Wait(ctx, sub.ID)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, models.StateSubmitting, current.State)
}

func TestBookingService_GetUnknown(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{})

	_, err := f.service.Get(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookingService_RetentionForgetsFinishedSubmissions(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{cfg: services.BookingConfig{Retention: time.Minute}})
	ctx := context.Background()

	form := validForm()
	form.Reason = ""
	rejected, err := f.service.Submit(ctx, form)
	require.Error(t, err)

	_, err = f.service.Get(ctx, rejected.ID)
	require.NoError(t, err)

	f.clock.Advance(2 * time.Minute)
	_ = submitAndWait(t, f, func() models.BookingForm {
		fresh := validForm()
		fresh.Date = "2030-06-20"
		return fresh
	}())

	_, err = f.service.Get(ctx, rejected.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestBookingService_PublishesReceipt(t *testing.T) {
	publisher := new(MockReceiptPublisher)
	published := make(chan models.Booking, 1)
	publisher.On("Publish", mock.Anything, mock.AnythingOfType("models.Booking")).
		Run(func(args mock.Arguments) { published <- args.Get(1).(models.Booking) }).
		Return("https://storage.example/receipts/x.pdf", nil).Once()

	f := newBookingFixture(t, fixtureOptions{receipts: publisher})
	sub := submitAndWait(t, f, validForm())

	select {
	case b := <-published:
		assert.Equal(t, sub.Booking.ID, b.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("receipt was not published")
	}
}

func TestBookingService_ReceiptFailureDoesNotFailBooking(t *testing.T) {
	publisher := new(MockReceiptPublisher)
	publisher.On("Publish", mock.Anything, mock.Anything).Return("", errors.New("bucket missing")).Maybe()

	f := newBookingFixture(t, fixtureOptions{receipts: publisher})
	sub := submitAndWait(t, f, validForm())
	assert.Equal(t, models.StateClosed, sub.State)
}

func TestBookingService_Receipt(t *testing.T) {
	f := newBookingFixture(t, fixtureOptions{})
	sub := submitAndWait(t, f, validForm())

	data, filename, err := f.service.Receipt(context.Background(), sub.Booking.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
	assert.Equal(t, "receipt-"+sub.Booking.ID+".pdf", filename)

	_, _, err = f.service.Receipt(context.Background(), "missing")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}
