package services_test

import (
	"context"
	"errors"
	"sync"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
	"github.com/mentorsetu/mentorsetu-api/internal/notify"
	"github.com/mentorsetu/mentorsetu-api/internal/payment"
	"github.com/mentorsetu/mentorsetu-api/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockMentorRepository is a mock implementation of MentorRepositoryInterface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) GetAll(ctx context.Context) ([]*models.Mentor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id string) (*models.Mentor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockMentorRepository) Reviews(ctx context.Context, mentorID string) ([]models.Review, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Review), args.Error(1)
}

// MockReceiptPublisher is a mock implementation of ReceiptPublisher
type MockReceiptPublisher struct {
	mock.Mock
}

func (m *MockReceiptPublisher) Publish(ctx context.Context, b models.Booking) (string, error) {
	args := m.Called(ctx, b)
	return args.String(0), args.Error(1)
}

// recordingNotifier keeps every event it receives
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(ctx context.Context, event notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) Kinds() []notify.Kind {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]notify.Kind, 0, len(n.events))
	for _, e := range n.events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}

// decliningGateway fails every charge
type decliningGateway struct{}

func (decliningGateway) Name() string { return "declining" }

func (decliningGateway) Charge(ctx context.Context, req payment.ChargeRequest) (payment.ChargeResult, error) {
	return payment.ChargeResult{}, errors.New("card declined")
}

// failingStore wraps a store and fails the selected operations
type failingStore struct {
	repository.BookingStore
	failList   bool
	failAppend bool
	failUpdate bool
}

var errStoreDown = errors.New("store unavailable")

func (s *failingStore) List(ctx context.Context) ([]models.Booking, error) {
	if s.failList {
		return nil, errStoreDown
	}
	return s.BookingStore.List(ctx)
}

func (s *failingStore) Append(ctx context.Context, b models.Booking) error {
	if s.failAppend {
		return errStoreDown
	}
	return s.BookingStore.Append(ctx, b)
}

func (s *failingStore) Update(ctx context.Context, id string, patch models.BookingPatch) (models.Booking, bool, error) {
	if s.failUpdate {
		return models.Booking{}, false, errStoreDown
	}
	return s.BookingStore.Update(ctx, id, patch)
}
