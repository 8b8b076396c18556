package services

import (
	"context"

	"github.com/mentorsetu/mentorsetu-api/internal/models"
)

// MentorServiceInterface defines the interface for catalog and profile operations
type MentorServiceInterface interface {
	List(ctx context.Context, filter models.MentorFilter) (*models.MentorListResponse, error)
	Categories(ctx context.Context) (*models.CategoriesResponse, error)
	Profile(ctx context.Context, id string) (*models.MentorProfileResponse, error)
}

// BookingServiceInterface defines the interface for the booking flow
type BookingServiceInterface interface {
	Submit(ctx context.Context, form models.BookingForm) (*models.Submission, error)
	Get(ctx context.Context, submissionID string) (*models.Submission, error)
	Wait(ctx context.Context, submissionID string) (*models.Submission, error)
	Cancel(ctx context.Context, submissionID string) (*models.Submission, error)
	Receipt(ctx context.Context, bookingID string) ([]byte, string, error)
}

// DashboardServiceInterface defines the interface for the student dashboard
type DashboardServiceInterface interface {
	Get(ctx context.Context, mode models.DashboardMode) (*models.Dashboard, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.CancelBookingResponse, error)
}

// ReceiptPublisher renders and stores the receipt of a persisted booking
type ReceiptPublisher interface {
	Publish(ctx context.Context, b models.Booking) (string, error)
}

// Ensure services implement their interfaces
var _ MentorServiceInterface = (*MentorService)(nil)
var _ BookingServiceInterface = (*BookingService)(nil)
var _ DashboardServiceInterface = (*DashboardService)(nil)
