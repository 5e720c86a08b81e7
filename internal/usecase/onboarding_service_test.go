package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/praxishq/praxis-backend/internal/domain/model"
)

// MockSubscriberRepository is a mock implementation of SubscriberRepository
type MockSubscriberRepository struct {
	mock.Mock
}

func (m *MockSubscriberRepository) EnsureExists(ctx context.Context, subscriber *model.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

func (m *MockSubscriberRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Subscriber, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) GetByProviderCustomerID(ctx context.Context, customerID string) (*model.Subscriber, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscriber), args.Error(1)
}

func (m *MockSubscriberRepository) Update(ctx context.Context, subscriber *model.Subscriber) error {
	args := m.Called(ctx, subscriber)
	return args.Error(0)
}

// MockMetadataWriter is a mock implementation of MetadataWriter
type MockMetadataWriter struct {
	mock.Mock
}

func (m *MockMetadataWriter) UpdateUserMetadata(ctx context.Context, externalUserID string, patch map[string]interface{}) error {
	args := m.Called(ctx, externalUserID, patch)
	return args.Error(0)
}

func TestOnboardingService_Complete(t *testing.T) {
	userID := uuid.New()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("EnsureExists", mock.Anything, mock.MatchedBy(func(p *model.Profile) bool {
		return p.ID == userID && p.FullName == "Dr. Jane Doe" && p.Email == "jane@example.com"
	})).Return(nil)

	subscriberRepo := new(MockSubscriberRepository)
	subscriberRepo.On("EnsureExists", mock.Anything, mock.MatchedBy(func(s *model.Subscriber) bool {
		return s.UserID == userID && s.Email == "jane@example.com"
	})).Return(nil)

	metadata := new(MockMetadataWriter)
	metadata.On("UpdateUserMetadata", mock.Anything, "user_ext123", map[string]interface{}{
		"onboarding_complete": true,
		"selected_plan":       "pro",
		"selected_template":   "specialist-42",
	}).Return(nil)

	service := NewOnboardingService(profileRepo, subscriberRepo, metadata, zap.NewNop())

	err := service.Complete(context.Background(), userID, "user_ext123", "jane@example.com", CompletionInput{
		FullName:         "Dr. Jane Doe",
		Specialty:        "Cardiology",
		SelectedPlan:     "pro",
		SelectedTemplate: "specialist-42",
	})
	assert.NoError(t, err)

	profileRepo.AssertExpectations(t)
	subscriberRepo.AssertExpectations(t)
	metadata.AssertExpectations(t)
}

func TestOnboardingService_Complete_MetadataFailureSurfaces(t *testing.T) {
	userID := uuid.New()

	profileRepo := new(MockProfileRepository)
	profileRepo.On("EnsureExists", mock.Anything, mock.Anything).Return(nil)

	subscriberRepo := new(MockSubscriberRepository)
	subscriberRepo.On("EnsureExists", mock.Anything, mock.Anything).Return(nil)

	metadata := new(MockMetadataWriter)
	metadata.On("UpdateUserMetadata", mock.Anything, "user_ext123", mock.Anything).
		Return(errors.New("provider unavailable"))

	service := NewOnboardingService(profileRepo, subscriberRepo, metadata, zap.NewNop())

	err := service.Complete(context.Background(), userID, "user_ext123", "jane@example.com", CompletionInput{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider metadata")
}

func TestOnboardingService_Complete_RowFailureSkipsMetadata(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	profileRepo.On("EnsureExists", mock.Anything, mock.Anything).Return(errors.New("db down"))

	metadata := new(MockMetadataWriter)

	service := NewOnboardingService(profileRepo, new(MockSubscriberRepository), metadata, zap.NewNop())

	err := service.Complete(context.Background(), uuid.New(), "user_ext123", "jane@example.com", CompletionInput{})
	assert.Error(t, err)
	// Provider metadata must not claim completion when the rows were never
	// written.
	metadata.AssertNotCalled(t, "UpdateUserMetadata", mock.Anything, mock.Anything, mock.Anything)
}
