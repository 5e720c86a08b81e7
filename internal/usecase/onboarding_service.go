package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"go.uber.org/zap"
)

// MetadataWriter persists onboarding state into the identity provider's
// user-metadata store. Implemented by identity.ProviderClient.
type MetadataWriter interface {
	UpdateUserMetadata(ctx context.Context, externalUserID string, patch map[string]interface{}) error
}

// OnboardingService finishes the onboarding wizard: it ensures the lazily
// created profile and subscriber rows exist and mirrors the completion
// flags and selections into provider user metadata.
type OnboardingService struct {
	profileRepo    repository.ProfileRepository
	subscriberRepo repository.SubscriberRepository
	metadata       MetadataWriter
	logger         *zap.Logger
}

func NewOnboardingService(
	profileRepo repository.ProfileRepository,
	subscriberRepo repository.SubscriberRepository,
	metadata MetadataWriter,
	logger *zap.Logger,
) *OnboardingService {
	return &OnboardingService{
		profileRepo:    profileRepo,
		subscriberRepo: subscriberRepo,
		metadata:       metadata,
		logger:         logger,
	}
}

// CompletionInput is the payload of a finished onboarding wizard.
type CompletionInput struct {
	FullName         string `json:"full_name"`
	Specialty        string `json:"specialty"`
	Address          string `json:"address"`
	Phone            string `json:"phone"`
	SelectedPlan     string `json:"selected_plan"`
	SelectedTemplate string `json:"selected_template"`
}

// Complete upserts the user's rows and records completion in provider
// metadata. Both row creations are atomic upserts; re-running Complete is
// idempotent.
func (s *OnboardingService) Complete(ctx context.Context, userID uuid.UUID, externalID, email string, input CompletionInput) error {
	if err := s.profileRepo.EnsureExists(ctx, &model.Profile{
		ID:        userID,
		FullName:  input.FullName,
		Specialty: input.Specialty,
		Address:   input.Address,
		Phone:     input.Phone,
		Email:     email,
	}); err != nil {
		return fmt.Errorf("failed to ensure profile row: %w", err)
	}

	if err := s.subscriberRepo.EnsureExists(ctx, &model.Subscriber{
		UserID: userID,
		Email:  email,
	}); err != nil {
		return fmt.Errorf("failed to ensure subscriber row: %w", err)
	}

	patch := map[string]interface{}{
		"onboarding_complete": true,
		"selected_plan":       input.SelectedPlan,
		"selected_template":   input.SelectedTemplate,
	}
	if err := s.metadata.UpdateUserMetadata(ctx, externalID, patch); err != nil {
		return fmt.Errorf("failed to update provider metadata: %w", err)
	}

	s.logger.Info("Onboarding completed",
		zap.String("user_id", userID.String()),
		zap.String("selected_plan", input.SelectedPlan),
		zap.String("selected_template", input.SelectedTemplate))
	return nil
}
