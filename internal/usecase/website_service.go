package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"github.com/praxishq/praxis-backend/internal/sitegen"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// WebsiteService orchestrates website creation, lookup, deletion and HTML
// publishing on top of the pure sitegen package.
type WebsiteService struct {
	websiteRepo repository.WebsiteRepository
	profileRepo repository.ProfileRepository
	validate    *validator.Validate
	logger      *zap.Logger
}

func NewWebsiteService(
	websiteRepo repository.WebsiteRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.Logger,
) *WebsiteService {
	return &WebsiteService{
		websiteRepo: websiteRepo,
		profileRepo: profileRepo,
		validate:    validator.New(),
		logger:      logger,
	}
}

const slugSuffixAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Create validates the practice info, generates the content and settings
// documents for templateID, and persists the website row. A duplicate
// practice name does not fail: the slug is disambiguated with a random
// suffix, so two sites named "Acme Clinic" get two distinct slugs.
func (s *WebsiteService) Create(ctx context.Context, userID uuid.UUID, templateID string, info sitegen.PracticeInfo) (*model.Website, error) {
	if err := s.validate.Struct(info); err != nil {
		return nil, fmt.Errorf("%w: %v", domainErrors.ErrInvalidPracticeInfo, err)
	}

	doc := sitegen.Generate(templateID, info)

	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal content document: %w", err)
	}
	settings, err := json.Marshal(doc.Settings)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings document: %w", err)
	}

	base := slugify(info.Name)
	slug, err := s.availableSlug(ctx, base)
	if err != nil {
		return nil, err
	}

	website := &model.Website{
		ID:         uuid.New(),
		UserID:     userID,
		TemplateID: templateID,
		Name:       info.Name,
		Slug:       slug,
		Content:    content,
		Settings:   settings,
	}

	if err := s.websiteRepo.Create(ctx, website); err != nil {
		// A concurrent creation can still claim the slug between our check
		// and the insert; retry once with a fresh suffix before giving up.
		if !isDuplicateKey(err) {
			return nil, fmt.Errorf("failed to create website: %w", err)
		}
		website.Slug, err = suffixedSlug(base)
		if err != nil {
			return nil, err
		}
		if err := s.websiteRepo.Create(ctx, website); err != nil {
			if isDuplicateKey(err) {
				return nil, domainErrors.ErrSlugTaken
			}
			return nil, fmt.Errorf("failed to create website: %w", err)
		}
	}

	s.logger.Info("Website created",
		zap.String("website_id", website.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("template_id", templateID),
		zap.String("slug", website.Slug))

	return website, nil
}

func (s *WebsiteService) List(ctx context.Context, userID uuid.UUID) ([]model.Website, error) {
	return s.websiteRepo.ListByUserID(ctx, userID)
}

// Get returns the website only if it is owned by userID.
func (s *WebsiteService) Get(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*model.Website, error) {
	website, err := s.websiteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if website == nil || website.UserID != userID {
		return nil, domainErrors.ErrWebsiteNotFound
	}
	return website, nil
}

func (s *WebsiteService) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	deleted, err := s.websiteRepo.Delete(ctx, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete website: %w", err)
	}
	if !deleted {
		return domainErrors.ErrWebsiteNotFound
	}

	s.logger.Info("Website deleted",
		zap.String("website_id", id.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// PublishHTML renders the stored content and settings documents of the site
// at slug into a complete HTML page.
func (s *WebsiteService) PublishHTML(ctx context.Context, slug string) (string, error) {
	website, err := s.websiteRepo.GetBySlug(ctx, slug)
	if err != nil {
		return "", err
	}
	if website == nil {
		return "", domainErrors.ErrWebsiteNotFound
	}

	var doc sitegen.SiteDocument
	if err := json.Unmarshal(website.Content, &doc.Content); err != nil {
		return "", fmt.Errorf("failed to unmarshal content document: %w", err)
	}
	if err := json.Unmarshal(website.Settings, &doc.Settings); err != nil {
		return "", fmt.Errorf("failed to unmarshal settings document: %w", err)
	}

	specialty := "Medical Practice"
	profile, err := s.profileRepo.GetByID(ctx, website.UserID)
	if err != nil {
		s.logger.Warn("Failed to load profile for rendering",
			zap.String("website_id", website.ID.String()),
			zap.Error(err))
	} else if profile != nil && profile.Specialty != "" {
		specialty = profile.Specialty
	}

	return sitegen.Render(doc, website.Name, specialty)
}

// availableSlug returns base unchanged when it is free, otherwise base with
// a random suffix appended.
func (s *WebsiteService) availableSlug(ctx context.Context, base string) (string, error) {
	taken, err := s.websiteRepo.SlugExists(ctx, base)
	if err != nil {
		return "", fmt.Errorf("failed to check slug: %w", err)
	}
	if !taken {
		return base, nil
	}
	return suffixedSlug(base)
}

func suffixedSlug(base string) (string, error) {
	suffix, err := gonanoid.Generate(slugSuffixAlphabet, 6)
	if err != nil {
		return "", fmt.Errorf("failed to generate slug suffix: %w", err)
	}
	return base + "-" + suffix, nil
}

// slugify lowercases name and collapses anything non-alphanumeric into
// single hyphens.
func slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, c := range strings.ToLower(name) {
		switch {
		case (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9'):
			b.WriteRune(c)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key value")
}
