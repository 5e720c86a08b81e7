package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/praxishq/praxis-backend/internal/domain/model"
	"github.com/praxishq/praxis-backend/internal/domain/repository"
	"gorm.io/gorm"
)

type websiteRepository struct {
	db *gorm.DB
}

func NewWebsiteRepository(db *gorm.DB) repository.WebsiteRepository {
	return &websiteRepository{db: db}
}

func (r *websiteRepository) Create(ctx context.Context, website *model.Website) error {
	return r.db.WithContext(ctx).Create(website).Error
}

func (r *websiteRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Website, error) {
	var website model.Website
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&website).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &website, nil
}

func (r *websiteRepository) GetBySlug(ctx context.Context, slug string) (*model.Website, error) {
	var website model.Website
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&website).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &website, nil
}

func (r *websiteRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.Website, error) {
	var websites []model.Website
	err := r.db.WithContext(ctx).
		Where("userid = ?", userID).
		Order("created_at DESC").
		Find(&websites).Error
	if err != nil {
		return nil, err
	}
	return websites, nil
}

func (r *websiteRepository) Delete(ctx context.Context, id uuid.UUID, userID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ? AND userid = ?", id, userID).
		Delete(&model.Website{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *websiteRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Website{}).
		Where("slug = ?", slug).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
