package database

import (
	"gorm.io/gorm"

	"github.com/praxishq/praxis-backend/internal/adapter/repository"
	domainRepo "github.com/praxishq/praxis-backend/internal/domain/repository"
)

// Repositories holds all repository instances
type Repositories struct {
	Profile    domainRepo.ProfileRepository
	Subscriber domainRepo.SubscriberRepository
	Website    domainRepo.WebsiteRepository
	Plan       domainRepo.PlanRepository
}

// NewRepositories creates new repository instances with database connection
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Profile:    repository.NewProfileRepository(db),
		Subscriber: repository.NewSubscriberRepository(db),
		Website:    repository.NewWebsiteRepository(db),
		Plan:       repository.NewPlanRepository(db),
	}
}
