package database

import (
	"github.com/ArtLegends/medtravel-main-sub002/internal/adapter/repository"
	"github.com/ArtLegends/medtravel-main-sub002/internal/config"
	domainRepo "github.com/ArtLegends/medtravel-main-sub002/internal/domain/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Repositories holds all repository instances
type Repositories struct {
	Registry    domainRepo.CodeRegistry
	Clicks      domainRepo.ClickRepository
	Attachments domainRepo.AttachmentRepository
	Conversions domainRepo.ConversionRepository
	Leads       domainRepo.LeadRepository
	Principals  domainRepo.PrincipalRepository
}

// NewRepositories creates repository instances on db. The code registry reads
// from Supabase instead when the service is configured that way.
func NewRepositories(db *gorm.DB, supabase config.SupabaseConfig, logger *zap.Logger) *Repositories {
	var registry domainRepo.CodeRegistry
	if supabase.RegistrySource == config.RegistrySourceSupabase {
		registry = repository.NewSupabaseCodeRegistry(supabase.ProjectURL, supabase.APIKey, supabase.Timeout, logger)
	} else {
		registry = repository.NewCodeRegistry(db, logger)
	}

	return &Repositories{
		Registry:    registry,
		Clicks:      repository.NewClickRepository(db, logger),
		Attachments: repository.NewAttachmentRepository(db, logger),
		Conversions: repository.NewConversionRepository(db, logger),
		Leads:       repository.NewLeadRepository(db, logger),
		Principals:  repository.NewPrincipalRepository(db, logger),
	}
}
