package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/model"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/pricing"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/repository"
)

// SecurityService resolves security names to stored securities.
// Resolution is by exact folded name only: "Grupo Galicia", "GRUPO GALICIA"
// and "grupo  galicía" are the same security, "Galicia" is not.
type SecurityService struct {
	securityRepo *repository.SecurityRepository
	log          zerolog.Logger
}

// NewSecurityService creates a new SecurityService with the provided repository dependencies.
func NewSecurityService(securityRepo *repository.SecurityRepository, log zerolog.Logger) *SecurityService {
	return &SecurityService{
		securityRepo: securityRepo,
		log:          log.With().Str("component", "security").Logger(),
	}
}

// GetSecurities retrieves every known security.
func (s *SecurityService) GetSecurities(ctx context.Context) ([]model.Security, error) {
	return s.securityRepo.GetSecurities(ctx)
}

// ResolveOrCreate returns the security whose folded name equals name's,
// creating it when none exists. created reports whether a row was written.
func (s *SecurityService) ResolveOrCreate(ctx context.Context, name string) (model.Security, bool, error) {
	sec, created, err := resolveOrCreateSecurity(ctx, s.securityRepo, name)
	if err != nil {
		return model.Security{}, false, err
	}
	if created {
		s.log.Info().Str("security_id", sec.ID).Str("name", sec.Name).Msg("security created")
	}
	return sec, created, nil
}

// resolveOrCreateSecurity is shared with the ledger and price services so the
// same rule applies inside their transactions.
func resolveOrCreateSecurity(ctx context.Context, repo *repository.SecurityRepository, name string) (model.Security, bool, error) {
	display := strings.Join(strings.Fields(name), " ")
	fold := pricing.FoldName(display)
	if fold == "" {
		return model.Security{}, false, fmt.Errorf("failed to resolve security: empty name")
	}

	return repo.InsertSecurityIfAbsent(ctx, &model.Security{
		ID:        uuid.New().String(),
		Name:      display,
		NameFold:  fold,
		CreatedAt: time.Now().UTC(),
	})
}

// findSecurity looks a security up by id, or by folded name when id is empty.
func findSecurity(ctx context.Context, repo *repository.SecurityRepository, id, name string) (model.Security, error) {
	if id != "" {
		return repo.GetSecurity(ctx, id)
	}
	return repo.GetSecurityByFold(ctx, pricing.FoldName(strings.Join(strings.Fields(name), " ")))
}
