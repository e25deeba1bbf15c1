package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tripbazaar/travel-backend/pkg/config"
	"github.com/tripbazaar/travel-backend/pkg/db/models"
	pkgerrors "github.com/tripbazaar/travel-backend/pkg/errors"
	"github.com/tripbazaar/travel-backend/pkg/security"
	"github.com/tripbazaar/travel-backend/pkg/types"
)

const tempPasswordLength = 12

// EnsureResult reports how a booking identity was resolved.
type EnsureResult struct {
	User *models.User
	// Created is true when a fresh account was provisioned. The
	// generated password is only set in that case so the caller can
	// deliver it out of band.
	Created      bool
	TempPassword string
}

// Service resolves booking identities for the anonymous prebook flow.
type Service interface {
	EnsureBookingUser(ctx context.Context, contact types.ContactDetail) (*EnsureResult, error)
}

type service struct {
	repo        Repository
	passwordCfg config.PasswordConfig
}

// NewService builds the users service.
func NewService(repo Repository, passwordCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo, passwordCfg: passwordCfg}, nil
}

// EnsureBookingUser returns the account owning the contact's mobile
// number, creating one with a generated password when absent. Created
// accounts are pre-verified: the password reaches the guest via SMS,
// which proves mobile ownership.
func (s *service) EnsureBookingUser(ctx context.Context, contact types.ContactDetail) (*EnsureResult, error) {
	if contact.Mobile == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "contact mobile required")
	}

	existing, err := s.repo.FindByMobile(ctx, contact.Mobile)
	if err == nil {
		return &EnsureResult{User: existing}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "looking up user by mobile")
	}

	tempPassword, err := security.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(tempPassword, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	user := &models.User{
		Name:         contact.Name,
		LastName:     contact.LastName,
		Mobile:       contact.Mobile,
		Email:        contact.Email,
		PasswordHash: hash,
		Verified:     true,
	}
	if _, err := s.repo.Create(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating booking user")
	}

	return &EnsureResult{User: user, Created: true, TempPassword: tempPassword}, nil
}
