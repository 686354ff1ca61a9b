// Package identity looks up and registers profiles on the remote ledger and
// manages sign-in of the local session.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// ErrRegistrationRequired is returned by SignIn when the identifier is
// unknown and no registration details were supplied.
var ErrRegistrationRequired = errors.New("profile not found: name, age and gender are required to register")

// profileGateway is the part of the remote ledger this service needs.
type profileGateway interface {
	GetProfile(ctx context.Context, identifier string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, p domain.Profile) error
}

// sessionStore is the local session slot.
type sessionStore interface {
	Commit(ctx context.Context, p domain.Profile) error
	Clear(ctx context.Context) error
}

// Service resolves and registers identities.
type Service struct {
	log            *slog.Logger
	profiles       profileGateway
	sessions       sessionStore
	requiredDomain string
}

// NewService creates an identity service. requiredDomain may be empty.
func NewService(logger *slog.Logger, profiles profileGateway, sessions sessionStore, requiredDomain string) *Service {
	return &Service{
		log:            logger.With("service", "identity"),
		profiles:       profiles,
		sessions:       sessions,
		requiredDomain: requiredDomain,
	}
}

// Resolve returns the profile registered under identifier, or nil when
// there is none. Remote failures are logged and reported as nil too;
// only an invalid identifier is an error.
func (s *Service) Resolve(ctx context.Context, identifier string) (*domain.Profile, error) {
	id := domain.NormalizeIdentifier(identifier)
	if err := domain.ValidateIdentifier(id, s.requiredDomain); err != nil {
		return nil, err
	}

	p, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil
		}
		s.log.ErrorContext(ctx, "resolve identity failed",
			slog.String("identifier", id),
			slog.String("error", err.Error()),
		)
		return nil, nil
	}
	return p, nil
}

// Register creates a remote profile. It reports false when the remote
// could not be reached. Callers are expected to Resolve first; the pair is
// not atomic, so a concurrent registration surfaces as
// domain.ErrDuplicateIdentity.
func (s *Service) Register(ctx context.Context, input RegisterInput) (bool, error) {
	if err := s.validateRegister(input); err != nil {
		return false, err
	}

	p := input.profile()
	if err := s.profiles.CreateProfile(ctx, p); err != nil {
		if errors.Is(err, domain.ErrDuplicateIdentity) {
			return false, fmt.Errorf("identity.Register: %w", err)
		}
		if errors.Is(err, domain.ErrValidation) {
			return false, fmt.Errorf("identity.Register: %w", err)
		}
		s.log.ErrorContext(ctx, "register identity failed",
			slog.String("identifier", p.Identifier),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	s.log.InfoContext(ctx, "identity registered", slog.String("identifier", p.Identifier))
	return true, nil
}

// SignInResult is the outcome of SignIn.
type SignInResult struct {
	Profile domain.Profile
	Created bool
}

// SignIn resolves the identifier, registers it when unknown and makes the
// profile the active session.
func (s *Service) SignIn(ctx context.Context, input SignInInput) (*SignInResult, error) {
	existing, err := s.Resolve(ctx, input.Identifier)
	if err != nil {
		return nil, err
	}

	result := &SignInResult{}
	if existing != nil {
		result.Profile = *existing
	} else {
		if !input.hasRegistration() {
			return nil, ErrRegistrationRequired
		}
		reg := input.registerInput()
		ok, err := s.Register(ctx, reg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("identity.SignIn: %w", domain.ErrRemoteUnavailable)
		}
		result.Profile = reg.profile()
		result.Created = true
	}

	if err := s.sessions.Commit(ctx, result.Profile); err != nil {
		return result, fmt.Errorf("identity.SignIn: %w", err)
	}
	return result, nil
}

// SignOut clears the active session.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.sessions.Clear(ctx); err != nil {
		return fmt.Errorf("identity.SignOut: %w", err)
	}
	return nil
}

func (s *Service) validateRegister(input RegisterInput) error {
	var errs []domain.FieldError

	id := domain.NormalizeIdentifier(input.Identifier)
	if err := domain.ValidateIdentifier(id, s.requiredDomain); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}
	if err := input.Validate(); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
