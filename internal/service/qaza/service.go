// Package qaza estimates lifetime missed prayers and saves an estimate to
// the user's profile.
package qaza

import (
	"context"
	"errors"
	"log/slog"

	"github.com/heartmarshall/qaza-tracker/internal/domain"
)

// qazaGateway is the part of the remote ledger this service needs.
type qazaGateway interface {
	SetLifetimeQazaCount(ctx context.Context, identifier string, count int) error
}

// Service wraps Calculate with input validation and persistence.
type Service struct {
	log *slog.Logger
	gw  qazaGateway
}

// NewService creates a qaza service.
func NewService(logger *slog.Logger, gw qazaGateway) *Service {
	return &Service{
		log: logger.With("service", "qaza"),
		gw:  gw,
	}
}

// Estimate validates input and computes an estimate. No I/O.
func (s *Service) Estimate(input EstimateInput) (domain.QazaEstimate, error) {
	if err := input.Validate(); err != nil {
		return domain.QazaEstimate{}, err
	}

	avg := input.avgPeriodDays()
	total, err := Calculate(input.AgeAtObligationStart, input.CurrentAge, input.Gender, avg)
	if err != nil {
		return domain.QazaEstimate{}, err
	}

	return domain.QazaEstimate{
		AgeAtObligationStart:  input.AgeAtObligationStart,
		CurrentAge:            input.CurrentAge,
		Gender:                input.Gender,
		AvgPeriodDaysPerMonth: avg,
		ComputedTotal:         total,
	}, nil
}

// SaveEstimate overwrites the profile's lifetime count with total. It
// reports false when the remote could not store it.
func (s *Service) SaveEstimate(ctx context.Context, identifier string, total int) (bool, error) {
	id := domain.NormalizeIdentifier(identifier)

	var errs []domain.FieldError
	if id == "" {
		errs = append(errs, domain.FieldError{Field: "identifier", Message: "required"})
	}
	if total < 0 {
		errs = append(errs, domain.FieldError{Field: "total", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return false, domain.NewValidationErrors(errs)
	}

	if err := s.gw.SetLifetimeQazaCount(ctx, id, total); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return false, err
		}
		s.log.ErrorContext(ctx, "save qaza estimate failed",
			slog.String("identifier", id),
			slog.Int("total", total),
			slog.String("error", err.Error()),
		)
		return false, nil
	}

	s.log.InfoContext(ctx, "qaza estimate saved",
		slog.String("identifier", id),
		slog.Int("total", total),
	)
	return true, nil
}
