// Package resolver classifies an inbound path identifier as a profile
// username, a short-link code, or nothing. Classification is a pure lookup
// step: the only side effect is a transient status signal to an injected
// reporter.
package resolver

import (
	"Linkly-Backend/internal/domain"
	"Linkly-Backend/internal/repository"
	"context"
	"strings"

	"go.uber.org/zap"
)

// Outcome is the result class of a resolution.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeUsername
	OutcomeShortCode
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUsername:
		return "username"
	case OutcomeShortCode:
		return "short_code"
	default:
		return "not_found"
	}
}

// Resolution carries the outcome and the matched record, if any.
type Resolution struct {
	Outcome Outcome
	Profile *domain.Profile
	Link    *domain.ShortLink
}

// StatusReporter receives transient progress signals during resolution.
type StatusReporter interface {
	Show(message string)
	Hide()
}

type nopStatus struct{}

func (nopStatus) Show(string) {}
func (nopStatus) Hide()       {}

// NopStatus is a StatusReporter that discards all signals.
var NopStatus StatusReporter = nopStatus{}

// LogStatus reports status transitions to a zap logger at debug level.
type LogStatus struct {
	log *zap.Logger
}

func NewLogStatus(log *zap.Logger) *LogStatus {
	return &LogStatus{log: log}
}

func (s *LogStatus) Show(message string) {
	s.log.Debug("resolution in progress", zap.String("message", message))
}

func (s *LogStatus) Hide() {
	s.log.Debug("resolution finished")
}

// Resolver maps identifiers to profiles or short links.
type Resolver struct {
	storage repository.Storage
	status  StatusReporter
	log     *zap.Logger
}

// New creates a resolver. A nil status reporter is replaced with NopStatus.
func New(storage repository.Storage, status StatusReporter, log *zap.Logger) *Resolver {
	if status == nil {
		status = NopStatus
	}
	return &Resolver{
		storage: storage,
		status:  status,
		log:     log,
	}
}

// likelyShortCode guesses whether an identifier names a short link rather
// than a profile. Short codes are generated without spaces and longer than
// three characters; the guess only orders the lookups, it never decides the
// outcome.
func likelyShortCode(identifier string) bool {
	return len(identifier) > 3 && !strings.Contains(identifier, " ")
}

// Resolve classifies an identifier. Each store is queried at most once; any
// store error counts as a miss for that store and only total exhaustion
// yields OutcomeNotFound.
func (r *Resolver) Resolve(ctx context.Context, identifier string) Resolution {
	if identifier == "" {
		return Resolution{Outcome: OutcomeNotFound}
	}

	likely := likelyShortCode(identifier)

	// The short-link path skips the indicator to avoid flicker on redirects
	if !likely {
		r.status.Show("Loading...")
	}
	defer r.status.Hide()

	if likely {
		if link, err := r.storage.GetShortLink(ctx, identifier); err == nil {
			return Resolution{Outcome: OutcomeShortCode, Link: link}
		} else if err != repository.ErrShortCodeNotFound {
			r.log.Debug("short link lookup failed", zap.String("identifier", identifier), zap.Error(err))
		}
	}

	if profile, err := r.storage.GetProfile(ctx, identifier); err == nil {
		return Resolution{Outcome: OutcomeUsername, Profile: profile}
	} else if err != repository.ErrProfileNotFound {
		r.log.Debug("profile lookup failed", zap.String("identifier", identifier), zap.Error(err))
	}

	if !likely {
		if link, err := r.storage.GetShortLink(ctx, identifier); err == nil {
			return Resolution{Outcome: OutcomeShortCode, Link: link}
		} else if err != repository.ErrShortCodeNotFound {
			r.log.Debug("short link lookup failed", zap.String("identifier", identifier), zap.Error(err))
		}
	}

	return Resolution{Outcome: OutcomeNotFound}
}
