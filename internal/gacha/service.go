package gacha

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/shindan/internal/profile"
)

// ErrCannotSpin is returned when the user has no completed diagnosis or too
// few points to pay for a draw.
var ErrCannotSpin = errors.New("cannot spin")

// ErrEmptyCatalog means there is nothing to draw.
var ErrEmptyCatalog = errors.New("reward catalog is empty")

// SpinResult is the outcome of one paid draw.
type SpinResult struct {
	Definition Definition
	Reward     profile.Reward

	// Points is the balance after the draw's cost and credit.
	Points int
}

// Service runs reward draws against the user's record.
type Service struct {
	profiles *profile.Manager
	catalog  []Definition
	log      *zap.Logger

	mu  sync.Mutex
	src Source
}

// Option customizes a Service.
type Option func(*Service)

// WithSource makes draws use src instead of the global generator.
func WithSource(src Source) Option {
	return func(s *Service) { s.src = src }
}

// WithCatalog replaces the built-in reward definitions.
func WithCatalog(defs []Definition) Option {
	return func(s *Service) { s.catalog = defs }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *Service) { s.log = log }
}

// NewService creates a Service drawing from the built-in catalog.
func NewService(profiles *profile.Manager, opts ...Option) *Service {
	s := &Service{
		profiles: profiles,
		catalog:  Catalog(),
		log:      zap.NewNop(),
		src:      globalSource{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalog returns the definitions this service draws from.
func (s *Service) Catalog() []Definition {
	return s.catalog
}

// Spin pays SpinCost points, draws a reward, stores it and credits the
// reward's points. The steps are separate writes; a failure part way leaves
// the earlier ones in place.
func (s *Service) Spin(ctx context.Context) (*SpinResult, error) {
	if len(s.catalog) == 0 {
		return nil, ErrEmptyCatalog
	}
	ud, err := s.profiles.Read(ctx)
	if err != nil {
		return nil, err
	}
	if !profile.CanSpin(ud) {
		return nil, fmt.Errorf("%w: need %d points and at least one completed diagnosis (have %d points, %d diagnoses)",
			ErrCannotSpin, profile.SpinCost, ud.Points, len(ud.CompletedDiagnoses))
	}

	points := ud.Points - profile.SpinCost
	if err := s.profiles.UpdatePoints(ctx, points); err != nil {
		return nil, fmt.Errorf("pay for spin: %w", err)
	}

	s.mu.Lock()
	def, _ := Draw(s.catalog, s.src)
	s.mu.Unlock()

	reward, err := s.profiles.AddReward(ctx, profile.Reward{
		ID:          def.ID,
		Type:        def.Type,
		Title:       def.Title,
		Description: def.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("store reward: %w", err)
	}

	points += def.Points
	if err := s.profiles.UpdatePoints(ctx, points); err != nil {
		return nil, fmt.Errorf("credit reward points: %w", err)
	}

	s.log.Info("reward drawn",
		zap.String("reward", def.ID),
		zap.String("rarity", string(def.Rarity)),
		zap.Int("points", points),
	)
	return &SpinResult{Definition: def, Reward: reward, Points: points}, nil
}
