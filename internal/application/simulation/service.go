// Package simulation orchestrates a full landed-cost run: exchange-rate
// resolution, benefit aggregation, memorial derivation, persistence and
// event publication.
package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/domain/costing"
	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	domain "github.com/OLVCORE/smartimport/internal/domain/simulation"
	"github.com/OLVCORE/smartimport/internal/infrastructure/messaging/kafka"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/prometheus"
	apperrors "github.com/OLVCORE/smartimport/pkg/errors"
)

// Rate warnings surfaced on degraded runs.
const (
	warnRateUnavailable   = "exchange rate unavailable in the fallback window; amounts kept in the original currency"
	warnEconomyExceeds    = "estimated economy exceeds the normal total; review the selected benefits"
)

// EventPublisher is the messaging dependency; nil-able for runs without a
// broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, payload interface{}) error
}

// Service runs simulations end to end.
type Service struct {
	resolver   *exchange.Resolver
	aggregator *benefit.Aggregator
	calculator *costing.Calculator
	repo       domain.Repository
	publisher  EventPublisher
	metrics    *prometheus.Metrics
	logger     logging.Logger
}

// ServiceOption customises a Service.
type ServiceOption func(*Service)

// WithRepository enables persistence of completed runs.
func WithRepository(repo domain.Repository) ServiceOption {
	return func(s *Service) { s.repo = repo }
}

// WithPublisher enables event publication.
func WithPublisher(p EventPublisher) ServiceOption {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics enables operational metrics.
func WithMetrics(m *prometheus.Metrics) ServiceOption {
	return func(s *Service) { s.metrics = m }
}

// NewService wires the orchestrator over the domain components.
func NewService(resolver *exchange.Resolver, aggregator *benefit.Aggregator, calculator *costing.Calculator, logger logging.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	s := &Service{
		resolver:   resolver,
		aggregator: aggregator,
		calculator: calculator,
		logger:     logger.Named("simulation"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one simulation.  Persistence and event failures degrade to
// warnings; only validation and computation failures abort the run.
func (s *Service) Run(ctx context.Context, req domain.Request) (*domain.Simulation, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	started := time.Now()

	sim := &domain.Simulation{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		Request:   req,
	}

	quote, err := s.resolver.Resolve(ctx, req.Currency, req.OperationDate)
	if err != nil {
		return nil, err
	}
	sim.Quote = quote
	s.observeResolution(quote)

	// Monetary inputs are converted to the local currency when a rate is
	// available; an exhausted window degrades to unconverted amounts.
	rate := decimal.NewFromInt(1)
	if quote.Found() {
		rate = *quote.Rate
	} else {
		sim.Warnings = append(sim.Warnings, warnRateUnavailable)
	}

	unitValue := req.UnitValue.Mul(rate)
	freight := req.Freight.Mul(rate)
	insurance := req.Insurance.Mul(rate)
	fob := req.Quantity.Mul(unitValue)

	economy, err := s.aggregator.Compute(req.IncentiveKeys, req.RegimeKeys, req.RegionCode, fob)
	if err != nil {
		return nil, err
	}
	sim.Economy = economy

	memorial, err := s.calculator.Compute(costing.Input{
		Quantity:         req.Quantity,
		UnitValue:        unitValue,
		Freight:          freight,
		Insurance:        insurance,
		Duties:           req.Duties,
		DeclaredExpenses: req.DeclaredExpenses,
		SelectedExpenses: req.SelectedExpenses,
		LicenseCost:      req.LicenseCost,
		Economy:          economy,
	})
	if err != nil {
		return nil, err
	}
	sim.Result = memorial
	if memorial.EconomyExceedsCost {
		sim.Warnings = append(sim.Warnings, warnEconomyExceeds)
	}

	s.persist(ctx, sim)
	s.announce(ctx, sim)

	if s.metrics != nil {
		s.metrics.SimulationsTotal.Inc()
		s.metrics.SimulationDuration.Observe(time.Since(started).Seconds())
	}
	s.logger.Info("simulation completed",
		logging.String("id", sim.ID.String()),
		logging.String("currency", req.Currency),
		logging.String("normal", memorial.Normal.String()),
		logging.String("with_benefits", memorial.WithBenefits.String()),
	)
	return sim, nil
}

// errStoreUnavailable is returned by read/delete operations when the service
// runs without a repository (persistence is optional at deploy time).
func errStoreUnavailable() error {
	return apperrors.New(apperrors.ErrCodeSimulationStoreUnavailable,
		"simulation store is not configured")
}

// Get loads one persisted simulation.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Simulation, error) {
	if s.repo == nil {
		return nil, errStoreUnavailable()
	}
	return s.repo.GetByID(ctx, id)
}

// List returns the most recent persisted simulations.
func (s *Service) List(ctx context.Context, limit int) ([]*domain.Simulation, error) {
	if s.repo == nil {
		return nil, errStoreUnavailable()
	}
	return s.repo.ListRecent(ctx, limit)
}

// Delete removes a persisted simulation and announces the removal.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if s.repo == nil {
		return errStoreUnavailable()
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, kafka.TopicSimulationDeleted, id.String(), map[string]string{"simulation_id": id.String()}); err != nil {
			s.logger.Warn("simulation deletion event failed", logging.Err(err))
		}
	}
	return nil
}

func (s *Service) persist(ctx context.Context, sim *domain.Simulation) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, sim); err != nil {
		s.logger.Warn("simulation persistence failed, continuing",
			logging.String("id", sim.ID.String()), logging.Err(err))
		sim.Warnings = append(sim.Warnings, "simulation could not be persisted")
	}
}

func (s *Service) announce(ctx context.Context, sim *domain.Simulation) {
	if s.publisher == nil {
		return
	}
	payload := kafka.SimulationCompletedPayload{
		SimulationID:   sim.ID.String(),
		Name:           sim.Request.Name,
		Currency:       sim.Request.Currency,
		NormalTotal:    sim.Result.Normal.String(),
		BenefitedTotal: sim.Result.WithBenefits.String(),
		EconomyAmount:  sim.Result.EconomyAmount.String(),
		CompletedAt:    sim.CreatedAt,
	}
	if err := s.publisher.Publish(ctx, kafka.TopicSimulationCompleted, sim.ID.String(), payload); err != nil {
		s.logger.Warn("simulation completion event failed, continuing",
			logging.String("id", sim.ID.String()), logging.Err(err))
		return
	}
	if s.metrics != nil {
		s.metrics.EventsPublishedTotal.WithLabelValues(kafka.TopicSimulationCompleted).Inc()
	}
}

func (s *Service) observeResolution(quote *exchange.Quote) {
	if s.metrics == nil {
		return
	}
	s.metrics.ExchangeResolutionsTotal.WithLabelValues(string(quote.Status)).Inc()
	if quote.Attempts > 0 {
		s.metrics.ExchangeAttempts.Observe(float64(quote.Attempts))
	}
}

//Personal.AI order the ending
