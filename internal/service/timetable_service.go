package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
)

type timetableCatalogLoader interface {
	Load(ctx context.Context) (*repository.TimetableCatalog, error)
}

// TimetableServiceConfig governs generator behaviour.
type TimetableServiceConfig struct {
	CatalogFromDB     bool
	ProposalTTL       time.Duration
	StrictSolveBudget time.Duration
	HybridSolveBudget time.Duration
}

// TimetableService validates and orchestrates a schedule-generation
// request: it optionally hydrates the catalog from Postgres, invokes the
// core engine, caches the response in Redis, records Prometheus metrics,
// and keeps an in-memory, TTL-bounded proposal store for preview/export —
// grounded on ScheduleGeneratorService's constructor shape, proposalStore,
// and logger/validator defaults.
type TimetableService struct {
	catalog   timetableCatalogLoader
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	cfg       TimetableServiceConfig
	store     *timetableProposalStore
}

// NewTimetableService wires timetable dependencies.
func NewTimetableService(
	catalog timetableCatalogLoader,
	cache *CacheService,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg TimetableServiceConfig,
) *TimetableService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.StrictSolveBudget <= 0 {
		cfg.StrictSolveBudget = 60 * time.Second
	}
	if cfg.HybridSolveBudget <= 0 {
		cfg.HybridSolveBudget = 5 * time.Second
	}
	return &TimetableService{
		catalog:   catalog,
		cache:     cache,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		store:     newTimetableProposalStore(cfg.ProposalTTL),
	}
}

// Generate validates the request, hydrates any missing catalog entities
// from Postgres when configured to, runs the core engine in the given
// mode, and returns a wire-shaped response keyed by a fresh proposal id.
// A request whose response is still in the Redis cache gets that cached
// response back, carrying the proposal id it was first stored with.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest, mode timetable.Mode) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable generation payload")
	}

	coreReq, err := s.buildCoreRequest(ctx, req, mode)
	if err != nil {
		return nil, err
	}

	cacheKey := s.cacheKey(coreReq)
	var cached dto.GenerateTimetableResponse
	if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	budget := s.cfg.StrictSolveBudget
	if mode == timetable.ModeHybrid {
		budget = s.cfg.HybridSolveBudget
	}

	start := time.Now()
	result := timetable.Generate(coreReq, budget)
	duration := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveTimetableSolve(string(result.Status), duration)
		if result.Status == timetable.StatusOK {
			s.metrics.RecordTimetableScheduled(result.ScheduledCount)
		} else {
			s.metrics.RecordTimetableInfeasible()
		}
	}
	s.logger.Info("timetable solve completed",
		zap.String("status", string(result.Status)),
		zap.Int("scheduledCount", result.ScheduledCount),
		zap.Duration("duration", duration),
	)

	resp := toTimetableResponse(result)
	resp.ProposalID = uuid.NewString()
	s.store.Save(resp.ProposalID, resp)

	if err := s.cache.Set(ctx, cacheKey, resp, s.cfg.ProposalTTL); err != nil {
		s.logger.Warn("failed to cache timetable proposal", zap.Error(err))
	}

	return &resp, nil
}

// GetProposal returns a previously generated proposal by id, if it hasn't
// expired.
func (s *TimetableService) GetProposal(id string) (*dto.GenerateTimetableResponse, error) {
	resp, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable proposal not found or expired")
	}
	return &resp, nil
}

// Catalog returns the classroom/batch/subject/faculty catalog from
// Postgres, for clients that want to build a request incrementally.
func (s *TimetableService) Catalog(ctx context.Context) (*dto.TimetableCatalogResponse, error) {
	if s.catalog == nil {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "timetable catalog is not backed by a database in this deployment")
	}
	cat, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable catalog")
	}
	return toCatalogResponse(cat), nil
}

func (s *TimetableService) buildCoreRequest(ctx context.Context, req dto.GenerateTimetableRequest, mode timetable.Mode) (timetable.ScheduleRequest, error) {
	coreReq := fromGenerateRequest(req)
	coreReq.Mode = mode

	needsCatalog := len(coreReq.Classrooms) == 0 || len(coreReq.Batches) == 0 ||
		len(coreReq.Subjects) == 0 || len(coreReq.Faculties) == 0
	if needsCatalog && s.cfg.CatalogFromDB && s.catalog != nil {
		cat, err := s.catalog.Load(ctx)
		if err != nil {
			return timetable.ScheduleRequest{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable catalog")
		}
		mergeCatalog(&coreReq, cat)
	}
	return coreReq, nil
}

func (s *TimetableService) cacheKey(req timetable.ScheduleRequest) string {
	payload, _ := json.Marshal(req)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("timetable:solve:%s", hex.EncodeToString(sum[:]))
}

// timetableProposal pairs a stored response with the time it was saved, so
// the store can expire it after its TTL.
type timetableProposal struct {
	response  dto.GenerateTimetableResponse
	createdAt time.Time
}

// timetableProposalStore is a TTL-bounded in-memory cache of solved
// proposals, grounded on schedule_generator_service.go's proposalStore.
type timetableProposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]timetableProposal
}

func newTimetableProposalStore(ttl time.Duration) *timetableProposalStore {
	return &timetableProposalStore{ttl: ttl, items: make(map[string]timetableProposal)}
}

func (s *timetableProposalStore) Save(id string, resp dto.GenerateTimetableResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[id] = timetableProposal{response: resp, createdAt: time.Now()}
}

func (s *timetableProposalStore) Get(id string) (dto.GenerateTimetableResponse, bool) {
	s.mu.RLock()
	p, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return dto.GenerateTimetableResponse{}, false
	}
	if time.Since(p.createdAt) > s.ttl {
		s.mu.Lock()
		delete(s.items, id)
		s.mu.Unlock()
		return dto.GenerateTimetableResponse{}, false
	}
	return p.response, true
}
