package bomtree

import (
	"context"
	"log/slog"
	"time"

	"github.com/partstack/bomtree/internal/logging"
	"github.com/partstack/bomtree/pkg/builder"
	"github.com/partstack/bomtree/pkg/domain"
	"github.com/partstack/bomtree/pkg/ports"
)

// Version is the library version reported by the CLI and the adapters.
var Version = "0.3.0"

// Service is the high-level entry point for the bomtree library.
// It wraps the tree builder and a part repository behind a simplified API
// for adapters (HTTP, MCP, CLI) to consume.
type Service struct {
	repo     ports.PartRepository
	builder  *builder.Builder
	defaults builder.Options
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithLogger sets a custom structured logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDefaults overrides the default build options used by BuildTreeDefault
// and as the baseline for request-supplied parameters.
func WithDefaults(opts builder.Options) Option {
	return func(s *Service) {
		s.defaults = opts
	}
}

// New creates a Service on top of the given part repository.
func New(repo ports.PartRepository, opts ...Option) *Service {
	svc := &Service{
		repo:     repo,
		builder:  builder.New(repo),
		defaults: builder.DefaultOptions(),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Defaults returns the service's baseline build options.
func (s *Service) Defaults() builder.Options {
	return s.defaults
}

// BuildTree constructs the BOM tree rooted at partID with the given options.
// It returns domain.ErrPartNotFound when the id does not resolve.
func (s *Service) BuildTree(ctx context.Context, partID int, opts builder.Options) (*domain.TreeNode, error) {
	start := time.Now()
	tree, err := s.builder.Build(ctx, partID, opts)
	if err != nil {
		return nil, err
	}

	metrics := domain.ComputeMetrics(tree)
	s.logger.Debug("tree built",
		"part_id", partID,
		"max_depth", metrics.MaxDepth,
		"total_nodes", metrics.TotalNodes,
		"duration", time.Since(start),
	)
	return tree, nil
}

// BuildTreeDefault constructs the tree with the service defaults.
func (s *Service) BuildTreeDefault(ctx context.Context, partID int) (*domain.TreeNode, error) {
	return s.BuildTree(ctx, partID, s.defaults)
}

// GetPart resolves a single part.
func (s *Service) GetPart(ctx context.Context, id int) (domain.Part, error) {
	return s.repo.GetPart(ctx, id)
}

// ListAssemblies returns assembly parts ordered by name.
func (s *Service) ListAssemblies(ctx context.Context, limit int) ([]domain.Part, error) {
	return s.repo.ListAssemblies(ctx, limit)
}
