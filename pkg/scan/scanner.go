// Package scan orchestrates a full compliance scan: manifest discovery,
// dependency extraction, license resolution, risk classification, and
// report assembly.
package scan

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/licethq/licet/pkg/compliance"
	"github.com/licethq/licet/pkg/compliance/policy"
	"github.com/licethq/licet/pkg/logger"
	"github.com/licethq/licet/pkg/manifest"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxDepth bounds manifest discovery below the scan target.
const DefaultMaxDepth = 5

// Limits caps how many dependencies and issues a result carries after
// truncation. Zero means unlimited. Aggregate counters always reflect
// the full input, truncated or not.
type Limits struct {
	MaxDependencies int
	MaxIssues       int
}

// Result is a completed scan: the compliance report plus scan metadata.
// The embedded report flattens into the JSON body.
type Result struct {
	ProjectName string    `json:"project_name"`
	ScanDate    time.Time `json:"scan_date"`
	Manifests   []string  `json:"manifests"`
	compliance.Report
}

// Truncate caps the dependency and issue lists in place. Counters such
// as TotalDependencies keep describing the untruncated scan.
func (r *Result) Truncate(limits Limits) {
	if limits.MaxDependencies > 0 && len(r.Dependencies) > limits.MaxDependencies {
		r.Dependencies = r.Dependencies[:limits.MaxDependencies]
	}
	if limits.MaxIssues > 0 && len(r.Issues) > limits.MaxIssues {
		r.Issues = r.Issues[:limits.MaxIssues]
	}
}

// Scanner runs scans against a risk table, an optional license
// resolver, and an optional organization policy.
type Scanner struct {
	table    *compliance.RiskTable
	resolver LicenseResolver
	policy   *policy.Policy
	maxDepth int
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithRiskTable replaces the default risk table.
func WithRiskTable(table *compliance.RiskTable) Option {
	return func(s *Scanner) { s.table = table }
}

// WithResolver supplies a license resolver for facts whose manifest
// declares no license.
func WithResolver(resolver LicenseResolver) Option {
	return func(s *Scanner) { s.resolver = resolver }
}

// WithPolicy applies an organization policy: its tier overrides adjust
// classification and its forbidden list adds issues.
func WithPolicy(p *policy.Policy) Option {
	return func(s *Scanner) { s.policy = p }
}

// WithMaxDepth bounds how deep below the target manifests are discovered.
func WithMaxDepth(depth int) Option {
	return func(s *Scanner) { s.maxDepth = depth }
}

// New builds a Scanner with the default risk table and discovery depth.
func New(opts ...Option) *Scanner {
	s := &Scanner{
		table:    compliance.DefaultRiskTable(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ScanDirectory scans every known manifest under target and assembles
// a single aggregated result. Manifests parse concurrently; facts keep
// discovery order so repeated scans of the same tree are byte-identical.
func (s *Scanner) ScanDirectory(ctx context.Context, target string) (*Result, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolve scan target: %w", err)
	}

	discoveries, err := manifest.Discover(absTarget, s.maxDepth)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered manifests", logger.Int("count", len(discoveries)), logger.String("target", absTarget))

	parsed := make([][]compliance.DependencyFact, len(discoveries))
	g, ctx := errgroup.WithContext(ctx)
	for i, d := range discoveries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			facts, err := d.Parser.Parse(d.Path)
			if err != nil {
				return fmt.Errorf("parse %s: %w", d.Path, err)
			}
			parsed[i] = facts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var facts []compliance.DependencyFact
	manifests := make([]string, 0, len(discoveries))
	for i, d := range discoveries {
		rel, relErr := filepath.Rel(absTarget, d.Path)
		if relErr != nil {
			rel = d.Path
		}
		manifests = append(manifests, filepath.ToSlash(rel))
		facts = append(facts, parsed[i]...)
	}

	s.resolveLicenses(facts)

	table := s.table
	if s.policy != nil {
		table = s.policy.ApplyOverrides(table)
	}

	classified := compliance.ClassifyAll(facts, table)
	report := compliance.AssembleReport(classified)

	if s.policy != nil {
		extra, err := s.policy.Evaluate(ctx, classified)
		if err != nil {
			return nil, err
		}
		report.Issues = append(report.Issues, extra...)
	}

	return &Result{
		ProjectName: filepath.Base(absTarget),
		ScanDate:    time.Now().UTC(),
		Manifests:   manifests,
		Report:      report,
	}, nil
}

func (s *Scanner) resolveLicenses(facts []compliance.DependencyFact) {
	if s.resolver == nil {
		return
	}
	for i := range facts {
		if facts[i].License != "" {
			continue
		}
		if license, ok := s.resolver.Resolve(facts[i]); ok {
			facts[i].License = license
		}
	}
}
