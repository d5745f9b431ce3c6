// Package linter lints and fixes files: it renders templates, parses the
// rendered SQL, runs the lint engine and writes fixes back to the source.
//
// Files are independent. LintFiles processes them concurrently, bounded by
// Config.Processes, with no shared mutable state besides the result cache.
package linter

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leaplint/internal/template"
	_ "github.com/leapstack-labs/leaplint/pkg/dialects/all" // register dialects
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/lint"
	_ "github.com/leapstack-labs/leaplint/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/leaplint/pkg/templater"
)

// ErrUnknownTemplater is returned for a templater name that is not built in.
var ErrUnknownTemplater = errors.New("unknown templater")

// DefaultCacheSize is the number of file results kept between runs.
const DefaultCacheSize = 256

// Config configures a Linter.
type Config struct {
	Lint      *lint.Config
	Templater string         // "raw" (default) or "starlark"
	Vars      map[string]any // template variables
	Processes int            // concurrent files; zero means one per CPU
	Fix       bool
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path       string
	Source     string
	Templated  *templater.TemplatedFile
	Violations []lint.Violation
	RuleErrors []*lint.RuleError
	Converged  bool
	Passes     int

	// TemplateErr is set when the file could not be rendered. Nothing else
	// is reported for such a file.
	TemplateErr error

	// FixedSource is the source after fixing. It is only set when fixing.
	FixedSource string
	fixed       bool
}

// Changed reports whether fixing changed the source.
func (r *FileResult) Changed() bool {
	return r.fixed && r.FixedSource != r.Source
}

// Remaining returns the violations left in the file.
func (r *FileResult) Remaining() []lint.Violation {
	var out []lint.Violation
	for _, v := range r.Violations {
		if v.FixStatus != fix.StatusApplied {
			out = append(out, v)
		}
	}
	return out
}

// Linter lints files with one configuration. It is safe for concurrent use.
type Linter struct {
	cfg       Config
	engine    *lint.Engine
	tmpl      templater.Templater
	cache     *lru.Cache[string, *FileResult]
	cacheSize int
	settings  string // fingerprint of everything besides the source that shapes a result
	logger    *slog.Logger
}

// Option configures a Linter.
type Option func(*Linter)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Linter) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithCacheSize sets the number of cached file results. Zero disables the
// cache.
func WithCacheSize(n int) Option {
	return func(l *Linter) { l.cacheSize = n }
}

// New validates cfg and creates a Linter.
func New(cfg Config, opts ...Option) (*Linter, error) {
	if cfg.Lint == nil {
		return nil, fmt.Errorf("%w: no lint configuration", lint.ErrInvalidConfig)
	}
	l := &Linter{
		cfg:       cfg,
		cacheSize: DefaultCacheSize,
		logger:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.cfg.Processes <= 0 {
		l.cfg.Processes = runtime.NumCPU()
	}

	engine, err := lint.NewEngine(cfg.Lint, lint.WithLogger(l.logger))
	if err != nil {
		return nil, err
	}
	l.engine = engine
	l.settings = fingerprint(l.cfg, engine)

	l.tmpl, err = newTemplater(cfg.Templater, engine.Dialect().Name(), l.cfg.Processes)
	if err != nil {
		return nil, err
	}

	if l.cacheSize > 0 {
		l.cache, err = lru.New[string, *FileResult](l.cacheSize)
		if err != nil {
			return nil, fmt.Errorf("result cache: %w", err)
		}
	}
	return l, nil
}

func newTemplater(name, dialect string, pool int) (templater.Templater, error) {
	raw := templater.Raw{}
	switch name {
	case "", raw.Name():
		return raw, nil
	case template.TemplaterName:
		return template.NewTemplater(dialect, pool), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplater, name)
	}
}

// Engine returns the lint engine.
func (l *Linter) Engine() *lint.Engine { return l.engine }

// Templater returns the templater.
func (l *Linter) Templater() templater.Templater { return l.tmpl }

func (l *Linter) cacheKey(path, source string) string {
	sum := sha256.Sum256([]byte(source))
	return fmt.Sprintf("%s\x00%s\x00%s", l.settings, path, hex.EncodeToString(sum[:]))
}

// fingerprint hashes the dialect, rules and their settings, the templater
// and its variables, and the fix mode. fmt prints maps in key order.
func fingerprint(cfg Config, engine *lint.Engine) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%t\x00%s\x00%v\x00", engine.Dialect().Name(), cfg.Fix, cfg.Templater, cfg.Vars)
	for _, r := range engine.Rules() {
		fmt.Fprintf(h, "%s\x00", r.ID)
	}
	fmt.Fprintf(h, "%v\x00%v\x00%d", cfg.Lint.Severity, cfg.Lint.RuleOptions, cfg.Lint.MaxFixPasses)
	return hex.EncodeToString(h.Sum(nil))
}

// LintSource lints (or fixes, when configured) one file's contents.
// Template failures are reported in the result; errors are reserved for
// cancellation and configuration problems.
func (l *Linter) LintSource(ctx context.Context, path, source string) (*FileResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := l.cacheKey(path, source)
	if l.cache != nil {
		if res, ok := l.cache.Get(key); ok {
			l.logger.Debug("cached result", slog.String("file", path))
			return res, nil
		}
	}

	res := &FileResult{Path: path, Source: source}
	tf, err := l.tmpl.Render(ctx, source, path, l.cfg.Vars)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		l.logger.Warn("template failed", slog.String("file", path), slog.String("error", err.Error()))
		res.TemplateErr = err
		return res, nil
	}
	res.Templated = tf

	parsed, err := l.engine.Parser().Parse(tf.Rendered)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var lr *lint.Result
	if l.cfg.Fix {
		lr, err = l.engine.Fix(ctx, parsed.Tree, tf)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res.FixedSource = fix.RenderSource(lr.Tree, tf)
		res.fixed = true
	} else {
		lr = l.engine.Lint(parsed.Tree, tf)
	}
	res.Violations = lr.Violations
	res.RuleErrors = lr.RuleErrors
	res.Converged = lr.Converged
	res.Passes = lr.Passes

	l.logger.Debug("file linted",
		slog.String("file", path),
		slog.String("dialect", l.engine.Dialect().Name()),
		slog.Int("violations", len(res.Violations)))
	if !res.Converged {
		l.logger.Warn("did not converge", slog.String("file", path), slog.Int("pass", res.Passes))
	}

	if l.cache != nil {
		l.cache.Add(key, res)
	}
	return res, nil
}

// LintFiles reads and lints files concurrently. Results are in the order
// of paths. The first read error cancels the remaining files.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.cfg.Processes)
	for i, path := range paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}
			res, err := l.LintSource(ctx, path, string(data))
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// WriteFixes writes changed sources back to their files and returns the
// number of files written.
func WriteFixes(results []*FileResult) (int, error) {
	n := 0
	for _, res := range results {
		if !res.Changed() {
			continue
		}
		info, err := os.Stat(res.Path)
		if err != nil {
			return n, fmt.Errorf("write fixes: %w", err)
		}
		if err := os.WriteFile(res.Path, []byte(res.FixedSource), info.Mode().Perm()); err != nil {
			return n, fmt.Errorf("write fixes: %w", err)
		}
		n++
	}
	return n, nil
}
