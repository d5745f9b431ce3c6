package template

import (
	"context"
	"fmt"
	"path/filepath"

	starctx "github.com/leapstack-labs/leaplint/internal/starlark"
	"github.com/leapstack-labs/leaplint/pkg/templater"
)

// TemplaterName is the name the starlark templater is configured by.
const TemplaterName = "starlark"

// Templater renders {{ expr }} and {* stmt *} templates with Starlark.
// It is safe for concurrent use; threads are shared through a pool.
type Templater struct {
	dialect string
	pool    *starctx.ThreadPool
}

// NewTemplater creates a templater. dialect is exposed to templates as the
// "dialect" global.
func NewTemplater(dialect string, poolSize int) *Templater {
	return &Templater{dialect: dialect, pool: starctx.NewThreadPool(poolSize)}
}

// Name implements templater.Templater.
func (t *Templater) Name() string { return TemplaterName }

// Render implements templater.Templater.
func (t *Templater) Render(ctx context.Context, source, name string, vars map[string]any) (*templater.TemplatedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dict, err := starctx.VarsToStarlark(vars)
	if err != nil {
		return nil, fmt.Errorf("%s: template variables: %w", name, err)
	}
	ec := starctx.NewContext(dict, t.dialect,
		&starctx.FileInfo{Name: filepath.Base(name), Path: name},
		starctx.WithThreadPool(t.pool),
	)
	return Render(source, name, ec)
}

var _ templater.Templater = (*Templater)(nil)
