package lint

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/leapstack-labs/leaplint/pkg/core"
	"github.com/leapstack-labs/leaplint/pkg/dialect"
	"github.com/leapstack-labs/leaplint/pkg/fix"
	"github.com/leapstack-labs/leaplint/pkg/parser"
	"github.com/leapstack-labs/leaplint/pkg/segment"
	"github.com/leapstack-labs/leaplint/pkg/templater"
	"github.com/leapstack-labs/leaplint/pkg/token"
)

// Parse anomaly pseudo rule.
const (
	ParseRuleID   = "PRS"
	ParseRuleName = "parse"
)

var parseRule = RuleDef{ID: ParseRuleID, Name: ParseRuleName, Severity: core.SeverityError}

// Engine runs a fixed set of rules with one dialect. It holds no per-file
// state and is safe for concurrent use.
type Engine struct {
	cfg      *Config
	settings ruleSettings
	dialect  *dialect.Resolved
	parser   *parser.Parser
	rules    []RuleDef
	reg      *Registry
	logger   *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRegistry selects rules from reg instead of the global registry.
func WithRegistry(reg *Registry) EngineOption {
	return func(e *Engine) {
		if reg != nil {
			e.reg = reg
		}
	}
}

// NewEngine validates cfg and builds an engine. Unknown dialects and rules
// are configuration errors.
func NewEngine(cfg *Config, opts ...EngineOption) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", ErrInvalidConfig)
	}
	e := &Engine{
		cfg:    cfg,
		reg:    globalRegistry,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}

	d, rules, settings, err := e.cfg.resolve(e.reg)
	if err != nil {
		return nil, err
	}
	e.settings = settings
	e.dialect = d
	e.rules = rules
	e.parser = parser.NewWithDialect(d)
	return e, nil
}

// Dialect returns the engine's dialect.
func (e *Engine) Dialect() *dialect.Resolved { return e.dialect }

// Parser returns a parser for the engine's dialect.
func (e *Engine) Parser() *parser.Parser { return e.parser }

// Rules returns the rules the engine runs, in order.
func (e *Engine) Rules() []RuleDef { return slices.Clone(e.rules) }

// Result is the outcome of linting or fixing one tree.
type Result struct {
	// Tree is the final tree: the input for Lint, the fixed tree for Fix.
	Tree *segment.Segment

	// Violations are ordered by position, then rule ID. For Fix they
	// include the violations whose fixes were applied.
	Violations []Violation

	RuleErrors []*RuleError

	// Converged is false when Fix stopped at the pass limit with fixable
	// violations left.
	Converged bool
	Passes    int
}

// Fixed returns the violations whose fixes were applied.
func (r *Result) Fixed() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.FixStatus == fix.StatusApplied {
			out = append(out, v)
		}
	}
	return out
}

// Remaining returns the violations still present in the final tree.
func (r *Result) Remaining() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.FixStatus != fix.StatusApplied {
			out = append(out, v)
		}
	}
	return out
}

// Lint runs every rule once over tree. tf may be nil for untemplated text.
func (e *Engine) Lint(tree *segment.Segment, tf *templater.TemplatedFile) *Result {
	vs, errs := e.run(tree, tf)
	for i := range vs {
		if vs[i].Fix != nil {
			vs[i].FixStatus = fix.StatusFixable
		}
	}
	sortViolations(vs)
	return &Result{Tree: tree, Violations: vs, RuleErrors: errs, Converged: true}
}

// Fix lints and applies fixes until no fixable violation remains or the
// pass limit is reached. Each pass applies every non-conflicting fix as
// one batch; conflicting fixes are retried on the next pass. A batch that
// increases the number of unparsable segments is discarded and its fixes
// are not retried.
func (e *Engine) Fix(ctx context.Context, tree *segment.Segment, tf *templater.TemplatedFile) (*Result, error) {
	res := &Result{}
	blocked := make(map[string]fix.Status)
	baseline := anomalies(tree)

	var (
		applied []Violation
		vs      []Violation
		errs    []*RuleError
	)
	for pass := 1; ; pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vs, errs = e.run(tree, tf)

		var (
			fixes  []*fix.Fix
			owners []int
		)
		for i, v := range vs {
			if v.Fix == nil {
				continue
			}
			if _, ok := blocked[v.key()]; ok {
				continue
			}
			fixes = append(fixes, v.Fix)
			owners = append(owners, i)
		}
		if len(fixes) == 0 {
			res.Converged = true
			break
		}
		if pass > e.cfg.maxPasses() {
			e.logger.Warn("did not converge",
				slog.String("dialect", e.dialect.Name()),
				slog.Int("passes", e.cfg.maxPasses()),
				slog.Int("fixable", len(fixes)))
			break
		}

		next, statuses, err := fix.Apply(tree, fixes, tf)
		if err != nil {
			return nil, err
		}
		var batch []Violation
		for j, st := range statuses {
			v := vs[owners[j]]
			switch st {
			case fix.StatusApplied:
				v.FixStatus = st
				batch = append(batch, v)
			case fix.StatusConflict:
				// retried on the next pass
			default:
				blocked[v.key()] = st
			}
		}
		if len(batch) == 0 {
			continue
		}

		reparsed, err := e.parser.Parse(segment.Serialize(next))
		if err != nil {
			return nil, err
		}
		n := anomalies(reparsed.Tree)
		if n > baseline {
			for _, v := range batch {
				blocked[v.key()] = fix.StatusBreaksParse
			}
			e.logger.Warn("fixes discarded, result does not parse",
				slog.String("dialect", e.dialect.Name()),
				slog.Int("pass", pass),
				slog.Int("fixes", len(batch)))
			continue
		}
		baseline = n

		e.logger.Debug("fix pass applied",
			slog.String("dialect", e.dialect.Name()),
			slog.Int("pass", pass),
			slog.Int("applied", len(batch)))
		res.Passes = pass
		tree = next
		applied = append(applied, batch...)
	}

	for i := range vs {
		if vs[i].Fix == nil {
			continue
		}
		if st, ok := blocked[vs[i].key()]; ok {
			vs[i].FixStatus = st
		} else {
			vs[i].FixStatus = fix.StatusFixable
		}
	}
	res.Tree = tree
	res.Violations = append(applied, vs...)
	res.RuleErrors = errs
	sortViolations(res.Violations)
	return res, nil
}

// anomalies counts unparsable and unlexable segments.
func anomalies(tree *segment.Segment) int {
	return segment.Count(tree, segment.TypeUnparsable, segment.TypeUnlexable)
}

// run executes every rule over tree and resolves violation positions.
func (e *Engine) run(tree *segment.Segment, tf *templater.TemplatedFile) ([]Violation, []*RuleError) {
	var (
		out  []Violation
		errs []*RuleError
	)

	for _, v := range segment.FindAll(tree, segment.TypeUnparsable) {
		out = append(out, Violation{
			RuleID:   parseRule.ID,
			RuleName: parseRule.Name,
			Severity: parseRule.Severity,
			Message:  fmt.Sprintf("unable to parse %q", clip(v.Segment.Raw(), 40)),
			Anchor:   v.Segment,
		})
	}
	parsed := len(out)

	rules := make([]RuleDef, 0, len(out)+len(e.rules))
	for range out {
		rules = append(rules, parseRule)
	}
	for _, r := range e.rules {
		rc := &RuleContext{
			Tree:      tree,
			Dialect:   e.dialect,
			Templated: tf,
			Options:   e.settings.optionsFor(r),
		}
		found, err := check(r, rc)
		if err != nil {
			e.logger.Error("rule failed",
				slog.String("dialect", e.dialect.Name()),
				slog.String("rule", r.ID),
				slog.String("error", err.Error()))
			errs = append(errs, err)
			continue
		}
		for _, v := range found {
			v.RuleID = r.ID
			v.RuleName = r.Name
			v.Severity = e.settings.severityOf(r)
			out = append(out, v)
			rules = append(rules, r)
		}
	}
	if len(out) == 0 {
		return nil, errs
	}

	rendered := segment.Serialize(tree)
	lines := token.NewLineIndex(rendered)
	locate(tree, tf, rendered, lines, out)

	sup := newSuppressor(tree, lines)
	kept := out[:0]
	for i, v := range out {
		if i >= parsed && sup.suppressed(rules[i], v.Pos.Line) {
			continue
		}
		kept = append(kept, v)
	}
	return kept, errs
}

// locate fills in ranges and positions of violations with one walk.
func locate(tree *segment.Segment, tf *templater.TemplatedFile, rendered string, lines *token.LineIndex, vs []Violation) {
	anchors := make(map[*segment.Segment]token.Range, len(vs))
	for _, v := range vs {
		if v.Anchor != nil {
			anchors[v.Anchor] = token.Range{Start: -1}
		}
	}
	segment.Walk(tree, func(visit segment.Visit) bool {
		if r, ok := anchors[visit.Segment]; ok && r.Start < 0 {
			anchors[visit.Segment] = visit.Range()
		}
		return true
	})

	var srcLines *token.LineIndex
	if tf != nil {
		srcLines = token.NewLineIndex(tf.Source)
	}
	for i := range vs {
		if r, ok := anchors[vs[i].Anchor]; ok && r.Start >= 0 {
			vs[i].Range = r
		}
		vs[i].Pos = lines.Position(vs[i].Range.Start)
		vs[i].SourceRange, vs[i].SourcePos = vs[i].Range, vs[i].Pos
		switch {
		case srcLines == nil:
			continue
		case tf.Rendered == rendered:
			vs[i].SourceRange = tf.SourceRange(vs[i].Range)
		case vs[i].Anchor != nil:
			// the tree was fixed; origins still point into the rendered text
			vs[i].SourceRange = tf.SourceRange(vs[i].Anchor.Origin())
		default:
			continue
		}
		vs[i].SourcePos = srcLines.Position(vs[i].SourceRange.Start)
	}
}

// check runs one rule, turning a panic into a RuleError.
func check(r RuleDef, rc *RuleContext) (vs []Violation, err *RuleError) {
	defer func() {
		if p := recover(); p != nil {
			vs = nil
			err = &RuleError{RuleID: r.ID, Err: fmt.Errorf("panic: %v", p)}
		}
	}()
	if r.Check == nil {
		return nil, &RuleError{RuleID: r.ID, Err: errors.New("no check function")}
	}
	return r.Check(rc), nil
}

func sortViolations(vs []Violation) {
	slices.SortStableFunc(vs, func(a, b Violation) int {
		return cmp.Or(
			cmp.Compare(a.Range.Start, b.Range.Start),
			cmp.Compare(a.RuleID, b.RuleID),
		)
	})
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
