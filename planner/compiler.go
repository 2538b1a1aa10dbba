package planner

import (
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/leanbuffer/errors"
)

// Compiler assembles plans and caches them by record description.
// It is safe for concurrent use.
type Compiler struct {
	cache sync.Map // cacheKey -> *Plan
}

type cacheKey string

func keyOf(rec Record) cacheKey {
	var b strings.Builder
	b.WriteString(rec.Name)
	for _, f := range rec.Fields {
		b.WriteByte(0)
		b.WriteString(f.Name)
		b.WriteByte(0)
		b.WriteString(f.Type)
	}
	return cacheKey(b.String())
}

func NewCompiler() *Compiler {
	return &Compiler{}
}

// Compile returns the plan for rec, assembling it on first use.
func (c *Compiler) Compile(rec Record) (*Plan, error) {
	key := keyOf(rec)
	if cached, ok := c.cache.Load(key); ok {
		return cached.(*Plan), nil
	}

	p, err := Assemble(rec)
	if err != nil {
		Logger().Debug("plan rejected", zap.String("record", rec.Name), zap.Error(err))
		return nil, err
	}

	actual, _ := c.cache.LoadOrStore(key, p)
	Logger().Debug("plan assembled",
		zap.String("record", rec.Name),
		zap.Int("fields", len(p.Fields)),
		zap.Int("padding", p.Layout.Padding))
	return actual.(*Plan), nil
}

// CompileAll plans every record in parallel. Plans are returned in input
// order. Any failure, including a repeated record name, fails the whole set.
func (c *Compiler) CompileAll(recs []Record) ([]*Plan, error) {
	names := make(map[string]struct{}, len(recs))
	for _, rec := range recs {
		if _, dup := names[rec.Name]; dup {
			return nil, errors.New(errors.PhasePlan, errors.KindDuplicateField).
				Record(rec.Name).
				Detail("record %q declared more than once", rec.Name).
				Build()
		}
		names[rec.Name] = struct{}{}
	}

	plans := make([]*Plan, len(recs))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, rec := range recs {
		g.Go(func() error {
			p, err := c.Compile(rec)
			if err != nil {
				return err
			}
			plans[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plans, nil
}
