package gen

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/planner"
)

// Result describes one generation run.
type Result struct {
	Plans []*planner.Plan
	// Files maps each written path to its contents.
	Files map[string][]byte
}

// Render emits a fragment per plan in parallel and returns them in plan
// order.
func Render(ctx context.Context, plans []*planner.Plan, opts Options) ([][]byte, error) {
	opts = opts.withDefaults()

	fragments := make([][]byte, len(plans))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, p := range plans {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := Fragment(p, opts.Package)
			if err != nil {
				return err
			}
			fragments[i] = src
			Logger().Debug("fragment rendered",
				zap.String("record", p.Record),
				zap.Int("bytes", len(src)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fragments, nil
}

// Generate plans recs, renders them and writes the result under opts.Dir:
// one merged file, or one fragment per record when opts.Split is set.
// Every record is planned and every file rendered before anything is
// written, and files are replaced together, so an unsupported type or
// emission failure leaves no output.
func Generate(ctx context.Context, recs []planner.Record, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	plans, err := planner.NewCompiler().CompileAll(recs)
	if err != nil {
		return nil, err
	}

	fragments, err := Render(ctx, plans, opts)
	if err != nil {
		return nil, err
	}

	res := &Result{Plans: plans, Files: make(map[string][]byte)}
	if opts.Split {
		for i, p := range plans {
			// Each fragment is merged alone so it is formatted like the
			// combined output.
			src, err := Merge(opts.Package, fragments[i])
			if err != nil {
				return nil, err
			}
			path := filepath.Join(opts.Dir, FragmentName(p.Record))
			if _, dup := res.Files[path]; dup {
				return nil, errors.New(errors.PhaseEmit, errors.KindEmissionFailure).
					Record(p.Record).
					Detail("fragment %s is already written by another record", filepath.Base(path)).
					Build()
			}
			res.Files[path] = src
		}
	} else {
		merged, err := Merge(opts.Package, fragments...)
		if err != nil {
			return nil, err
		}
		res.Files[filepath.Join(opts.Dir, opts.Output)] = merged
	}

	if err := WriteFiles(res.Files); err != nil {
		return nil, err
	}
	Logger().Debug("generation complete",
		zap.Int("records", len(plans)),
		zap.Int("files", len(res.Files)))
	return res, nil
}
