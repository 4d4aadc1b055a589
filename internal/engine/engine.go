// Package engine runs the external linting engine over option groups and
// merges what it reports.
package engine

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/Wladim1r/xoconf/internal/config"
	"github.com/Wladim1r/xoconf/internal/group"
	"github.com/Wladim1r/xoconf/internal/logging"
	"github.com/Wladim1r/xoconf/internal/options"
)

// Engine lints a batch of files under one resolved configuration.
type Engine interface {
	Lint(ctx context.Context, paths []string, cfg *config.Config) (*Report, error)
}

// Builder resolves the configuration for a group's options.
type Builder interface {
	Build(opts options.Options) (*config.Config, error)
}

// Run lints every group, at most limit at a time (no bound when limit <= 0).
//
// A group whose configuration cannot be built is skipped and its error
// collected; the other groups still run and the returned report merges
// their results in group order, alongside the joined build errors. An
// engine failure cancels the remaining groups and is returned alone.
func Run(ctx context.Context, eng Engine, b Builder, groups []group.Group, limit int) (*Report, error) {
	reports := make([]*Report, len(groups))
	buildErrs := make([]error, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, grp := range groups {
		g.Go(func() error {
			cfg, err := b.Build(grp.Options)
			if err != nil {
				buildErrs[i] = fmt.Errorf("group %d (%s): %w", i, grp.Mask, err)
				logging.Debug().Err(err).Int("group", i).Msg("skipping group")
				return nil
			}

			rep, err := eng.Lint(gctx, grp.Paths, cfg)
			if err != nil {
				return fmt.Errorf("xoconf: linting group %d: %w", i, err)
			}
			reports[i] = rep

			logging.Debug().
				Int("group", i).
				Int("files", len(grp.Paths)).
				Int("errors", rep.ErrorCount).
				Msg("group linted")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return MergeReports(reports...), errors.Join(buildErrs...)
}
