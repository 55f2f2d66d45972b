// Package reconcile contains the idempotent maintenance passes that restore
// the content store's invariants: canonical category assignment and media
// reference repair. Passes run out of band, tolerate concurrent traffic, and
// may be interrupted at any row; re-running always completes the work.
package reconcile

import (
	"context"
	"errors"
	"log/slog"

	"hikaye/internal/database"
	"hikaye/internal/featureflags"
	"hikaye/internal/models"
	"hikaye/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// defaultBatchSize bounds how many posts a pass loads per page.
const defaultBatchSize = 200

// Result summarizes one pass execution.
type Result struct {
	Scanned  int
	Repaired int
	Errors   int
}

// Pass is a single idempotent reconciliation sweep.
type Pass interface {
	Name() string
	Run(ctx context.Context) (Result, error)
}

// Runner executes schema evolution followed by every enabled pass.
type Runner struct {
	db     *gorm.DB
	flags  *featureflags.Manager
	passes []Pass
	log    *slog.Logger
}

// NewRunner builds a Runner over the given passes. Schema evolution always
// runs first; individual passes are gated by feature flags named after them.
func NewRunner(db *gorm.DB, flags *featureflags.Manager, passes ...Pass) *Runner {
	return &Runner{
		db:     db,
		flags:  flags,
		passes: passes,
		log:    observability.Logger,
	}
}

// Run performs the full maintenance cycle. A configuration-fatal error from
// schema evolution aborts everything; a failing pass is reported but does not
// prevent the remaining passes from running, since every pass is independent
// and re-runnable.
func (r *Runner) Run(ctx context.Context) error {
	span, ctx := observability.NewSpan(ctx, "reconcile.schema_evolution")
	added, err := database.EnsureColumns(ctx, r.db, models.Post{}.TableName(), database.PostColumns())
	span.AddAttributes(attribute.Int("columns_added", added))
	if err != nil {
		span.SetError(err)
		span.End()
		if models.IsConfigError(err) {
			r.log.ErrorContext(ctx, "schema evolution hit a fatal configuration error", slog.String("error", err.Error()))
		}
		return err
	}
	span.End()
	r.log.InfoContext(ctx, "schema evolution completed", slog.Int("columns_added", added))

	var errs []error
	for _, pass := range r.passes {
		if !r.flags.Enabled(pass.Name(), 0) {
			r.log.InfoContext(ctx, "pass disabled by feature flag", slog.String("pass", pass.Name()))
			continue
		}

		passCtx := observability.WithPass(ctx, pass.Name())
		span, passCtx := observability.NewSpan(passCtx, "reconcile."+pass.Name())

		res, err := pass.Run(passCtx)
		span.AddAttributes(
			attribute.Int("scanned", res.Scanned),
			attribute.Int("repaired", res.Repaired),
			attribute.Int("row_errors", res.Errors),
		)
		if err != nil {
			span.SetError(err)
			r.log.ErrorContext(passCtx, "pass aborted",
				slog.String("pass", pass.Name()),
				slog.String("error", err.Error()),
			)
			errs = append(errs, err)
		} else {
			r.log.InfoContext(passCtx, "pass completed",
				slog.String("pass", pass.Name()),
				slog.Int("scanned", res.Scanned),
				slog.Int("repaired", res.Repaired),
				slog.Int("row_errors", res.Errors),
			)
		}
		span.End()
	}

	return errors.Join(errs...)
}
