package reconcile

import (
	"context"
	"log/slog"

	"hikaye/internal/media"
	"hikaye/internal/observability"
	"hikaye/internal/repository"
)

// MediaPass resolves every post's stored media reference, repairing stale
// values eagerly so the read path never has corrective work left to do.
// Dangling references are left in place; they already render as the default
// asset at zero cost.
type MediaPass struct {
	posts     repository.PostRepository
	resolver  *media.Resolver
	batchSize int
	log       *slog.Logger
}

// NewMediaPass builds the media reconciliation pass. The resolver should have
// repair-on-read enabled, otherwise the pass only reports.
func NewMediaPass(posts repository.PostRepository, resolver *media.Resolver) *MediaPass {
	return &MediaPass{
		posts:     posts,
		resolver:  resolver,
		batchSize: defaultBatchSize,
		log:       observability.Logger,
	}
}

// Name implements Pass; it doubles as the pass's feature-flag name.
func (p *MediaPass) Name() string { return "media_sweep" }

// Run sweeps all posts. Resolution never fails per row; only batch listing
// errors abort the pass, and a rerun picks up where the data was left.
func (p *MediaPass) Run(ctx context.Context) (Result, error) {
	var res Result

	var cursor uint
	for {
		batch, err := p.posts.ListBatch(ctx, cursor, p.batchSize)
		if err != nil {
			return res, err
		}
		if len(batch) == 0 {
			return res, nil
		}

		for _, post := range batch {
			cursor = post.ID
			res.Scanned++
			observability.ReconcileRowsScanned.WithLabelValues(p.Name()).Inc()

			resolved := p.resolver.Resolve(ctx, post)
			if resolved.Repaired {
				res.Repaired++
				observability.ReconcileRowsRepaired.WithLabelValues(p.Name()).Inc()
				p.log.InfoContext(ctx, "media reference repaired",
					slog.Uint64("post_id", uint64(post.ID)),
					slog.String("canonical", resolved.Name),
				)
			}
		}
	}
}
