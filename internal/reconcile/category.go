package reconcile

import (
	"context"
	"log/slog"

	"hikaye/internal/models"
	"hikaye/internal/observability"
	"hikaye/internal/repository"
)

// CategoryPass guarantees every post's category reference is a canonical
// enumeration entry or null. Legacy free-text values are folded into the
// category foreign key; anything that matches nothing becomes the default
// entry. Idempotent: a second run over converged data touches no rows.
type CategoryPass struct {
	posts      repository.PostRepository
	categories repository.CategoryRepository
	batchSize  int
	log        *slog.Logger
}

// NewCategoryPass builds the category assignment pass.
func NewCategoryPass(posts repository.PostRepository, categories repository.CategoryRepository) *CategoryPass {
	return &CategoryPass{
		posts:      posts,
		categories: categories,
		batchSize:  defaultBatchSize,
		log:        observability.Logger,
	}
}

// Name implements Pass; it doubles as the pass's feature-flag name.
func (p *CategoryPass) Name() string { return "category_sweep" }

// Run sweeps all posts. Per-row failures are logged and skipped; the pass
// continues and reports how many rows it could not converge.
func (p *CategoryPass) Run(ctx context.Context) (Result, error) {
	var res Result

	if err := p.categories.EnsureCanonical(ctx, models.CanonicalCategories()); err != nil {
		return res, err
	}

	bySlug, canonicalIDs, err := p.categoryIndex(ctx)
	if err != nil {
		return res, err
	}

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

			target, needsWrite := p.decide(post, bySlug, canonicalIDs)
			if !needsWrite {
				continue
			}

			changed, err := p.posts.RecategorizeGuarded(ctx, post.ID, post.CategoryID, post.LegacyCategory, target)
			if err != nil {
				res.Errors++
				observability.ReconcileRowErrors.WithLabelValues(p.Name()).Inc()
				p.log.WarnContext(ctx, "category repair failed",
					slog.Uint64("post_id", uint64(post.ID)),
					slog.String("error", err.Error()),
				)
				continue
			}
			if changed {
				res.Repaired++
				observability.ReconcileRowsRepaired.WithLabelValues(p.Name()).Inc()
			}
			// A lost guard means a concurrent sweep already converged
			// the row; nothing further to do.
		}
	}
}

// decide returns the category ID the post should carry and whether a write is
// needed. Deterministic given the same stale input, so concurrent sweeps
// converge without coordination.
func (p *CategoryPass) decide(post *models.Post, bySlug map[string]uint, canonicalIDs map[uint]bool) (*uint, bool) {
	hasLegacy := models.NormalizeCategoryValue(post.LegacyCategory) != ""

	if post.CategoryID != nil && canonicalIDs[*post.CategoryID] {
		if !hasLegacy {
			return nil, false
		}
		// Valid reference, leftover legacy text: keep the reference,
		// clear the text.
		id := *post.CategoryID
		return &id, true
	}

	if hasLegacy {
		if spec, ok := models.MatchCanonical(post.LegacyCategory); ok {
			id := bySlug[spec.Slug]
			return &id, true
		}
		// Non-empty but unrecognized: first enumeration entry, by
		// convention.
		id := bySlug[models.DefaultCategory().Slug]
		return &id, true
	}

	if post.CategoryID != nil {
		// Reference to a deleted or non-canonical category with no text
		// to recover from: default entry.
		id := bySlug[models.DefaultCategory().Slug]
		return &id, true
	}

	// Null stays null: category is optional.
	return nil, false
}

func (p *CategoryPass) categoryIndex(ctx context.Context) (map[string]uint, map[uint]bool, error) {
	categories, err := p.categories.List(ctx)
	if err != nil {
		return nil, nil, err
	}
	bySlug := make(map[string]uint, len(categories))
	canonicalIDs := make(map[uint]bool, len(categories))
	for _, c := range categories {
		bySlug[c.Slug] = c.ID
		if models.IsCanonicalSlug(c.Slug) {
			canonicalIDs[c.ID] = true
		}
	}
	return bySlug, canonicalIDs, nil
}
