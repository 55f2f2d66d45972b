// Package media resolves stored media references to renderable assets.
//
// A post's image column carries whatever past versions of the platform wrote
// into it: a bare filename (the canonical form), a path with a now-implicit
// upload-directory prefix, an absolute path or URL, or nothing. Resolution
// turns any of those into a reference that is guaranteed to render, and
// opportunistically rewrites stale values back to canonical form.
package media

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"hikaye/internal/models"
	"hikaye/internal/observability"
	"hikaye/internal/repository"
	"hikaye/internal/storage"
)

// Resolved is the outcome of resolving one media reference. Always renderable;
// callers never need to null-check.
type Resolved struct {
	// Name is the bare filename under the storage root (possibly the
	// default asset).
	Name string
	// URL is the reference ready for rendering or JSON serialization.
	URL string
	// Fallback is true when the default asset was substituted.
	Fallback bool
	// Repaired is true when the stored value was stale and a canonical
	// rewrite was attempted.
	Repaired bool
}

// Options configure a Resolver.
type Options struct {
	BaseURL string
	// DefaultAsset must exist under the storage root; VerifyDefaultAsset
	// enforces this at startup.
	DefaultAsset string
	// StalePrefixes are prefixes once stored on references and now implicit.
	StalePrefixes []string
	// RepairOnRead enables the best-effort write-back of corrected values.
	RepairOnRead bool
	// RepairGate, when set, decides per post whether the write-back applies.
	// Used for percentage rollouts of repair-on-read; nil gates nothing.
	RepairGate func(postID uint) bool
}

// Resolver resolves raw media references against a storage root.
type Resolver struct {
	store storage.Store
	posts repository.PostRepository
	opts  Options
	log   *slog.Logger
}

// NewResolver builds a Resolver. posts may be nil, in which case repair
// write-backs are disabled regardless of options.
func NewResolver(store storage.Store, posts repository.PostRepository, opts Options) *Resolver {
	return &Resolver{
		store: store,
		posts: posts,
		opts:  opts,
		log:   observability.Logger,
	}
}

// VerifyDefaultAsset confirms the default asset exists in the storage root.
// Its absence is a deployment error, fatal at startup, never recovered at
// runtime.
func (r *Resolver) VerifyDefaultAsset() error {
	if !r.store.Exists(r.opts.DefaultAsset) {
		return models.NewConfigError("default media asset "+r.opts.DefaultAsset+" missing from storage root", nil)
	}
	return nil
}

// Resolve resolves a post's stored image reference. A missing file is an
// expected condition: the only observable effect is the default asset. When
// the stored value was stale and the corrected file exists, the canonical
// value is written back best-effort; a failed write-back never disturbs the
// read that triggered it.
func (r *Resolver) Resolve(ctx context.Context, post *models.Post) Resolved {
	name, state := r.canonicalize(post.Image)

	switch state {
	case refAbsent:
		observability.MediaResolutions.WithLabelValues(observability.ResolutionAbsent).Inc()
		return r.fallback()

	case refCanonical:
		if r.store.Exists(name) {
			observability.MediaResolutions.WithLabelValues(observability.ResolutionCanonical).Inc()
			return Resolved{Name: name, URL: r.urlFor(name)}
		}
		// Dangling reference: recoverable, served as the default, the
		// stored value left alone.
		observability.MediaResolutions.WithLabelValues(observability.ResolutionFallback).Inc()
		return r.fallback()

	default: // refStale
		if !r.store.Exists(name) {
			observability.MediaResolutions.WithLabelValues(observability.ResolutionFallback).Inc()
			return r.fallback()
		}
		repaired := r.repair(ctx, post, name)
		observability.MediaResolutions.WithLabelValues(observability.ResolutionRepaired).Inc()
		return Resolved{Name: name, URL: r.urlFor(name), Repaired: repaired}
	}
}

type refState int

const (
	refAbsent refState = iota
	refCanonical
	refStale
)

// canonicalize reduces a raw reference to a candidate bare filename.
// Pure function of the input; no I/O.
func (r *Resolver) canonicalize(ref string) (string, refState) {
	v := strings.TrimSpace(ref)
	if v == "" {
		// Empty is defined as absent, not stale: no repair is warranted.
		return "", refAbsent
	}

	candidate := v
	if i := strings.Index(candidate, "://"); i >= 0 {
		// Scheme-carrying values were never canonical; reduce to the
		// final path segment and let the existence check decide.
		candidate = strings.TrimPrefix(candidate[i+3:], "/")
		if j := strings.Index(candidate, "/"); j >= 0 {
			candidate = candidate[j+1:]
		}
	}
	candidate = strings.TrimPrefix(candidate, "/")

	for _, prefix := range r.opts.StalePrefixes {
		p := strings.TrimPrefix(prefix, "/")
		if strings.HasPrefix(candidate, p) {
			candidate = strings.TrimPrefix(candidate, p)
			break
		}
	}

	// Whatever separators remain are malformed; only the basename can
	// identify a file in the flat storage root.
	candidate = path.Base(strings.ReplaceAll(candidate, "\\", "/"))
	if candidate == "." || candidate == "/" {
		return "", refAbsent
	}

	if candidate == v {
		return candidate, refCanonical
	}
	return candidate, refStale
}

// repair writes the canonical value back, guarded by the stale one. Best
// effort: a concurrent delete or edit of the post simply skips the repair.
func (r *Resolver) repair(ctx context.Context, post *models.Post, canonical string) bool {
	if !r.opts.RepairOnRead || r.posts == nil || post.ID == 0 {
		return false
	}
	if r.opts.RepairGate != nil && !r.opts.RepairGate(post.ID) {
		return false
	}
	changed, err := r.posts.RepairImage(ctx, post.ID, post.Image, canonical)
	if err != nil {
		r.log.WarnContext(ctx, "media reference repair failed",
			slog.Uint64("post_id", uint64(post.ID)),
			slog.String("stale", post.Image),
			slog.String("canonical", canonical),
			slog.String("error", err.Error()),
		)
		return false
	}
	if changed {
		post.Image = canonical
	}
	return changed
}

func (r *Resolver) fallback() Resolved {
	return Resolved{
		Name:     r.opts.DefaultAsset,
		URL:      r.urlFor(r.opts.DefaultAsset),
		Fallback: true,
	}
}

func (r *Resolver) urlFor(name string) string {
	base := strings.TrimSuffix(r.opts.BaseURL, "/")
	return base + "/" + name
}
