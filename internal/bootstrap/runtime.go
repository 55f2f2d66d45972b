// Package bootstrap wires the application together. Everything downstream of
// here receives its dependencies explicitly; no package reaches for process
// globals to find the database, the cache, or the storage root.
package bootstrap

import (
	"context"
	"fmt"

	"hikaye/internal/cache"
	"hikaye/internal/config"
	"hikaye/internal/database"
	"hikaye/internal/featureflags"
	"hikaye/internal/media"
	"hikaye/internal/models"
	"hikaye/internal/reconcile"
	"hikaye/internal/repository"
	"hikaye/internal/service"
	"hikaye/internal/storage"

	"gorm.io/gorm"
)

// App is the fully wired runtime: one database handle, one storage root, one
// resolver, shared by every component for the life of the process.
type App struct {
	Config *config.Config
	DB     *gorm.DB
	Cache  *cache.Cache
	Store  *storage.DiskStore
	Flags  *featureflags.Manager

	Posts      repository.PostRepository
	Categories repository.CategoryRepository
	Videos     repository.VideoRepository
	Comments   repository.CommentRepository

	Resolver *media.Resolver

	PostService     *service.PostService
	CategoryService *service.CategoryService
	VideoService    *service.VideoService
	CommentService  *service.CommentService
	FeedService     *service.FeedService

	Reconciler *reconcile.Runner
}

// InitRuntime builds the App from configuration. Order matters: the posts
// table is evolved to the current column set before any repository touches
// it, and a missing default media asset fails startup rather than limping
// into per-request fallbacks.
func InitRuntime(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if _, err := database.EnsureColumns(ctx, db, models.Post{}.TableName(), database.PostColumns()); err != nil {
		return nil, fmt.Errorf("schema evolution failed: %w", err)
	}

	store, err := storage.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		return nil, fmt.Errorf("storage root unavailable: %w", err)
	}

	c := cache.New(cfg.RedisURL)

	posts := repository.NewPostRepository(db, c)
	categories := repository.NewCategoryRepository(db, c)
	videos := repository.NewVideoRepository(db)
	comments := repository.NewCommentRepository(db)

	flags := featureflags.NewManager(cfg.FeatureFlags)

	resolver := media.NewResolver(store, posts, media.Options{
		BaseURL:       cfg.MediaBaseURL,
		DefaultAsset:  cfg.DefaultImage,
		StalePrefixes: cfg.StalePrefixList(),
		RepairOnRead:  true,
		RepairGate: func(postID uint) bool {
			return flags.Enabled("media_repair", postID)
		},
	})
	if err := resolver.VerifyDefaultAsset(); err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		DB:         db,
		Cache:      c,
		Store:      store,
		Flags:      flags,
		Posts:      posts,
		Categories: categories,
		Videos:     videos,
		Comments:   comments,
		Resolver:   resolver,

		PostService:     service.NewPostService(posts, categories, resolver),
		CategoryService: service.NewCategoryService(categories),
		VideoService:    service.NewVideoService(videos),
		CommentService:  service.NewCommentService(comments, posts, videos),
		FeedService:     service.NewFeedService(posts, videos, resolver),

		Reconciler: reconcile.NewRunner(db, flags,
			reconcile.NewCategoryPass(posts, categories),
			reconcile.NewMediaPass(posts, resolver),
		),
	}

	if err := app.CategoryService.EnsureCanonicalCategories(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure canonical categories: %w", err)
	}

	return app, nil
}

// Close releases the runtime's external connections.
func (a *App) Close() error {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			return err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
