// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"

	"hikaye/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder.
type Options struct {
	NumPosts    int
	NumVideos   int
	NumComments int
	// Messy writes posts the way old platform versions did: free-text
	// Turkish category values, stale-prefixed image paths, no category
	// foreign keys. Use it to exercise the reconciliation passes.
	Messy       bool
	ShouldClean bool
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, factory *Factory, opts Options) error {
	log.Printf("🌱 Seeding %d posts, %d videos, %d comments (messy=%v)...",
		opts.NumPosts, opts.NumVideos, opts.NumComments, opts.Messy)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, continuing anyway...")
		}
	}

	categories, err := ensureCategories(db)
	if err != nil {
		return fmt.Errorf("failed to create categories: %w", err)
	}
	log.Printf("✓ %d categories available", len(categories))

	posts, err := factory.CreatePosts(categories, opts.NumPosts, opts.Messy)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("✓ %d posts created", len(posts))

	videos, err := factory.CreateVideos(opts.NumVideos)
	if err != nil {
		return fmt.Errorf("failed to create videos: %w", err)
	}
	log.Printf("✓ %d videos created", len(videos))

	comments, err := factory.CreateComments(posts, videos, opts.NumComments)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("✓ %d comments created", len(comments))

	log.Println("🎉 Seeding complete")
	return nil
}

func ensureCategories(db *gorm.DB) ([]*models.Category, error) {
	for _, spec := range models.CanonicalCategories() {
		category := models.Category{Name: spec.Name, Slug: spec.Slug}
		if err := db.Where(models.Category{Slug: spec.Slug}).
			FirstOrCreate(&category).Error; err != nil {
			return nil, err
		}
	}
	var categories []*models.Category
	if err := db.Order("id").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func clearData(db *gorm.DB) error {
	for _, table := range []string{"comments", "videos", "posts", "categories"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}
