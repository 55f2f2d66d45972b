// Command main populates the database with demo content.
package main

import (
	"flag"
	"log"

	"hikaye/internal/config"
	"hikaye/internal/database"
	"hikaye/internal/seed"
	"hikaye/internal/storage"
)

func main() {
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numVideos := flag.Int("videos", 30, "Number of videos to create")
	numComments := flag.Int("comments", 400, "Number of comments to create")
	messy := flag.Bool("messy", false, "Write legacy-shaped rows (free-text categories, stale image paths)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d posts, %d videos, %d comments, messy=%v, clean=%v\n",
		*numPosts, *numVideos, *numComments, *messy, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	store, err := storage.NewDiskStore(cfg.MediaRoot)
	if err != nil {
		log.Fatalf("Failed to open storage root: %v", err)
	}

	factory := seed.NewFactory(db, store)
	if err := seed.Seed(db, factory, seed.Options{
		NumPosts:    *numPosts,
		NumVideos:   *numVideos,
		NumComments: *numComments,
		Messy:       *messy,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with demo content.")
}
