package seed

import (
	"fmt"
	"math/rand"
	"time"

	"hikaye/internal/models"
	"hikaye/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// messyCategoryValues are free-text category strings as old platform versions
// stored them: display names, odd casing, stray whitespace, and the
// occasional value no canonical category matches.
var messyCategoryValues = []string{
	"Öykü", "öykü", "ÖYKÜ", " Öykü ", "oyku",
	"Şiir", "ŞİİR", "siir",
	"Deneme", "deneme ",
	"Roman", "İnceleme", "Haber",
	"Genel", "Serbest", // no canonical match; the sweep defaults these
}

// stalePrefixes mirrors the prefixes the media sweep strips.
var stalePrefixes = []string{
	"images/hikayeler/",
	"/images/hikayeler/",
	"uploads/",
}

var youtubeIDs = []string{
	"dQw4w9WgXcQ", "9bZkp7q19f0", "3JZ_D3ELwOQ", "L_jWHffIx5E", "kXYiU_JCYtU",
}

// Factory builds domain entities and persists them to the database. The
// store, when present, receives a placeholder file per generated image so
// stale references point at bytes that actually exist.
type Factory struct {
	db    *gorm.DB
	store storage.Store
	rng   *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB. store may
// be nil; generated image references then dangle.
func NewFactory(db *gorm.DB, store storage.Store) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:    db,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildPost constructs a post without persisting it.
func (f *Factory) BuildPost(categories []*models.Category, messy bool) *models.Post {
	post := &models.Post{
		Title:     gofakeit.Sentence(5),
		Content:   gofakeit.Paragraph(3, 4, 8, "\n\n"),
		Excerpt:   gofakeit.Sentence(12),
		Published: f.rng.Intn(10) > 0,
		Featured:  f.rng.Intn(5) == 0,
		Views:     uint(f.rng.Intn(5000)),
		Likes:     uint(f.rng.Intn(300)),
		Dislikes:  uint(f.rng.Intn(40)),
	}
	post.Slug = models.Slugify(post.Title)
	post.CreatedAt = f.pastTimestamp(365)

	if messy {
		post.LegacyCategory = messyCategoryValues[f.rng.Intn(len(messyCategoryValues))]
		post.Image = f.messyImageRef()
	} else {
		category := categories[f.rng.Intn(len(categories))]
		post.CategoryID = &category.ID
		post.Image = f.storedImage()
	}
	return post
}

// CreatePosts persists n posts. With messy enabled the rows look like
// pre-migration data and give the reconciliation passes real work.
func (f *Factory) CreatePosts(categories []*models.Category, n int, messy bool) ([]*models.Post, error) {
	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		post := f.BuildPost(categories, messy)
		if err := f.db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (f *Factory) CreateVideos(n int) ([]*models.Video, error) {
	videos := make([]*models.Video, 0, n)
	for i := 0; i < n; i++ {
		video := &models.Video{
			Title:       gofakeit.Sentence(4),
			YoutubeID:   youtubeIDs[f.rng.Intn(len(youtubeIDs))],
			Description: gofakeit.Sentence(15),
		}
		video.CreatedAt = f.pastTimestamp(180)
		if err := f.db.Create(video).Error; err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, nil
}

// CreateComments attaches n comments across the given posts and videos,
// each to exactly one target.
func (f *Factory) CreateComments(posts []*models.Post, videos []*models.Video, n int) ([]*models.Comment, error) {
	if len(posts) == 0 && len(videos) == 0 {
		return nil, nil
	}

	comments := make([]*models.Comment, 0, n)
	for i := 0; i < n; i++ {
		comment := &models.Comment{
			Content:    gofakeit.Sentence(10),
			AuthorName: gofakeit.Name(),
			CreatedAt:  f.pastTimestamp(90),
		}
		if len(videos) == 0 || (len(posts) > 0 && f.rng.Intn(4) != 0) {
			comment.PostID = &posts[f.rng.Intn(len(posts))].ID
		} else {
			comment.VideoID = &videos[f.rng.Intn(len(videos))].ID
		}
		if err := f.db.Create(comment).Error; err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// storedImage saves a placeholder file and returns its canonical bare name.
// Without a store it returns an empty reference.
func (f *Factory) storedImage() string {
	if f.store == nil {
		return ""
	}
	name, err := f.store.Save("seed.jpg", []byte(gofakeit.HipsterSentence(8)))
	if err != nil {
		return ""
	}
	return name
}

// messyImageRef returns a reference in one of the shapes legacy rows carry:
// empty, canonical, stale-prefixed, dangling, or a remote URL.
func (f *Factory) messyImageRef() string {
	switch f.rng.Intn(5) {
	case 0:
		return ""
	case 1:
		return f.storedImage()
	case 2:
		name := f.storedImage()
		if name == "" {
			return ""
		}
		return stalePrefixes[f.rng.Intn(len(stalePrefixes))] + name
	case 3:
		return fmt.Sprintf("%s.jpg", gofakeit.UUID())
	default:
		return fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
	}
}

func (f *Factory) pastTimestamp(maxDays int) time.Time {
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	return time.Now().Add(-time.Duration(daysBack)*24*time.Hour -
		time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
