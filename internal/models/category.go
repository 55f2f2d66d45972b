package models

import (
	_ "embed"
	"fmt"
	"strings"
	"time"
	"unicode"

	"gopkg.in/yaml.v3"
)

// Category represents a content category.
type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Slug      string    `gorm:"size:100;not null;uniqueIndex" json:"slug"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Category) TableName() string {
	return "categories"
}

// CategorySpec is one entry of the canonical category enumeration.
type CategorySpec struct {
	Slug string `yaml:"slug"`
	Name string `yaml:"name"`
}

//go:embed categories.yml
var canonicalCategoriesYAML []byte

var canonicalCategories []CategorySpec

func init() {
	if err := yaml.Unmarshal(canonicalCategoriesYAML, &canonicalCategories); err != nil {
		panic(fmt.Sprintf("invalid embedded category enumeration: %v", err))
	}
	if len(canonicalCategories) == 0 {
		panic("embedded category enumeration is empty")
	}
}

// CanonicalCategories returns a copy of the canonical category enumeration,
// in order.
func CanonicalCategories() []CategorySpec {
	out := make([]CategorySpec, len(canonicalCategories))
	copy(out, canonicalCategories)
	return out
}

// DefaultCategory returns the designated default entry: the first of the
// enumeration, by convention.
func DefaultCategory() CategorySpec {
	return canonicalCategories[0]
}

// NormalizeCategoryValue trims and case-folds a stored category value for
// comparison. Folding uses the Turkish case table so that İ/i and I/ı pair up
// the way the display names expect.
func NormalizeCategoryValue(v string) string {
	return strings.ToLowerSpecial(unicode.TurkishCase, strings.TrimSpace(v))
}

// MatchCanonical looks a free-form category value up in the canonical
// enumeration, matching either the slug or the display name after
// normalization. Returns the matched entry and whether a match was found.
func MatchCanonical(value string) (CategorySpec, bool) {
	n := NormalizeCategoryValue(value)
	if n == "" {
		return CategorySpec{}, false
	}
	for _, spec := range canonicalCategories {
		if n == spec.Slug || n == NormalizeCategoryValue(spec.Name) {
			return spec, true
		}
	}
	return CategorySpec{}, false
}

// IsCanonicalSlug reports whether slug is an entry of the canonical enumeration.
func IsCanonicalSlug(slug string) bool {
	for _, spec := range canonicalCategories {
		if spec.Slug == slug {
			return true
		}
	}
	return false
}
