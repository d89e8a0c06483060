package services

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultPostLimit = 9
	SortAscending    = "asc"
)

// PostFilter is the typed form of the getposts query string. Zero values
// impose no constraint.
type PostFilter struct {
	UserID     *uint
	Category   string
	Slug       string
	PostID     *uint
	SearchTerm string
	StartIndex int
	Limit      int
	Sort       string
}

// Where adds one clause per populated field. All clauses are ANDed.
func (f PostFilter) Where(db *gorm.DB) *gorm.DB {
	if f.UserID != nil {
		db = db.Where("user_id = ?", *f.UserID)
	}
	if f.Category != "" {
		db = db.Where("category = ?", f.Category)
	}
	if f.Slug != "" {
		db = db.Where("slug = ?", f.Slug)
	}
	if f.PostID != nil {
		db = db.Where("id = ?", *f.PostID)
	}
	if f.SearchTerm != "" {
		pattern := "%" + escapeLike(strings.ToLower(f.SearchTerm)) + "%"
		db = db.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(content) LIKE ? ESCAPE '\')`, pattern, pattern)
	}
	return db
}

// Page orders by last update and applies offset and limit.
func (f PostFilter) Page(db *gorm.DB) *gorm.DB {
	limit := f.Limit
	if limit <= 0 {
		limit = DefaultPostLimit
	}
	offset := f.StartIndex
	if offset < 0 {
		offset = 0
	}
	return db.Order(f.orderBy()).Offset(offset).Limit(limit)
}

func (f PostFilter) orderBy() string {
	if f.Sort == SortAscending {
		return "updated_at ASC"
	}
	return "updated_at DESC"
}

// MonthAgo returns midnight of the same day-of-month one month before now.
// Days that do not exist in that month roll forward the way time.Date
// normalizes them (March 31 gives March 3 or 2).
func MonthAgo(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month()-1, now.Day(), 0, 0, 0, 0, now.Location())
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
