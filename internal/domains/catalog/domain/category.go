package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptySlug = errors.New("slug is required")
)

// Category groups products into a browsable tree.
type Category struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Image       string
	ParentID    string
	IsActive    bool
	Order       int
	Level       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewCategory validates name and slug and normalizes the slug to lower case.
func NewCategory(id, name, slug string) (*Category, error) {
	c := &Category{ID: id, Name: strings.TrimSpace(name), Slug: NormalizeSlug(slug), IsActive: true}
	if c.Name == "" {
		return nil, ErrEmptyName
	}
	if c.Slug == "" {
		return nil, ErrEmptySlug
	}
	return c, nil
}

// AttachTo places the category beneath parent, one level deeper.
func (c *Category) AttachTo(parent *Category) {
	if parent == nil {
		c.ParentID = ""
		c.Level = 0
		return
	}
	c.ParentID = parent.ID
	c.Level = parent.Level + 1
}

// NormalizeSlug trims and lower-cases a slug.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
