package domain

import (
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxTitleLength   = 100
	MaxCommentLength = 1000
)

var (
	ErrMissingFields  = errors.New("product id, order id, rating, title and comment are required")
	ErrInvalidRating  = errors.New("rating must be between 1 and 5")
	ErrTitleTooLong   = errors.New("title must be at most 100 characters")
	ErrCommentTooLong = errors.New("comment must be at most 1000 characters")
	ErrMissingProduct = errors.New("product id is required")
)

// Author is the public face of the reviewing user.
type Author struct {
	ID     string
	Name   string
	Avatar string
}

// Review is one buyer's rating of a product bought in a specific order.
type Review struct {
	ID         string
	UserID     string
	ProductID  string
	OrderID    string
	Rating     int
	Title      string
	Comment    string
	Images     []string
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Author is filled on read and never stored.
	Author *Author
}

// NewReview validates and trims the submitted fields.
func NewReview(id, userID, productID, orderID string, rating int, title, comment string, images []string, now time.Time) (*Review, error) {
	r := &Review{
		ID:        id,
		UserID:    userID,
		ProductID: strings.TrimSpace(productID),
		OrderID:   strings.TrimSpace(orderID),
		Rating:    rating,
		Title:     strings.TrimSpace(title),
		Comment:   strings.TrimSpace(comment),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if r.ProductID == "" || r.OrderID == "" || rating == 0 || r.Title == "" || r.Comment == "" {
		return nil, ErrMissingFields
	}
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if utf8.RuneCountInString(r.Comment) > MaxCommentLength {
		return nil, ErrCommentTooLong
	}
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			r.Images = append(r.Images, img)
		}
	}
	return r, nil
}

// Clone returns a deep copy.
func (r *Review) Clone() *Review {
	if r == nil {
		return nil
	}
	clone := *r
	clone.Images = append([]string(nil), r.Images...)
	if r.Author != nil {
		author := *r.Author
		clone.Author = &author
	}
	return &clone
}

// AverageRating is the mean of ratings rounded to one decimal place, or 0 when empty.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	return math.Round(mean*10) / 10
}
