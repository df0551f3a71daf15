package mapper

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
)

// CreateReviewRequest is the review submission payload.
type CreateReviewRequest struct {
	ProductID string   `json:"productId"`
	OrderID   string   `json:"orderId"`
	Rating    int      `json:"rating"`
	Title     string   `json:"title"`
	Comment   string   `json:"comment"`
	Images    []string `json:"images"`
}

type Author struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

type Review struct {
	ID         string    `json:"id"`
	User       *Author   `json:"user,omitempty"`
	UserID     string    `json:"userId"`
	ProductID  string    `json:"productId"`
	OrderID    string    `json:"orderId"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

func ToCreateInput(userID string, req CreateReviewRequest) ports.CreateInput {
	return ports.CreateInput{
		UserID:    userID,
		ProductID: req.ProductID,
		OrderID:   req.OrderID,
		Rating:    req.Rating,
		Title:     req.Title,
		Comment:   req.Comment,
		Images:    req.Images,
	}
}

func FromDomainReview(r *domain.Review) Review {
	if r == nil {
		return Review{Images: []string{}}
	}
	out := Review{
		ID:         r.ID,
		UserID:     r.UserID,
		ProductID:  r.ProductID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		Images:     append([]string{}, r.Images...),
		IsVerified: r.IsVerified,
		CreatedAt:  r.CreatedAt,
	}
	if r.Author != nil {
		out.User = &Author{ID: r.Author.ID, Name: r.Author.Name, Avatar: r.Author.Avatar}
	}
	return out
}

func FromDomainReviews(reviews []*domain.Review) []Review {
	out := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, FromDomainReview(r))
	}
	return out
}
