package identity

import (
	"context"

	identityports "github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/reviews/ports"
)

var _ ports.AuthorDirectory = (*Directory)(nil)

// Directory resolves reviewer profiles from the account store.
type Directory struct {
	users identityports.Repository
}

func NewDirectory(users identityports.Repository) *Directory {
	return &Directory{users: users}
}

func (d *Directory) Author(ctx context.Context, userID string) (domain.Author, error) {
	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		return domain.Author{}, err
	}
	return domain.Author{ID: user.ID, Name: user.Name, Avatar: user.Avatar}, nil
}
