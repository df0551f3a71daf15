package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/identity/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/identity/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists users in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Models lists the records owned by this adapter for schema migration.
func Models() []any {
	return []any{&userRecord{}, &sessionRecord{}}
}

type userRecord struct {
	ID              string           `gorm:"primaryKey;column:id;type:uuid"`
	Name            string           `gorm:"column:name;not null"`
	Email           string           `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash    string           `gorm:"column:password_hash;not null"`
	Avatar          string           `gorm:"column:avatar"`
	Role            string           `gorm:"column:role;type:varchar(16);index;not null"`
	Addresses       []domain.Address `gorm:"column:addresses;serializer:json"`
	IsEmailVerified bool             `gorm:"column:is_email_verified"`
	CreatedAt       time.Time        `gorm:"column:created_at"`
	UpdatedAt       time.Time        `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Create inserts a user; a taken email yields ports.ErrDuplicateEmail.
func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Update overwrites the mutable profile columns.
func (r *Repository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user is nil")
	}
	record := toRecord(user)
	result := r.db.WithContext(ctx).Model(&userRecord{}).Where("id = ?", user.ID).
		Select("name", "email", "avatar", "role", "addresses", "is_email_verified", "updated_at").
		Updates(&record)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateEmail
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, user.ID)
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "email = ?", domain.NormalizeEmail(email))
}

func (r *Repository) CountByRole(ctx context.Context, role domain.Role) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	err := r.db.WithContext(ctx).Model(&userRecord{}).Where("role = ?", string(role)).Count(&n).Error
	return n, err
}

func (r *Repository) first(ctx context.Context, query string, arg any) (*domain.User, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record userRecord
	if err := r.db.WithContext(ctx).Where(query, arg).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres user repository not configured")
	}
	return nil
}

func toRecord(user *domain.User) userRecord {
	return userRecord{
		ID:              user.ID,
		Name:            user.Name,
		Email:           user.Email,
		PasswordHash:    user.PasswordHash,
		Avatar:          user.Avatar,
		Role:            string(user.Role),
		Addresses:       user.Addresses,
		IsEmailVerified: user.IsEmailVerified,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

func (r userRecord) toDomain() *domain.User {
	return &domain.User{
		ID:              r.ID,
		Name:            r.Name,
		Email:           r.Email,
		PasswordHash:    r.PasswordHash,
		Avatar:          r.Avatar,
		Role:            domain.Role(r.Role),
		Addresses:       r.Addresses,
		IsEmailVerified: r.IsEmailVerified,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
