// Package postings validates and stores job postings.
package postings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/models"
)

// Store is implemented by *db.PostingRepo.
type Store interface {
	Create(ctx context.Context, p *models.Posting) (*models.Posting, error)
	List(ctx context.Context) ([]models.Posting, error)
}

// Input carries the client-supplied fields. Salary and Description are optional.
type Input struct {
	Title       string
	Company     string
	Contact     string
	Salary      *string
	Description *string
}

type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the timestamp source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// List returns all postings, newest first. An empty board is an empty slice.
func (s *Service) List(ctx context.Context) ([]models.Posting, error) {
	return s.store.List(ctx)
}

// Create stores a posting published by creator, who must be resolved.
func (s *Service) Create(ctx context.Context, in Input, creator *models.User) (*models.Posting, error) {
	if creator == nil {
		return nil, fmt.Errorf("%w: authentication required", models.ErrUnauthorized)
	}

	p := &models.Posting{
		Title:   strings.TrimSpace(in.Title),
		Company: strings.TrimSpace(in.Company),
		Contact: strings.TrimSpace(in.Contact),
	}
	if p.Title == "" || p.Company == "" || p.Contact == "" {
		return nil, fmt.Errorf("%w: title, company and contact are required", models.ErrValidation)
	}
	if in.Salary != nil {
		if v := strings.TrimSpace(*in.Salary); v != "" {
			p.Salary = &v
		}
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	p.CreatedAt = s.now().UTC()
	id := creator.ID
	p.PublishedBy = &id

	return s.store.Create(ctx, p)
}
