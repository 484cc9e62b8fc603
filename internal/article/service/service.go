package service

import (
	"context"
	"errors"

	"github.com/newsbook/newsbook-api/internal/apperr"
	"github.com/newsbook/newsbook-api/internal/article"
	"github.com/newsbook/newsbook-api/internal/article/repository"
	"github.com/newsbook/newsbook-api/internal/models"
	"github.com/newsbook/newsbook-api/internal/validation"
	"go.mongodb.org/mongo-driver/mongo"
)

// Service scopes every article operation to the authenticated caller.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

// NewMemoryService returns a Service backed by the in-memory repository.
func NewMemoryService() *Service {
	return New(repository.NewMemoryRepo())
}

// NewMongoService returns a Service backed by a MongoDB collection.
func NewMongoService(col *mongo.Collection) *Service {
	return New(repository.NewMongoRepo(col))
}

// List returns the caller's articles, newest first.
func (s *Service) List(ctx context.Context, caller models.Identity) ([]*article.Article, error) {
	list, err := s.repo.ListByOwner(ctx, caller.ID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return list, nil
}

// Create validates the fields and persists an article owned by the caller, ignoring any
// owner supplied in the input.
func (s *Service) Create(ctx context.Context, caller models.Identity, in article.Fields) (*article.Article, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	a := &article.Article{
		Keyword: in.Keyword,
		Title:   in.Title,
		Text:    in.Text,
		Date:    in.Date,
		Source:  in.Source,
		Link:    in.Link,
		Image:   in.Image,
		Owner:   caller.ID,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, apperr.Internal(err)
	}
	return a, nil
}

// Delete removes the caller's article. A missing id yields NotFound; an article owned by
// someone else yields Forbidden.
func (s *Service) Delete(ctx context.Context, caller models.Identity, id string) error {
	a, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Article not found")
		}
		return apperr.Internal(err)
	}
	if a.Owner != caller.ID {
		return apperr.Forbidden("Not your article")
	}
	if err := s.repo.Delete(ctx, id, caller.ID); err != nil {
		// removed by a concurrent request between Get and Delete
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("Article not found")
		}
		return apperr.Internal(err)
	}
	return nil
}
