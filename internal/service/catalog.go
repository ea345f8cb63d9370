package service

import (
	"context"
	"errors"

	"github.com/plushdex/backend/internal/db"
	"github.com/plushdex/backend/internal/model"
)

const defaultPageLimit = 10

var ErrNotFound = errors.New("not found")

// PlushRepository is the store surface the catalog needs. db.Postgres
// satisfies it; tests substitute fakes.
type PlushRepository interface {
	ListPlushes(ctx context.Context) ([]model.Plush, error)
	ListPlushPage(ctx context.Context, skip, limit int) ([]model.Plush, error)
	GetPlushByID(ctx context.Context, id int64) (*model.Plush, error)
	CreatePlush(ctx context.Context, req model.CreatePlushRequest) (*model.Plush, error)
	SearchPlushes(ctx context.Context, req model.SearchRequest) (int, []model.Plush, error)
	FilterPlushes(ctx context.Context, req model.FilterRequest) (int, []model.Plush, error)
}

type CatalogService struct {
	repo PlushRepository
}

func NewCatalogService(repo PlushRepository) *CatalogService {
	return &CatalogService{repo: repo}
}

func (s *CatalogService) ListAll(ctx context.Context) ([]model.Plush, error) {
	return s.repo.ListPlushes(ctx)
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*model.Plush, error) {
	p, err := s.repo.GetPlushByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (s *CatalogService) Create(ctx context.Context, req model.CreatePlushRequest) (*model.Plush, error) {
	return s.repo.CreatePlush(ctx, req)
}

func (s *CatalogService) ListPage(ctx context.Context, skip, limit int) ([]model.Plush, error) {
	skip, limit = normalizePage(skip, limit)
	return s.repo.ListPlushPage(ctx, skip, limit)
}

func (s *CatalogService) Search(ctx context.Context, req model.SearchRequest) (*model.PageEnvelope, error) {
	req.Skip, req.Limit = normalizePage(req.Skip, req.Limit)

	total, results, err := s.repo.SearchPlushes(ctx, req)
	if err != nil {
		return nil, err
	}
	return newPageEnvelope(total, req.Skip, req.Limit, results), nil
}

func (s *CatalogService) Filter(ctx context.Context, req model.FilterRequest) (*model.FilterResponse, error) {
	req.Skip, req.Limit = normalizePage(req.Skip, req.Limit)

	total, results, err := s.repo.FilterPlushes(ctx, req)
	if err != nil {
		return nil, err
	}
	return &model.FilterResponse{
		Filters: model.FilterInputs{
			Characters: req.Characters,
			Variations: req.Variations,
			Sets:       req.Sets,
			MinYear:    req.MinYear,
			MaxYear:    req.MaxYear,
		},
		PageEnvelope: *newPageEnvelope(total, req.Skip, req.Limit, results),
	}, nil
}

func normalizePage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = defaultPageLimit
	}
	return skip, limit
}

// newPageEnvelope is the single place pagination metadata is computed, for
// search and filter alike. limit=0 collapses to one page rather than
// dividing by zero.
func newPageEnvelope(total, skip, limit int, results []model.Plush) *model.PageEnvelope {
	totalPages := 1
	currentPage := 1
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
		currentPage = skip/limit + 1
	}
	return &model.PageEnvelope{
		Skip:        skip,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Limit:       limit,
		Results:     results,
	}
}
