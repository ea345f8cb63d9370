package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/plushdex/backend/internal/model"
	"github.com/plushdex/backend/internal/service"
)

type fakePlushRepo struct {
	plushes []model.Plush
	total   int

	lastSearch model.SearchRequest
	lastFilter model.FilterRequest
	nextID     int64
}

func (f *fakePlushRepo) ListPlushes(ctx context.Context) ([]model.Plush, error) {
	return f.plushes, nil
}

func (f *fakePlushRepo) ListPlushPage(ctx context.Context, skip, limit int) ([]model.Plush, error) {
	if skip >= len(f.plushes) {
		return []model.Plush{}, nil
	}
	end := skip + limit
	if end > len(f.plushes) {
		end = len(f.plushes)
	}
	return f.plushes[skip:end], nil
}

func (f *fakePlushRepo) GetPlushByID(ctx context.Context, id int64) (*model.Plush, error) {
	for i := range f.plushes {
		if f.plushes[i].ID == id {
			return &f.plushes[i], nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakePlushRepo) CreatePlush(ctx context.Context, req model.CreatePlushRequest) (*model.Plush, error) {
	f.nextID++
	p := model.Plush{
		ID:          f.nextID,
		Character:   req.Character,
		Variation:   req.Variation,
		Set:         req.Set,
		ReleaseYear: *req.ReleaseYear,
	}
	f.plushes = append(f.plushes, p)
	return &p, nil
}

func (f *fakePlushRepo) SearchPlushes(ctx context.Context, req model.SearchRequest) (int, []model.Plush, error) {
	f.lastSearch = req
	return f.total, f.plushes, nil
}

func (f *fakePlushRepo) FilterPlushes(ctx context.Context, req model.FilterRequest) (int, []model.Plush, error) {
	f.lastFilter = req
	return f.total, f.plushes, nil
}

func newPlushRouter(repo *fakePlushRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPlushHandler(service.NewCatalogService(repo))

	r := gin.New()
	r.GET("/plushies/all", h.ListAll)
	r.GET("/plushies/:id", h.Get)
	r.GET("/plushies/", h.ListPage)
	r.POST("/plushies/", h.Create)
	r.GET("/search/", h.Search)
	r.GET("/filter/", h.Filter)
	return r
}

func TestGetPlushNotFound(t *testing.T) {
	r := newPlushRouter(&fakePlushRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plushies/99", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body model.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Detail != "Plush not found!" {
		t.Fatalf("detail = %q", body.Detail)
	}
}

func TestGetPlushNonIntegerID(t *testing.T) {
	r := newPlushRouter(&fakePlushRepo{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plushies/abc", nil))

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestCreatePlushValidation(t *testing.T) {
	r := newPlushRouter(&fakePlushRepo{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/plushies/", strings.NewReader(`{"character":"Pikachu"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
}

func TestCreatePlushReturnsIdentity(t *testing.T) {
	repo := &fakePlushRepo{}
	r := newPlushRouter(repo)

	w := httptest.NewRecorder()
	body := `{"character":"Pikachu","variation":"Holiday","set":"Winter","releaseyear":2004}`
	req := httptest.NewRequest(http.MethodPost, "/plushies/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var created model.Plush
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("created record must carry the assigned id")
	}
	if created.ReleaseYear != 2004 || created.Character != "Pikachu" {
		t.Fatalf("fields not echoed: %+v", created)
	}

	// the same id must round-trip through a lookup
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plushies/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("lookup after create: expected 200, got %d", w.Code)
	}
}

func TestCreatePlushZeroReleaseYear(t *testing.T) {
	r := newPlushRouter(&fakePlushRepo{})

	w := httptest.NewRecorder()
	body := `{"character":"Pikachu","variation":"Holiday","set":"Winter","releaseyear":0}`
	req := httptest.NewRequest(http.MethodPost, "/plushies/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("year 0 is valid, expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestSearchEnvelopeShape(t *testing.T) {
	repo := &fakePlushRepo{
		total:   25,
		plushes: []model.Plush{{ID: 11, Character: "Snorlax"}},
	}
	r := newPlushRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/search/?q=abc&skip=10", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var env model.PageEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.TotalPages != 3 || env.CurrentPage != 2 || env.Skip != 10 || env.Limit != 10 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if len(env.Results) != 1 || env.Results[0].ID != 11 {
		t.Fatalf("results not passed through: %+v", env.Results)
	}
	if repo.lastSearch.Q != "abc" {
		t.Fatalf("q not bound, got %q", repo.lastSearch.Q)
	}
}

func TestFilterZeroMinYearApplies(t *testing.T) {
	repo := &fakePlushRepo{total: 1}
	r := newPlushRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/filter/?min_year=0&characters=Snorlax", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if repo.lastFilter.MinYear == nil || *repo.lastFilter.MinYear != 0 {
		t.Fatalf("supplied zero bound must reach the query, got %v", repo.lastFilter.MinYear)
	}

	var res model.FilterResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Filters.MinYear == nil || *res.Filters.MinYear != 0 {
		t.Fatalf("filters must echo min_year=0, got %v", res.Filters.MinYear)
	}
	if len(res.Filters.Characters) != 1 || res.Filters.Characters[0] != "Snorlax" {
		t.Fatalf("filters must echo characters, got %v", res.Filters.Characters)
	}
}

func TestFilterOmittedBounds(t *testing.T) {
	repo := &fakePlushRepo{}
	r := newPlushRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/filter/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if repo.lastFilter.MinYear != nil || repo.lastFilter.MaxYear != nil {
		t.Fatal("omitted bounds must stay nil")
	}
}

func TestListAllReturnsArray(t *testing.T) {
	repo := &fakePlushRepo{plushes: []model.Plush{{ID: 1}, {ID: 2}}}
	r := newPlushRouter(repo)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plushies/all", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var list []model.Plush
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(list))
	}
}
