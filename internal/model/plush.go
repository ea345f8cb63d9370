package model

// Plush is one catalog row. The id is assigned by the store and never
// changes afterwards.
type Plush struct {
	ID          int64  `json:"id"`
	Character   string `json:"character"`
	Variation   string `json:"variation"`
	Set         string `json:"set"`
	ReleaseYear int    `json:"releaseyear"`
}

// CreatePlushRequest is the POST /plushies/ body. ReleaseYear is a pointer
// so that a supplied zero still satisfies the required binding.
type CreatePlushRequest struct {
	Character   string `json:"character" binding:"required"`
	Variation   string `json:"variation" binding:"required"`
	Set         string `json:"set" binding:"required"`
	ReleaseYear *int   `json:"releaseyear" binding:"required"`
}

// SearchRequest carries the GET /search/ query parameters. Empty strings
// mean the parameter was not supplied.
type SearchRequest struct {
	Q         string `form:"q"`
	Character string `form:"character"`
	Variation string `form:"variation"`
	Set       string `form:"set"`
	Skip      int    `form:"skip,default=0"`
	Limit     int    `form:"limit,default=10"`
}

// FilterRequest carries the GET /filter/ query parameters. The year bounds
// are pointers: a supplied zero must still apply the bound, so presence is
// tracked rather than truthiness.
type FilterRequest struct {
	Characters []string `form:"characters"`
	Variations []string `form:"variations"`
	Sets       []string `form:"sets"`
	MinYear    *int     `form:"min_year"`
	MaxYear    *int     `form:"max_year"`
	Skip       int      `form:"skip,default=0"`
	Limit      int      `form:"limit,default=10"`
}

// FilterInputs echoes the filter parameters back in the response.
type FilterInputs struct {
	Characters []string `json:"characters"`
	Variations []string `json:"variations"`
	Sets       []string `json:"sets"`
	MinYear    *int     `json:"min_year"`
	MaxYear    *int     `json:"max_year"`
}

// PageEnvelope is the pagination wrapper shared by search and filter.
type PageEnvelope struct {
	Skip        int     `json:"skip"`
	TotalPages  int     `json:"total_pages"`
	CurrentPage int     `json:"current_page"`
	Limit       int     `json:"limit"`
	Results     []Plush `json:"results"`
}

type FilterResponse struct {
	Filters FilterInputs `json:"filters"`
	PageEnvelope
}
