package models

// Sort keys accepted by the candidate and search endpoints.
const (
	SortByDistance        = "distance"
	SortByAge             = "age"
	SortByFameRating      = "fame_rating"
	SortByCommonInterests = "common_interests"
)

// CandidateLimit caps the candidate list; the endpoint has no pagination.
const CandidateLimit = 50

// CandidateFilters constrains the recommendation query. Zero values mean
// "no constraint"; range and sort-key validation happens upstream.
type CandidateFilters struct {
	MinAge          int     `query:"min_age" validate:"omitempty,min=18,max=100"`
	MaxAge          int     `query:"max_age" validate:"omitempty,min=18,max=100"`
	MinFameRating   int     `query:"min_fame_rating" validate:"omitempty,min=0,max=100"`
	MaxFameRating   int     `query:"max_fame_rating" validate:"omitempty,min=0,max=100"`
	MinDistance     float64 `query:"min_distance" validate:"omitempty,min=0,max=20000"`
	MaxDistance     float64 `query:"max_distance" validate:"omitempty,min=0,max=20000"`
	CommonInterests int     `query:"common_interests" validate:"omitempty,min=0"`
	SortBy          string  `query:"sort_by" validate:"omitempty,oneof=distance age fame_rating common_interests"`
}

// SearchFilters extends the candidate filters with interest-tag filtering
// and explicit pagination for the search endpoint.
type SearchFilters struct {
	CandidateFilters
	Interests []string `query:"interests" validate:"omitempty,max=10,dive,min=1,max=50"`
	Page      int      `query:"page" validate:"omitempty,min=1"`
	Limit     int      `query:"limit" validate:"omitempty,min=1,max=50"`
}

// CandidateSummary is one entry of the ranked candidate list. Interests
// carries the candidate's own tags so the caller can render the overlap.
type CandidateSummary struct {
	ID             uint     `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	ProfilePicture string   `json:"profile_picture"`
	Age            int      `json:"age"`
	Gender         string   `json:"gender"`
	FameRating     int      `json:"fame_rating"`
	Biography      string   `json:"biography"`
	Latitude       float64  `json:"latitude"`
	Longitude      float64  `json:"longitude"`
	Distance       float64  `json:"distance"`
	Interests      []string `json:"interests"`
	CommonCount    int      `json:"common_interests"`
}
