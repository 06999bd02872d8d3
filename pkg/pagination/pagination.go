package pagination

// Grid page length bounds.
const (
	DefaultLength = 15
	MaxLength     = 100
)

// Params holds page-window parameters for list queries.
type Params struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Offset  int `json:"-"`
}

// FromGrid converts a grid-style record offset (start) and page length into
// page parameters. Lengths outside [1, MaxLength] fall back to DefaultLength;
// negative offsets clamp to zero. A start that lands mid-page resolves to the
// page containing it.
func FromGrid(start, length int) Params {
	if length < 1 || length > MaxLength {
		length = DefaultLength
	}
	if start < 0 {
		start = 0
	}
	page := start/length + 1
	return Params{
		Page:    page,
		PerPage: length,
		Offset:  (page - 1) * length,
	}
}

// GridResult is the envelope for grid list responses. Total record counts are
// reported both as recordsTotal and recordsFiltered since no server-side
// search filter narrows the set.
type GridResult[T any] struct {
	CurrentPage     int `json:"current_page"`
	Data            []T `json:"data"`
	LastPage        int `json:"last_page"`
	PerPage         int `json:"per_page"`
	RecordsTotal    int `json:"recordsTotal"`
	RecordsFiltered int `json:"recordsFiltered"`
}

// NewGridResult creates a grid result for one page of data.
func NewGridResult[T any](data []T, total int, params Params) GridResult[T] {
	lastPage := total / params.PerPage
	if total%params.PerPage > 0 {
		lastPage++
	}
	if lastPage < 1 {
		lastPage = 1
	}
	if data == nil {
		data = []T{}
	}
	return GridResult[T]{
		CurrentPage:     params.Page,
		Data:            data,
		LastPage:        lastPage,
		PerPage:         params.PerPage,
		RecordsTotal:    total,
		RecordsFiltered: total,
	}
}
