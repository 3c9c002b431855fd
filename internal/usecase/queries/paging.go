package queries

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Page struct {
	Number int
	Size   int
}

// Normalize clamps out-of-range paging values instead of rejecting them, so
// every caller gets the same contract.
func (p Page) Normalize() Page {
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

type SortField string

const (
	SortByDate   SortField = "date"
	SortByStatus SortField = "status"
)

func (f SortField) IsValid() bool {
	return f == SortByDate || f == SortByStatus
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) IsValid() bool {
	return d == SortAsc || d == SortDesc
}

type Sort struct {
	Field     SortField
	Direction SortDirection
}

// Normalize falls back to date descending for unknown values, so the default
// listing shows the newest requests first.
func (s Sort) Normalize() Sort {
	if !s.Field.IsValid() {
		s.Field = SortByDate
	}
	if !s.Direction.IsValid() {
		s.Direction = SortDesc
	}
	return s
}
