package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 12
	// MaxLimit caps how many rows any page can request.
	MaxLimit = 100
	// FirstPage is the 1-based index of the first page.
	FirstPage = 1
)

// Params holds page-number pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Window is a resolved page: normalized inputs plus the slice bounds to apply.
type Window struct {
	Page  int
	Limit int
	Start int
	End   int
}

// NormalizeLimit enforces the default and maximum limits.
func NormalizeLimit(limit int) int {
	return NormalizeLimitWith(limit, DefaultLimit, MaxLimit)
}

// NormalizeLimitWith enforces caller-provided default and maximum limits.
func NormalizeLimitWith(limit, def, max int) int {
	if def <= 0 {
		def = DefaultLimit
	}
	if max <= 0 {
		max = MaxLimit
	}
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

// NormalizePage clamps page numbers below one to the first page.
func NormalizePage(page int) int {
	if page < FirstPage {
		return FirstPage
	}
	return page
}

// Resolve turns params into slice bounds over a collection of total items.
// Pages past the end produce an empty window.
func Resolve(params Params, total int) Window {
	page := NormalizePage(params.Page)
	limit := NormalizeLimit(params.Limit)
	return window(page, limit, total)
}

// ResolveWith is Resolve with caller-provided limit bounds.
func ResolveWith(params Params, total, def, max int) Window {
	page := NormalizePage(params.Page)
	limit := NormalizeLimitWith(params.Limit, def, max)
	return window(page, limit, total)
}

func window(page, limit, total int) Window {
	if total < 0 {
		total = 0
	}
	start := total
	if page-1 < TotalPages(total, limit) {
		start = (page - 1) * limit
	}
	end := total
	if limit < total-start {
		end = start + limit
	}
	return Window{Page: page, Limit: limit, Start: start, End: end}
}

// TotalPages returns how many pages of size limit cover total items.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return pages
}
