package helpers

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
	DefaultPage     = 1 // Default page is 1-based
)

// NormalizePage clamps a 1-based page and a page size to the accepted range
func NormalizePage(page, size int) (int, int) {
	if size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}
	return page, size
}

// TotalPages is the number of pages needed for totalItems, at least 1
func TotalPages(totalItems, size int) int {
	_, size = NormalizePage(DefaultPage, size)
	if totalItems <= 0 {
		return 1
	}
	return (totalItems + size - 1) / size
}

// CalculateSliceIndices calculates the start and end indices for slicing an array for pagination
func CalculateSliceIndices(page, size, totalItems int) (start, end int) {
	page, size = NormalizePage(page, size)
	if page-1 >= (totalItems+size-1)/size {
		return totalItems, totalItems
	}

	start = (page - 1) * size
	end = start + size

	if end > totalItems {
		end = totalItems
	}
	return start, end
}
