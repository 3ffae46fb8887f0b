package service

import "strconv"

// PostsPerPage is the fixed page size for post listings.
const PostsPerPage = 5

// ParsePageNumber converts the raw ?page= query value into a usable page
// number. Non-numeric values and values below 1 fall back to page 1;
// clamping against the last page happens once the total count is known.
func ParsePageNumber(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// numPages returns the page count for a result set. An empty set still has
// one (empty) page.
func numPages(count int64, pageSize int) int {
	if count <= 0 {
		return 1
	}
	pages := int(count) / pageSize
	if int(count)%pageSize != 0 {
		pages++
	}
	return pages
}

// clampPage pins an out-of-range page number to the nearest valid page.
func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}
