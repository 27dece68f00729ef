package listing

import "github.com/anitrack-cli/anitrack/constant"

// TotalPages is ceil(count / ItemsPerPage). No items means no pages.
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + constant.ItemsPerPage - 1) / constant.ItemsPerPage
}

// Range returns the inclusive, 1-based item range of page.
func Range(page int) (start, end int) {
	start = (page-1)*constant.ItemsPerPage + 1
	end = page * constant.ItemsPerPage
	return
}

// Clamp limits page to [1, total]. With no pages it returns 1.
func Clamp(page, total int) int {
	if total <= 0 || page < 1 {
		return 1
	}
	if page > total {
		return total
	}
	return page
}
