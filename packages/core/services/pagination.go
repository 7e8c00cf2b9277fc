package services

// paginate returns the slice bounds of a 1-based page and the page count.
func paginate(total, page, pageSize int) (start, end, totalPages int) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page < 1 {
		page = 1
	}

	totalPages = (total + pageSize - 1) / pageSize

	start = (page - 1) * pageSize
	if start > total {
		start = total
	}
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end, totalPages
}
