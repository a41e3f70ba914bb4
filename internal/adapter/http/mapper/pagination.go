package mapper

import (
	"strconv"
	"strings"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/core/domain"
)

const (
	// Page links shown on each side of the current page once the window slides.
	linksOnEachSide = 3

	previousLabel = "&laquo; Previous"
	nextLabel     = "Next &raquo;"
	gapLabel      = "..."
)

// ToTaskCollection wraps a page of tasks with the links and meta blocks
// existing clients paginate with. path is the absolute listing URL without a
// query string.
func ToTaskCollection(page domain.TaskPage, path string) dto.TaskCollectionResponse {
	lastPage := page.LastPage()
	current := page.Page

	links := dto.PaginationLinks{
		First: pageURL(path, 1),
		Last:  pageURL(path, lastPage),
	}
	if current > 1 {
		prev := pageURL(path, current-1)
		links.Prev = &prev
	}
	if current < lastPage {
		next := pageURL(path, current+1)
		links.Next = &next
	}

	meta := dto.PaginationMeta{
		CurrentPage: current,
		LastPage:    lastPage,
		Links:       pageLinks(path, current, lastPage, links.Prev, links.Next),
		Path:        path,
		PerPage:     page.PerPage,
		Total:       page.Total,
	}
	if count := len(page.Items); count > 0 {
		from := (current-1)*page.PerPage + 1
		to := from + count - 1
		meta.From = &from
		meta.To = &to
	}

	return dto.TaskCollectionResponse{
		Data:  ToTaskItems(page.Items),
		Links: links,
		Meta:  meta,
	}
}

func pageURL(path string, page int) string {
	separator := "?"
	if strings.Contains(path, "?") {
		separator = "&"
	}
	return path + separator + "page=" + strconv.Itoa(page)
}

func pageLinks(path string, current, lastPage int, prev, next *string) []dto.PageLink {
	links := []dto.PageLink{{URL: prev, Label: previousLabel}}

	for _, block := range pageWindow(current, lastPage) {
		if block == nil {
			links = append(links, dto.PageLink{Label: gapLabel})
			continue
		}
		for _, page := range block {
			url := pageURL(path, page)
			links = append(links, dto.PageLink{
				URL:    &url,
				Label:  strconv.Itoa(page),
				Active: page == current,
			})
		}
	}

	return append(links, dto.PageLink{URL: next, Label: nextLabel})
}

// pageWindow returns the page-number blocks to render; a nil block stands for
// a "..." gap between two blocks.
func pageWindow(current, lastPage int) [][]int {
	if lastPage < linksOnEachSide*2+8 {
		return [][]int{pageRange(1, lastPage)}
	}

	window := linksOnEachSide + 4
	start := pageRange(1, 2)
	finish := pageRange(lastPage-1, lastPage)

	switch {
	case current <= window:
		return [][]int{pageRange(1, window+linksOnEachSide), nil, finish}
	case current > lastPage-window:
		return [][]int{start, nil, pageRange(lastPage-(window+linksOnEachSide-1), lastPage)}
	default:
		return [][]int{start, nil, pageRange(current-linksOnEachSide, current+linksOnEachSide), nil, finish}
	}
}

func pageRange(from, to int) []int {
	pages := make([]int, 0, to-from+1)
	for page := from; page <= to; page++ {
		pages = append(pages, page)
	}
	return pages
}
