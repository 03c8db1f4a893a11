package books

import (
	"sort"
	"strings"
)

const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortTitle     = "title"

	PriceFilterFree = "free"
	PriceFilterPaid = "paid"
)

// ListFilter narrows and orders the catalog the way the storefront list
// page does, the whole catalog is small enough to do this in memory.
type ListFilter struct {
	Query    string
	Category string
	Price    string
	Sort     string
}

func FilterAndSort(books []*Book, filter ListFilter) []*Book {
	filtered := make([]*Book, 0, len(books))

	query := strings.ToLower(filter.Query)
	for _, book := range books {
		if query != "" &&
			!strings.Contains(strings.ToLower(book.Title), query) &&
			!strings.Contains(strings.ToLower(book.Author), query) {
			continue
		}
		if filter.Category != "" && filter.Category != "all" && book.Category != filter.Category {
			continue
		}
		if filter.Price == PriceFilterFree && !book.IsFree {
			continue
		}
		if filter.Price == PriceFilterPaid && book.IsFree {
			continue
		}
		filtered = append(filtered, book)
	}

	switch filter.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case SortPriceLow:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price < filtered[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].Price > filtered[j].Price
		})
	case SortTitle:
		sort.SliceStable(filtered, func(i, j int) bool {
			return strings.ToLower(filtered[i].Title) < strings.ToLower(filtered[j].Title)
		})
	default:
		// newest first
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
		})
	}

	return filtered
}
