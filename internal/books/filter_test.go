package books

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []*Book {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return []*Book{
		{ID: 1, Title: "The Go Programming Language", Author: "Donovan", Category: "programming", Price: 30, CreatedAt: base},
		{ID: 2, Title: "Learning SQL", Author: "Beaulieu", Category: "programming", Price: 25, CreatedAt: base.Add(24 * time.Hour)},
		{ID: 3, Title: "Free Verse", Author: "Whitman", Category: "poetry", IsFree: true, CreatedAt: base.Add(48 * time.Hour)},
		{ID: 4, Title: "a quiet place", Author: "Someone", Category: "fiction", Price: 10, CreatedAt: base.Add(72 * time.Hour)},
	}
}

func bookIDs(books []*Book) []int {
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestFilterAndSort_Defaults(t *testing.T) {
	got := FilterAndSort(testCatalog(), ListFilter{})
	// newest first by default
	assert.Equal(t, []int{4, 3, 2, 1}, bookIDs(got))
}

func TestFilterAndSort_Query(t *testing.T) {
	catalog := testCatalog()

	got := FilterAndSort(catalog, ListFilter{Query: "go"})
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].ID)

	// author matches too, case insensitive
	got = FilterAndSort(catalog, ListFilter{Query: "WHITMAN"})
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ID)

	got = FilterAndSort(catalog, ListFilter{Query: "nothing-matches"})
	assert.Empty(t, got)
}

func TestFilterAndSort_Category(t *testing.T) {
	catalog := testCatalog()

	got := FilterAndSort(catalog, ListFilter{Category: "programming"})
	assert.Equal(t, []int{2, 1}, bookIDs(got))

	// "all" and empty both mean no category filter
	assert.Len(t, FilterAndSort(catalog, ListFilter{Category: "all"}), 4)
	assert.Len(t, FilterAndSort(catalog, ListFilter{Category: ""}), 4)
}

func TestFilterAndSort_Price(t *testing.T) {
	catalog := testCatalog()

	got := FilterAndSort(catalog, ListFilter{Price: PriceFilterFree})
	assert.Equal(t, []int{3}, bookIDs(got))

	got = FilterAndSort(catalog, ListFilter{Price: PriceFilterPaid})
	assert.Equal(t, []int{4, 2, 1}, bookIDs(got))
}

func TestFilterAndSort_Sorts(t *testing.T) {
	catalog := testCatalog()

	assert.Equal(t, []int{1, 2, 3, 4}, bookIDs(FilterAndSort(catalog, ListFilter{Sort: SortOldest})))
	assert.Equal(t, []int{3, 4, 2, 1}, bookIDs(FilterAndSort(catalog, ListFilter{Sort: SortPriceLow})))
	assert.Equal(t, []int{1, 2, 4, 3}, bookIDs(FilterAndSort(catalog, ListFilter{Sort: SortPriceHigh})))
	// title sort ignores case
	assert.Equal(t, []int{4, 3, 2, 1}, bookIDs(FilterAndSort(catalog, ListFilter{Sort: SortTitle})))
}

func TestFilterAndSort_Combined(t *testing.T) {
	got := FilterAndSort(testCatalog(), ListFilter{
		Category: "programming",
		Price:    PriceFilterPaid,
		Sort:     SortPriceLow,
	})
	assert.Equal(t, []int{2, 1}, bookIDs(got))
}
