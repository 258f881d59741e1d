// Package ratingview projects a fetched rating list for table display:
// free-text search, discrete filters, sorting. It owns no persistence; the
// visible-column preference is stored on the user profile and never affects
// the projection.
package ratingview

import (
	"sort"
	"strings"

	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
)

// Row is the flattened table row the projection operates on, denormalized
// from a rating and its preloaded wine associations.
type Row struct {
	RatingID      uint
	WineID        uint
	WineName      string
	ProducerID    uint
	ProducerName  string
	WineType      model.WineType
	Vintage       *uint64
	CountryID     *uint
	CountryName   string
	RegionID      *uint
	RegionName    string
	AppellationID *uint
	Score         int
	TastedAt      int64 // unix seconds
}

type SortKey string

const (
	SortByName       SortKey = "name"
	SortByProducer   SortKey = "producer"
	SortByVintage    SortKey = "vintage"
	SortByType       SortKey = "type"
	SortByRating     SortKey = "rating"
	SortByTastedDate SortKey = "tastedDate"
)

// Filters are exact-match column filters; nil means wildcard. Active filters
// combine with logical AND.
type Filters struct {
	Vintage       *uint64
	WineType      *model.WineType
	CountryID     *uint
	RegionID      *uint
	AppellationID *uint
	ProducerID    *uint
}

type Params struct {
	Search     string
	Filters    Filters
	SortKey    SortKey
	Descending bool
}

// Project returns the rows matching the search term and filters, ordered by
// the sort key. It is deterministic for fixed inputs; ties keep the input
// order.
func Project(rows []Row, params Params) []Row {
	result := make([]Row, 0, len(rows))

	term := strings.ToLower(strings.TrimSpace(params.Search))

	for _, row := range rows {
		if term != "" && !matchesSearch(row, term) {
			continue
		}

		if !matchesFilters(row, params.Filters) {
			continue
		}

		result = append(result, row)
	}

	sortRows(result, params.SortKey, params.Descending)

	return result
}

// matchesSearch matches the term case-insensitively as a substring of wine
// name, producer, region or country, OR across fields.
func matchesSearch(row Row, term string) bool {
	for _, field := range []string{row.WineName, row.ProducerName, row.RegionName, row.CountryName} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}

	return false
}

//nolint:cyclop // one guard per optional filter
func matchesFilters(row Row, filters Filters) bool {
	if filters.Vintage != nil && (row.Vintage == nil || *row.Vintage != *filters.Vintage) {
		return false
	}

	if filters.WineType != nil && row.WineType != *filters.WineType {
		return false
	}

	if filters.CountryID != nil && (row.CountryID == nil || *row.CountryID != *filters.CountryID) {
		return false
	}

	if filters.RegionID != nil && (row.RegionID == nil || *row.RegionID != *filters.RegionID) {
		return false
	}

	if filters.AppellationID != nil && (row.AppellationID == nil || *row.AppellationID != *filters.AppellationID) {
		return false
	}

	if filters.ProducerID != nil && row.ProducerID != *filters.ProducerID {
		return false
	}

	return true
}

func sortRows(rows []Row, key SortKey, descending bool) {
	if key == "" {
		return
	}

	less := lessFunc(key)
	if less == nil {
		return
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if descending {
			return less(rows[j], rows[i])
		}

		return less(rows[i], rows[j])
	})
}

// Numeric keys sort numerically, the rest by case-sensitive lexicographic
// comparison. A missing vintage sorts as zero.
func lessFunc(key SortKey) func(a, b Row) bool {
	switch key {
	case SortByName:
		return func(a, b Row) bool { return a.WineName < b.WineName }
	case SortByProducer:
		return func(a, b Row) bool { return a.ProducerName < b.ProducerName }
	case SortByType:
		return func(a, b Row) bool { return a.WineType < b.WineType }
	case SortByVintage:
		return func(a, b Row) bool { return vintageOrZero(a) < vintageOrZero(b) }
	case SortByRating:
		return func(a, b Row) bool { return a.Score < b.Score }
	case SortByTastedDate:
		return func(a, b Row) bool { return a.TastedAt < b.TastedAt }
	}

	return nil
}

func vintageOrZero(row Row) uint64 {
	if row.Vintage == nil {
		return 0
	}

	return *row.Vintage
}

// RowFromRating flattens a rating with preloaded associations into a table
// row.
func RowFromRating(rating model.Rating) Row {
	row := Row{
		RatingID:      rating.ID,
		WineID:        rating.WineID,
		WineName:      rating.Wine.Name,
		ProducerID:    rating.Wine.ProducerID,
		ProducerName:  rating.Wine.Producer.Name,
		WineType:      rating.Wine.WineType,
		Vintage:       rating.Vintage,
		CountryID:     rating.Wine.CountryID,
		RegionID:      rating.Wine.RegionID,
		AppellationID: rating.Wine.AppellationID,
		Score:         rating.Score,
		TastedAt:      rating.TastedAt.Unix(),
	}

	if rating.Wine.Country != nil {
		row.CountryName = rating.Wine.Country.Name
	}

	if rating.Wine.Region != nil {
		row.RegionName = rating.Wine.Region.Name
	}

	return row
}

// Columns lists the valid column keys for the rating table. The set a user
// keeps visible is a stored preference only.
var Columns = []string{"name", "producer", "vintage", "type", "country", "region", "appellation", "rating", "tastedDate"}

// ValidColumns reports whether every key names a known column.
func ValidColumns(keys []string) bool {
	known := make(map[string]struct{}, len(Columns))

	for _, column := range Columns {
		known[column] = struct{}{}
	}

	for _, key := range keys {
		if _, found := known[key]; !found {
			return false
		}
	}

	return true
}
