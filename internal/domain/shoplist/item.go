package shoplist

import (
	"sort"

	"foodgram/internal/pkg/apperr"
)

const (
	FormatPDF = "pdf"
	FormatTXT = "txt"
)

var ErrUnknownFormat = apperr.Validation("UNKNOWN_FORMAT", "format must be one of: pdf, txt")

// Line is one ingredient line of one recipe in a user's cart.
type Line struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Item is a summed entry of the shopping list.
type Item struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

// Aggregate sums lines by (name, unit) and orders the result by amount
// descending, then name, then unit.
func Aggregate(lines []Line) []Item {
	type key struct{ name, unit string }
	index := make(map[key]int, len(lines))
	items := make([]Item, 0, len(lines))

	for _, l := range lines {
		k := key{l.Name, l.MeasurementUnit}
		if i, ok := index[k]; ok {
			items[i].Amount += l.Amount
			continue
		}
		index[k] = len(items)
		items = append(items, Item{Name: l.Name, MeasurementUnit: l.MeasurementUnit, Amount: l.Amount})
	}

	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Amount != b.Amount {
			return a.Amount > b.Amount
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.MeasurementUnit < b.MeasurementUnit
	})
	return items
}
