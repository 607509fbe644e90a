// ABOUTME: Pure filter, sort, and pagination over loaded records
// ABOUTME: Matches search text against scalar fields and sorts with locale collation
package controller

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/harperreed/freightdesk/models"
)

var timestampKeys = map[string]bool{"created_at": true, "updated_at": true}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

type row[T any] struct {
	item   T
	fields map[string]any
}

func derive[T any](items []T, query, sortBy string, desc bool) []T {
	rows := make([]row[T], 0, len(items))
	needle := strings.ToLower(query)
	for _, item := range items {
		fields := models.Fields(item)
		if needle != "" && !matches(fields, needle) {
			continue
		}
		rows = append(rows, row[T]{item: item, fields: fields})
	}

	// Collators are not safe for concurrent use.
	col := collate.New(language.English)
	sort.SliceStable(rows, func(i, j int) bool {
		c := compareValues(col, sortBy, rows[i].fields[sortBy], rows[j].fields[sortBy])
		if desc {
			return c > 0
		}
		return c < 0
	})

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out
}

// matches reports whether any scalar field contains needle.
// Nested collections are not searched.
func matches(fields map[string]any, needle string) bool {
	for _, v := range fields {
		var s string
		switch val := v.(type) {
		case string:
			s = val
		case float64:
			s = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			s = strconv.FormatBool(val)
		default:
			continue
		}
		if strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

// compareValues orders two field values. Strings use collation, numbers
// compare numerically, timestamps compare chronologically when both parse.
// Values of different kinds compare equal so the stable sort keeps their order.
func compareValues(col *collate.Collator, key string, a, b any) int {
	if a == nil {
		a = ""
	}
	if b == nil {
		b = ""
	}

	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		if !ok {
			return 0
		}
		if timestampKeys[key] {
			ta, errA := parseTime(av)
			tb, errB := parseTime(bv)
			if errA == nil && errB == nil {
				return ta.Compare(tb)
			}
		}
		return col.CompareString(av, bv)
	case float64:
		bv, ok := b.(float64)
		if !ok {
			return 0
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return 0
}

func parseTime(s string) (time.Time, error) {
	var err error
	for _, layout := range timeLayouts {
		var t time.Time
		if t, err = time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}

func paginate[T any](items []T, page int) []T {
	if page < 1 {
		page = 1
	}
	start := (page - 1) * RowsPerPage
	if start >= len(items) {
		return []T{}
	}
	end := start + RowsPerPage
	if end > len(items) {
		end = len(items)
	}
	return append([]T(nil), items[start:end]...)
}

func totalPages(n int) int {
	return (n + RowsPerPage - 1) / RowsPerPage
}
