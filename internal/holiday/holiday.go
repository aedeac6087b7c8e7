// Package holiday maps calendar dates to public holiday names so views
// can mark them. The built-in set covers Korean public holidays; a YAML
// file can extend or override it.
package holiday

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/haeun-lim/haru/internal/calendar"
)

// Map keys holiday names by YYYY-MM-DD date.
type Map map[string]string

// Name returns the holiday name for a date, if any.
func (m Map) Name(date string) (string, bool) {
	name, ok := m[date]
	return name, ok
}

// ForMonth returns the dates in the given month that are holidays, in
// ascending date order.
func (m Map) ForMonth(year, month int) []string {
	dates := []string{}
	for day := 1; day <= calendar.DaysInMonth(year, month); day++ {
		date := fmt.Sprintf("%04d-%02d-%02d", year, month, day)
		if _, ok := m[date]; ok {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates
}

// LoadFile reads a YAML holiday file (a date-to-name mapping) and merges
// it over the built-in defaults. File entries win on conflict.
func LoadFile(path string) (Map, error) {
	m := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading holidays file: %w", err)
	}

	extra := map[string]string{}
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, fmt.Errorf("parsing holidays file: %w", err)
	}

	for date, name := range extra {
		if !calendar.ParseDate(date).Valid() {
			return nil, fmt.Errorf("holidays file: invalid date %q", date)
		}
		m[date] = name
	}
	return m, nil
}
