// Package stats loads the daily lines-shipped numbers and lays them out as a
// grouped bar chart.
package stats

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// Day holds one day of per-developer values.
type Day struct {
	Date   string
	Values map[string]float64
	// devs lists the value keys in sorted order.
	devs []string
}

// Value returns the developer's value for the day, 0 when absent.
func (d Day) Value(dev string) float64 { return d.Values[dev] }

// Stats is the content of stats.json.
type Stats struct {
	Daily       []Day
	LastUpdated string
}

// Empty reports whether there is nothing to chart.
func (s Stats) Empty() bool { return len(s.Daily) == 0 }

type rawStats struct {
	Daily       []map[string]interface{} `json:"daily"`
	LastUpdated interface{}              `json:"lastUpdated"`
}

// Load reads stats from path. A missing file yields empty stats and no error.
func Load(path string) (Stats, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, nil
		}
		return Stats{}, fmt.Errorf("reading stats file: %w", err)
	}
	return Parse(data)
}

// Parse decodes stats JSON. Values may be numbers or numeric strings; anything
// else counts as 0.
func Parse(data []byte) (Stats, error) {
	var raw rawStats
	if err := jsoniter.Unmarshal(data, &raw); err != nil {
		return Stats{}, fmt.Errorf("parsing stats: %w", err)
	}

	s := Stats{LastUpdated: cast.ToString(raw.LastUpdated)}
	for _, row := range raw.Daily {
		day := Day{Values: make(map[string]float64, len(row))}
		for k, v := range row {
			if k == "date" {
				day.Date = cast.ToString(v)
				continue
			}
			f, err := cast.ToFloat64E(v)
			if err != nil {
				f = 0
			}
			day.Values[k] = f
			day.devs = append(day.devs, k)
		}
		sort.Strings(day.devs)
		s.Daily = append(s.Daily, day)
	}

	return s, nil
}

// DevNames returns every developer that appears in any day, in first-seen
// order across days.
func (s Stats) DevNames() []string {
	var names []string
	seen := make(map[string]bool)
	for _, d := range s.Daily {
		for _, dev := range d.devs {
			if !seen[dev] {
				seen[dev] = true
				names = append(names, dev)
			}
		}
	}
	return names
}

// Total sums a developer's values over all days.
func (s Stats) Total(dev string) float64 {
	var total float64
	for _, d := range s.Daily {
		total += d.Value(dev)
	}
	return total
}
