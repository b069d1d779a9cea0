// Package dataset holds the static table of monitored cities.
//
// The table is produced offline (daily aggregation, K-Means clustering) and
// shipped as a JSON array of city records. It is loaded once per process and
// never mutated afterwards, so a Catalog can be shared freely between
// goroutines.
package dataset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/wellbreathe/backend/internal/domain"
)

//go:embed data/cities.json
var embeddedCities []byte

// Catalog is the read-only city table
type Catalog struct {
	records []domain.CityRecord
	sorted  []domain.CityRecord
	locale  language.Tag
}

// New validates records and builds a catalog ordered by the locale's collation
func New(records []domain.CityRecord, locale language.Tag) (*Catalog, error) {
	seen := make(map[string]struct{}, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.LocationName) == "" {
			return nil, eris.Errorf("dataset: record %d has no location_name", i)
		}
		if _, dup := seen[r.LocationName]; dup {
			return nil, eris.Errorf("dataset: duplicate location_name %q", r.LocationName)
		}
		seen[r.LocationName] = struct{}{}

		for _, day := range []domain.DayRecord{r.BestDay, r.WorstDay} {
			if day.EPA < 0 || day.EPA > domain.MaxEPAIndex {
				return nil, eris.Errorf("dataset: %s: epa index %d out of range", r.LocationName, day.EPA)
			}
		}
	}

	c := &Catalog{
		records: slices.Clone(records),
		sorted:  slices.Clone(records),
		locale:  locale,
	}
	SortByName(c.sorted, locale)
	return c, nil
}

// Load decodes a JSON array of city records
func Load(r io.Reader, locale language.Tag) (*Catalog, error) {
	var records []domain.CityRecord
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, eris.Wrap(err, "dataset: decode")
	}
	return New(records, locale)
}

// LoadFile reads the dataset from disk
func LoadFile(path string, locale language.Tag) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: open %s", path)
	}
	defer f.Close()

	return Load(f, locale)
}

// LoadEmbedded returns the sample table compiled into the binary
func LoadEmbedded(locale language.Tag) (*Catalog, error) {
	return Load(bytes.NewReader(embeddedCities), locale)
}

// Len returns the number of cities
func (c *Catalog) Len() int {
	return len(c.records)
}

// Locale returns the collation locale
func (c *Catalog) Locale() language.Tag {
	return c.locale
}

// Find looks a city up by exact location_name
func (c *Catalog) Find(name string) (domain.CityRecord, bool) {
	for _, r := range c.records {
		if r.LocationName == name {
			return r, true
		}
	}
	return domain.CityRecord{}, false
}

// Get is Find with a NotFoundError for missing names
func (c *Catalog) Get(name string) (domain.CityRecord, error) {
	r, ok := c.Find(name)
	if !ok {
		return domain.CityRecord{}, &domain.NotFoundError{Kind: "city", Name: name}
	}
	return r, nil
}

// All returns every city in collated name order
func (c *Catalog) All() []domain.CityRecord {
	return slices.Clone(c.sorted)
}

// Search returns cities whose name contains query, ignoring case, in collated order.
// An empty query matches everything.
func (c *Catalog) Search(query string) []domain.CityRecord {
	query = strings.TrimSpace(query)
	if query == "" {
		return c.All()
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []domain.CityRecord
	for _, r := range c.sorted {
		if strings.Contains(fold.String(r.LocationName), needle) {
			out = append(out, r)
		}
	}
	return out
}

// SortByName orders records by location_name using locale-aware collation.
// A Collator is not safe for concurrent use, so one is built per call.
func SortByName(records []domain.CityRecord, locale language.Tag) {
	col := collate.New(locale)
	slices.SortStableFunc(records, func(a, b domain.CityRecord) int {
		return col.CompareString(a.LocationName, b.LocationName)
	})
}
