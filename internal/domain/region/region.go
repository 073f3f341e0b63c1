package region

import (
	"fmt"
	"sort"
)

// District is a sub-zone of a region type carrying a demand coefficient
type District struct {
	Name        string
	Coefficient float64
}

// Region is a coarse zone category (residential, commercial, school...) with a base rent
type Region struct {
	Type      string
	BaseRent  int
	Districts []District
}

// District looks up a district of this region by name
func (r Region) District(name string) (District, bool) {
	for _, d := range r.Districts {
		if d.Name == name {
			return d, true
		}
	}
	return District{}, false
}

// Table maps region type → district → demand coefficient, plus region type → base rent.
//
// Invariants:
//   - every district coefficient is > 0
//   - every base rent is >= 0
//   - region types and district names are unique
//
// A Table is immutable once built.
type Table struct {
	regions []Region
	index   map[string]int
}

// NewTable validates the regions and builds an immutable Table
func NewTable(regions []Region) (*Table, error) {
	if len(regions) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		regions: make([]Region, 0, len(regions)),
		index:   make(map[string]int, len(regions)),
	}

	for _, r := range regions {
		if r.Type == "" {
			return nil, fmt.Errorf("%w: region type cannot be empty", ErrInvalidRegion)
		}
		if _, dup := t.index[r.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate region type %s", ErrInvalidRegion, r.Type)
		}
		if r.BaseRent < 0 {
			return nil, fmt.Errorf("%w: region %s has negative rent %d", ErrInvalidRegion, r.Type, r.BaseRent)
		}
		if len(r.Districts) == 0 {
			return nil, fmt.Errorf("%w: region %s has no districts", ErrInvalidRegion, r.Type)
		}

		seen := make(map[string]bool, len(r.Districts))
		districts := make([]District, len(r.Districts))
		for i, d := range r.Districts {
			if d.Name == "" || seen[d.Name] {
				return nil, fmt.Errorf("%w: region %s has an empty or duplicate district %q", ErrInvalidRegion, r.Type, d.Name)
			}
			if d.Coefficient <= 0 {
				return nil, &ErrInvalidCoefficient{RegionType: r.Type, District: d.Name, Coefficient: d.Coefficient}
			}
			seen[d.Name] = true
			districts[i] = d
		}

		t.index[r.Type] = len(t.regions)
		t.regions = append(t.regions, Region{Type: r.Type, BaseRent: r.BaseRent, Districts: districts})
	}

	return t, nil
}

// Regions returns a copy of all regions in load order
func (t *Table) Regions() []Region {
	out := make([]Region, len(t.regions))
	copy(out, t.regions)
	return out
}

// Types returns region type names in load order
func (t *Table) Types() []string {
	types := make([]string, len(t.regions))
	for i, r := range t.regions {
		types[i] = r.Type
	}
	return types
}

// Region looks up a region by type
func (t *Table) Region(regionType string) (Region, bool) {
	i, ok := t.index[regionType]
	if !ok {
		return Region{}, false
	}
	return t.regions[i], true
}

// BaseRent returns the base rent of a region type
func (t *Table) BaseRent(regionType string) (int, error) {
	r, ok := t.Region(regionType)
	if !ok {
		return 0, &ErrUnknownRegion{RegionType: regionType}
	}
	return r.BaseRent, nil
}

// Coefficient returns the demand coefficient of a district
func (t *Table) Coefficient(regionType, district string) (float64, error) {
	r, ok := t.Region(regionType)
	if !ok {
		return 0, &ErrUnknownRegion{RegionType: regionType}
	}
	d, ok := r.District(district)
	if !ok {
		return 0, &ErrUnknownRegion{RegionType: regionType, District: district}
	}
	return d.Coefficient, nil
}

// ByRent returns regions ordered by base rent, cheapest first.
// Ties keep load order.
func (t *Table) ByRent() []Region {
	out := t.Regions()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BaseRent < out[j].BaseRent
	})
	return out
}
