package analytics

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// PriceBucket is a named open price range (Min, Max).
type PriceBucket struct {
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Contains reports whether price lies strictly inside the bucket.
// A price equal to either bound is not contained.
func (b PriceBucket) Contains(price float64) bool {
	return price > b.Min && price < b.Max
}

// BucketSet is an ordered list of buckets. Order is the order of the
// chart labels.
type BucketSet []PriceBucket

// DefaultBuckets returns a fresh copy of the standard price ranges.
func DefaultBuckets() BucketSet {
	return BucketSet{
		{Label: "Cheap", Min: 0, Max: 100},
		{Label: "Normal", Min: 100, Max: 200},
		{Label: "Expensive", Min: 200, Max: 1000000},
	}
}

// ParseBuckets parses "Label:min:max" entries separated by commas.
func ParseBuckets(text string) (BucketSet, error) {
	var set BucketSet
	if err := set.UnmarshalText([]byte(text)); err != nil {
		return nil, err
	}
	return set, nil
}

// UnmarshalText parses the "Label:min:max,..." form, so a BucketSet can
// be read directly from the environment.
func (s *BucketSet) UnmarshalText(text []byte) error {
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return errors.New("bucket list is empty")
	}

	var set BucketSet
	for _, entry := range strings.Split(raw, ",") {
		parts := strings.Split(strings.TrimSpace(entry), ":")
		if len(parts) != 3 {
			return fmt.Errorf("bucket %q: want label:min:max", entry)
		}
		min, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return fmt.Errorf("bucket %q: min: %w", entry, err)
		}
		max, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil {
			return fmt.Errorf("bucket %q: max: %w", entry, err)
		}
		set = append(set, PriceBucket{Label: strings.TrimSpace(parts[0]), Min: min, Max: max})
	}

	if err := set.Validate(); err != nil {
		return err
	}
	*s = set
	return nil
}

// Validate checks labels are present and unique, every range is
// non-empty and no two ranges overlap. Ranges may share a bound.
func (s BucketSet) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, b := range s {
		if b.Label == "" {
			return errors.New("bucket label is required")
		}
		if _, dup := seen[b.Label]; dup {
			return fmt.Errorf("bucket %q is defined twice", b.Label)
		}
		seen[b.Label] = struct{}{}
		if !(b.Min < b.Max) {
			return fmt.Errorf("bucket %q: min %v must be below max %v", b.Label, b.Min, b.Max)
		}
	}

	sorted := append(BucketSet(nil), s...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Min < sorted[j].Min })
	for i := 1; i < len(sorted); i++ {
		prev, cur := sorted[i-1], sorted[i]
		if cur.Min < prev.Max {
			return fmt.Errorf("bucket %q overlaps bucket %q", cur.Label, prev.Label)
		}
	}
	return nil
}

func (s BucketSet) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.Label + ":" +
			strconv.FormatFloat(b.Min, 'f', -1, 64) + ":" +
			strconv.FormatFloat(b.Max, 'f', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Labels returns the bucket labels in order.
func (s BucketSet) Labels() []string {
	labels := make([]string, len(s))
	for i, b := range s {
		labels[i] = b.Label
	}
	return labels
}
