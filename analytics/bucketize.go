package analytics

import "math"

// Priced is a booking record that can report the price of its event.
// ok is false when the record has no usable price.
type Priced interface {
	EventPrice() (price float64, ok bool)
}

// ChartData holds one count per bucket, in bucket order.
type ChartData struct {
	Labels   []string `json:"labels"`
	Datasets []int    `json:"datasets"`
}

// Total is the number of records that fell into some bucket.
func (d ChartData) Total() int {
	total := 0
	for _, n := range d.Datasets {
		total += n
	}
	return total
}

// Max is the largest bucket count, 0 for empty data.
func (d ChartData) Max() int {
	max := 0
	for _, n := range d.Datasets {
		if n > max {
			max = n
		}
	}
	return max
}

// Bucketize counts the records falling strictly inside each bucket.
// Records without a finite price are counted nowhere.
func Bucketize[T Priced](records []T, buckets BucketSet) ChartData {
	data := ChartData{
		Labels:   make([]string, len(buckets)),
		Datasets: make([]int, len(buckets)),
	}
	for i, b := range buckets {
		data.Labels[i] = b.Label
	}

	for _, r := range records {
		price, ok := r.EventPrice()
		if !ok || math.IsNaN(price) || math.IsInf(price, 0) {
			continue
		}
		for i, b := range buckets {
			if b.Contains(price) {
				data.Datasets[i]++
			}
		}
	}
	return data
}
