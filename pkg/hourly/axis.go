package hourly

import (
	"errors"
	"fmt"
)

const (
	// FirstHour is the first operating hour bucket (inclusive).
	FirstHour = 6
	// EndHour closes the operating range (exclusive).
	EndHour = 22
	// BucketCount is the number of one-hour buckets on the axis.
	BucketCount = EndHour - FirstHour
)

// ErrHourOutOfRange is returned by LabelFor for hours outside the operating range.
var ErrHourOutOfRange = errors.New("hour out of operating range")

var (
	axisLabels = buildLabels()
	axisIndex  = buildIndex(axisLabels)
)

func buildLabels() [BucketCount]string {
	var labels [BucketCount]string
	for h := FirstHour; h < EndHour; h++ {
		labels[h-FirstHour] = formatLabel(h)
	}
	return labels
}

func buildIndex(labels [BucketCount]string) map[string]int {
	index := make(map[string]int, len(labels))
	for i, label := range labels {
		index[label] = i
	}
	return index
}

func formatLabel(hour int) string {
	return fmt.Sprintf("%d:00 - %d:00", hour, hour+1)
}

// Labels returns the ordered operating-hour labels. The slice is a fresh copy.
func Labels() []string {
	out := make([]string, BucketCount)
	copy(out, axisLabels[:])
	return out
}

// LabelFor returns the canonical label for hour.
func LabelFor(hour int) (string, error) {
	if hour < FirstHour || hour >= EndHour {
		return "", fmt.Errorf("%w: %d", ErrHourOutOfRange, hour)
	}
	return axisLabels[hour-FirstHour], nil
}

// IndexOf reports the axis position of label.
func IndexOf(label string) (int, bool) {
	i, ok := axisIndex[label]
	return i, ok
}
