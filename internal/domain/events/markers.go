package events

import "sort"

// SortMarkers orders markers for display: timestamp ascending, untimed markers
// after timed ones, ties broken by submitted position and then id.
func SortMarkers(markers []TimelineMarker) {
	sort.SliceStable(markers, func(i, j int) bool {
		a, b := markers[i], markers[j]
		switch {
		case a.Timestamp != nil && b.Timestamp == nil:
			return true
		case a.Timestamp == nil && b.Timestamp != nil:
			return false
		case a.Timestamp != nil && b.Timestamp != nil && !a.Timestamp.Equal(*b.Timestamp):
			return a.Timestamp.Before(*b.Timestamp)
		}
		if a.Position != b.Position {
			return a.Position < b.Position
		}
		return a.ID < b.ID
	})
}
