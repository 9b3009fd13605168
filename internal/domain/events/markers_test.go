package events

import (
	"testing"
	"time"
)

func TestSortMarkers(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 18, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	markers := []TimelineMarker{
		{ID: "untimed-b", Position: 3},
		{ID: "late", Timestamp: &t2, Position: 0},
		{ID: "untimed-a", Position: 1},
		{ID: "early-2", Timestamp: &t1, Position: 4},
		{ID: "early-1", Timestamp: &t1, Position: 2},
	}
	SortMarkers(markers)

	want := []string{"early-1", "early-2", "late", "untimed-a", "untimed-b"}
	for i, id := range want {
		if markers[i].ID != id {
			t.Fatalf("position %d = %s want %s", i, markers[i].ID, id)
		}
	}
}
