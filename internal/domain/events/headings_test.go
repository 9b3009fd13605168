package events

import "testing"

func TestHeadings(t *testing.T) {
	src := "# Demo Night\n\nIntro text.\n\n## Schedule\n\n### Doors open!\n\n## Schedule\n\nplain paragraph\n"

	got := Headings(src)
	want := []Heading{
		{Depth: 1, Text: "Demo Night", ID: "demo-night"},
		{Depth: 2, Text: "Schedule", ID: "schedule"},
		{Depth: 3, Text: "Doors open!", ID: "doors-open"},
		{Depth: 2, Text: "Schedule", ID: "schedule-1"},
	}
	if len(got) != len(want) {
		t.Fatalf("len=%d want %d: %#v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("heading %d = %#v want %#v", i, got[i], want[i])
		}
	}
}

func TestHeadingsEmpty(t *testing.T) {
	if got := Headings("no headings here"); len(got) != 0 {
		t.Fatalf("expected no headings, got %#v", got)
	}
}

func TestSluggerDuplicates(t *testing.T) {
	var s Slugger
	for i, want := range []string{"faq", "faq-1", "faq-2"} {
		if got := s.Slug("FAQ"); got != want {
			t.Fatalf("call %d: got %q want %q", i, got, want)
		}
	}
	if got := s.Slug("faq 1"); got != "faq-1-1" {
		t.Fatalf("got %q want faq-1-1", got)
	}
}
