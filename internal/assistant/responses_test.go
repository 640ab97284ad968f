package assistant

import "testing"

func TestTopListMessages(t *testing.T) {
	names := []string{"A", "B"}
	tests := []struct {
		genre string
		year  int
		want  string
		fail  string
	}{
		{genre: "isekai", year: 2021, want: "Here are some top Isekai anime from 2021: A, B.", fail: "I couldn't find any Isekai anime from 2021 right now."},
		{genre: "slice of life", want: "Here are some top Slice Of Life anime: A, B.", fail: "I couldn't find any Slice Of Life anime right now."},
		{genre: "general", year: 1998, want: "Here are some top anime from 1998: A, B.", fail: "I couldn't find any anime from 1998 right now."},
		{genre: "general", want: "Here are some top anime: A, B.", fail: "I couldn't find any anime right now."},
	}
	for _, tt := range tests {
		if got := topListMessage(tt.genre, tt.year, names); got != tt.want {
			t.Fatalf("topListMessage(%q, %d) = %q, want %q", tt.genre, tt.year, got, tt.want)
		}
		if got := topListFailure(tt.genre, tt.year); got != tt.fail {
			t.Fatalf("topListFailure(%q, %d) = %q, want %q", tt.genre, tt.year, got, tt.fail)
		}
	}
}

func TestJoinWithAnd(t *testing.T) {
	tests := map[string][]string{
		"":                  nil,
		"Sunrise":           {"Sunrise"},
		"Sunrise and Bones": {"Sunrise", "Bones"},
		"A, B and C":        {"A", "B", "C"},
	}
	for want, items := range tests {
		if got := joinWithAnd(items); got != want {
			t.Fatalf("joinWithAnd(%v) = %q, want %q", items, got, want)
		}
	}
}
