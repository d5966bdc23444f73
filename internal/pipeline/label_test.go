package pipeline

import "testing"

func TestDeriveLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/data/test_fixtures", "Test Fixtures"},
		{"/music/live-sessions.2024", "Live Sessions 2024"},
		{"/tmp/x", "X"},
		{"", "Untitled Batch"},
	}
	for _, tc := range cases {
		if got := deriveLabel(tc.in); got != tc.want {
			t.Fatalf("deriveLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
