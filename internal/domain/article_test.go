package domain

import "testing"

func TestParseArticleType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    ArticleType
		wantErr bool
	}{
		{"spotlight", TypeSpotlight, false},
		{"comparison", TypeComparison, false},
		{"lifestyle", TypeLifestyle, false},
		{"guide", TypeGuide, false},
		{"", TypeSpotlight, false},
		{"listicle", "", true},
		{"Spotlight", "", true},
	}
	for _, tc := range cases {
		got, err := ParseArticleType(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseArticleType(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseArticleType(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseArticleType(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestMinWordCount(t *testing.T) {
	t.Parallel()

	if got := TypeComparison.MinWordCount(); got != 700 {
		t.Fatalf("comparison minimum = %d, want 700", got)
	}
	for _, articleType := range []ArticleType{TypeSpotlight, TypeLifestyle, TypeGuide} {
		if got := articleType.MinWordCount(); got != 600 {
			t.Fatalf("%s minimum = %d, want 600", articleType, got)
		}
	}
}

func TestTrackedPath(t *testing.T) {
	t.Parallel()

	if got := TrackedPath(42); got != "/go/42" {
		t.Fatalf("TrackedPath(42) = %q", got)
	}
}
