package area

import "testing"

func TestResolveFullPrefectureNames(t *testing.T) {
	for name, want := range prefectureSlugs {
		slug, ok := Resolve(name)
		if !ok {
			t.Errorf("Resolve(%q) missed, want %q", name, want)
			continue
		}
		if slug != want {
			t.Errorf("Resolve(%q) = %q, want %q", name, slug, want)
		}
	}
}

func TestResolveCityAliases(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"東京", "tokyo"},
		{"大阪", "osaka"},
		{"京都", "kyoto"},
		{"北海道", "hokkaido"},
		{"福岡", "fukuoka"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := Resolve(tt.name)
			if !ok || slug != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, true)", tt.name, slug, ok, tt.want)
			}
		})
	}
}

func TestResolveSuffixStripping(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"city suffix reveals alias", "大阪市", "osaka"},
		{"fu suffix reveals alias", "大阪府", "osaka"},
		{"kyoto city", "京都市", "kyoto"},
		{"fukuoka city resolves through alias", "福岡市", "fukuoka"},
		{"tokyo-to resolves exactly before stripping", "東京都", "tokyo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slug, ok := Resolve(tt.input)
			if !ok || slug != tt.want {
				t.Errorf("Resolve(%q) = (%q, %v), want (%q, true)", tt.input, slug, ok, tt.want)
			}
		})
	}
}

func TestResolveMisses(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"unknown token", "unknown-token"},
		{"leading whitespace is not trimmed", " 東京"},
		{"trailing whitespace is not trimmed", "東京 "},
		{"unknown city", "横浜市"},
		{"suffix alone", "県"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if slug, ok := Resolve(tt.input); ok {
				t.Errorf("Resolve(%q) = (%q, true), want miss", tt.input, slug)
			}
		})
	}
}

func TestAliasSlugsAreSubsetOfPrefectureSlugs(t *testing.T) {
	known := map[string]bool{}
	for _, slug := range prefectureSlugs {
		known[slug] = true
	}
	for name, slug := range cityAliases {
		if !known[slug] {
			t.Errorf("alias %q resolves to %q, which is not a prefecture slug", name, slug)
		}
	}
}

func TestPrefectureSlugsAreUnique(t *testing.T) {
	seen := map[string]string{}
	for name, slug := range prefectureSlugs {
		if prior, dup := seen[slug]; dup {
			t.Errorf("slug %q shared by %q and %q", slug, prior, name)
		}
		seen[slug] = name
	}
	if len(prefectureSlugs) != 47 {
		t.Errorf("expected 47 prefectures, got %d", len(prefectureSlugs))
	}
}
