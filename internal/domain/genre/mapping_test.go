package genre

import "testing"

func TestCodeOfKnownCuisines(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"寿司", "RC0201"},
		{"ラーメン", "RC0501"},
		{"焼肉", "RC1501"},
		{"カフェ", "RC1901"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			code, ok := CodeOf(tt.name)
			if !ok || code != tt.want {
				t.Errorf("CodeOf(%q) = (%q, %v), want (%q, true)", tt.name, code, ok, tt.want)
			}
		})
	}
}

func TestCodeOfIsExactMatchOnly(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"unknown cuisine", "タコス"},
		{"whitespace is not trimmed", " 寿司"},
		{"no partial match", "寿"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if code, ok := CodeOf(tt.input); ok {
				t.Errorf("CodeOf(%q) = (%q, true), want miss", tt.input, code)
			}
		})
	}
}

func TestMappingIsBijective(t *testing.T) {
	for name, code := range codeByName {
		back, ok := NameOf(code)
		if !ok {
			t.Errorf("NameOf(%q) missed", code)
			continue
		}
		if back != name {
			t.Errorf("NameOf(CodeOf(%q)) = %q, want round-trip", name, back)
		}
	}
	for code, name := range nameByCode {
		back, ok := CodeOf(name)
		if !ok || back != code {
			t.Errorf("CodeOf(NameOf(%q)) = (%q, %v), want round-trip", code, back, ok)
		}
	}
	if len(codeByName) != 29 || len(nameByCode) != 29 {
		t.Errorf("expected 29 entries each way, got %d/%d", len(codeByName), len(nameByCode))
	}
}

func TestAllSortedAndComplete(t *testing.T) {
	all := All()
	if len(all) != len(codeByName) {
		t.Fatalf("All() returned %d entries, want %d", len(all), len(codeByName))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Name >= all[i].Name {
			t.Errorf("All() not sorted at %d: %q >= %q", i, all[i-1].Name, all[i].Name)
		}
	}
	for _, c := range all {
		if code, ok := CodeOf(c.Name); !ok || code != c.Code {
			t.Errorf("All() entry %q/%q disagrees with CodeOf", c.Name, c.Code)
		}
	}
}
