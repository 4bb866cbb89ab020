// Package genre holds the cuisine-name to category-code bijection.
package genre

import "sort"

// Cuisine pairs a display name with its listing category code.
type Cuisine struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

var codeByName = map[string]string{
	"すき焼き":   "RC0107",
	"しゃぶしゃぶ": "RC0106",
	"寿司":     "RC0201",
	"天ぷら":    "RC0301",
	"とんかつ":   "RC0302",
	"焼き鳥":    "RC0401",
	"ラーメン":   "RC0501",
	"うどん":    "RC0601",
	"そば":     "RC0602",
	"うなぎ":    "RC0701",
	"日本料理":   "RC0801",
	"海鮮":     "RC0901",
	"フレンチ":   "RC1001",
	"イタリアン":  "RC1101",
	"ステーキ":   "RC1201",
	"ハンバーグ":  "RC1202",
	"ハンバーガー": "RC1203",
	"洋食":     "RC1301",
	"中華料理":   "RC1401",
	"餃子":     "RC1402",
	"焼肉":     "RC1501",
	"ホルモン":   "RC1502",
	"鍋":      "RC1601",
	"もつ鍋":    "RC1602",
	"居酒屋":    "RC1701",
	"カレー":    "RC1801",
	"カフェ":    "RC1901",
	"パン":     "RC2001",
	"スイーツ":   "RC2101",
}

var nameByCode = func() map[string]string {
	reverse := make(map[string]string, len(codeByName))
	for name, code := range codeByName {
		if _, dup := reverse[code]; dup {
			panic("genre: duplicate category code " + code)
		}
		reverse[code] = name
	}
	return reverse
}()

// CodeOf maps a cuisine display name to its category code. Exact match
// only; no suffix stripping, no normalization.
func CodeOf(name string) (string, bool) {
	code, ok := codeByName[name]
	return code, ok
}

// NameOf maps a category code back to its display name.
func NameOf(code string) (string, bool) {
	name, ok := nameByCode[code]
	return name, ok
}

// All returns every cuisine sorted by display name.
func All() []Cuisine {
	out := make([]Cuisine, 0, len(codeByName))
	for name, code := range codeByName {
		out = append(out, Cuisine{Name: name, Code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
