// Package area canonicalizes Japanese area names into tabelog URL slugs.
package area

// prefectureSlugs maps full prefecture names to their listing URL slugs.
var prefectureSlugs = map[string]string{
	"北海道":  "hokkaido",
	"青森県":  "aomori",
	"岩手県":  "iwate",
	"宮城県":  "miyagi",
	"秋田県":  "akita",
	"山形県":  "yamagata",
	"福島県":  "fukushima",
	"茨城県":  "ibaraki",
	"栃木県":  "tochigi",
	"群馬県":  "gunma",
	"埼玉県":  "saitama",
	"千葉県":  "chiba",
	"東京都":  "tokyo",
	"神奈川県": "kanagawa",
	"新潟県":  "niigata",
	"富山県":  "toyama",
	"石川県":  "ishikawa",
	"福井県":  "fukui",
	"山梨県":  "yamanashi",
	"長野県":  "nagano",
	"岐阜県":  "gifu",
	"静岡県":  "shizuoka",
	"愛知県":  "aichi",
	"三重県":  "mie",
	"滋賀県":  "shiga",
	"京都府":  "kyoto",
	"大阪府":  "osaka",
	"兵庫県":  "hyogo",
	"奈良県":  "nara",
	"和歌山県": "wakayama",
	"鳥取県":  "tottori",
	"島根県":  "shimane",
	"岡山県":  "okayama",
	"広島県":  "hiroshima",
	"山口県":  "yamaguchi",
	"徳島県":  "tokushima",
	"香川県":  "kagawa",
	"愛媛県":  "ehime",
	"高知県":  "kochi",
	"福岡県":  "fukuoka",
	"佐賀県":  "saga",
	"長崎県":  "nagasaki",
	"熊本県":  "kumamoto",
	"大分県":  "oita",
	"宮崎県":  "miyazaki",
	"鹿児島県": "kagoshima",
	"沖縄県":  "okinawa",
}

// cityAliases covers the short forms users actually type for the
// largest metro areas. These resolve to the prefecture-level slug.
var cityAliases = map[string]string{
	"東京":  "tokyo",
	"大阪":  "osaka",
	"京都":  "kyoto",
	"北海道": "hokkaido",
	"福岡":  "fukuoka",
}

// suffixes tried in order when neither table matches the input as-is.
var suffixes = []string{"都", "府", "県", "市"}

// Resolve maps an area name to its listing URL slug. Lookup order:
// exact prefecture name, short-city alias, then each administrative
// suffix stripped once and retried against both tables. Input is
// matched byte-exact; callers trim before resolving if they want
// whitespace tolerance.
func Resolve(name string) (string, bool) {
	if slug, ok := lookup(name); ok {
		return slug, true
	}
	for _, suffix := range suffixes {
		stripped, ok := cutSuffix(name, suffix)
		if !ok {
			continue
		}
		if slug, ok := lookup(stripped); ok {
			return slug, true
		}
	}
	return "", false
}

func lookup(name string) (string, bool) {
	if slug, ok := prefectureSlugs[name]; ok {
		return slug, true
	}
	if slug, ok := cityAliases[name]; ok {
		return slug, true
	}
	return "", false
}

func cutSuffix(s, suffix string) (string, bool) {
	if len(s) <= len(suffix) || s[len(s)-len(suffix):] != suffix {
		return s, false
	}
	return s[:len(s)-len(suffix)], true
}
