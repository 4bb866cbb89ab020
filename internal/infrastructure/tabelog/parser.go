package tabelog

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	domainsearch "tabesearch/internal/domain/search"
)

// ParseListPage extracts restaurant records and the has-next-page signal
// from a listing page document. Entries without a detail URL are dropped
// since the URL is the record's natural identifier.
func ParseListPage(body []byte) ([]domainsearch.Restaurant, bool, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, false, fmt.Errorf("malformed listing document: %w", err)
	}

	restaurants := []domainsearch.Restaurant{}
	doc.Find("div.list-rst").Each(func(_ int, item *goquery.Selection) {
		nameLink := item.Find("a.list-rst__rst-name-target").First()
		detailURL, _ := nameLink.Attr("href")
		detailURL = strings.TrimSpace(detailURL)
		if detailURL == "" {
			return
		}

		r := domainsearch.Restaurant{
			Name: strings.TrimSpace(nameLink.Text()),
			URL:  detailURL,
		}

		if rating, ok := parseFloatText(item.Find("span.c-rating__val").First().Text()); ok {
			r.Rating = &rating
		}
		if count, ok := parseIntText(item.Find("em.list-rst__rvw-count-num").First().Text()); ok {
			r.ReviewCount = &count
		}
		if count, ok := parseIntText(item.Find("em.list-rst__save-count-num").First().Text()); ok {
			r.SaveCount = &count
		}

		area, genres := splitAreaGenre(item.Find("div.list-rst__area-genre").First().Text())
		r.Area = area
		r.Genres = genres

		station := strings.TrimSpace(item.Find("span.list-rst__area-genre-item--station").First().Text())
		r.Station = station
		r.Distance = strings.TrimSpace(item.Find("span.list-rst__area-genre-item--distance").First().Text())

		item.Find("li.list-rst__budget-item").Each(func(_ int, budget *goquery.Selection) {
			price := strings.TrimSpace(budget.Find("span.c-rating-v3__val").First().Text())
			if price == "" || price == "-" {
				return
			}
			if budget.Find("i.c-rating-v3__time--dinner").Length() > 0 {
				r.DinnerPrice = price
			} else if budget.Find("i.c-rating-v3__time--lunch").Length() > 0 {
				r.LunchPrice = price
			}
		})

		restaurants = append(restaurants, r)
	})

	hasNext := doc.Find("a.c-pagination__arrow--next").Length() > 0

	return restaurants, hasNext, nil
}

// splitAreaGenre parses the "area / genre1、genre2" label block under
// each listing entry.
func splitAreaGenre(text string) (string, []string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", []string{}
	}

	area := text
	genrePart := ""
	if idx := strings.Index(text, "/"); idx >= 0 {
		area = strings.TrimSpace(text[:idx])
		genrePart = strings.TrimSpace(text[idx+1:])
	} else {
		return area, []string{}
	}

	genres := []string{}
	for _, g := range strings.Split(genrePart, "、") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	return area, genres
}

// parseFloatText handles the "-" placeholder used for unrated entries.
func parseFloatText(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text == "-" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func parseIntText(text string) (int, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	if text == "" || text == "-" {
		return 0, false
	}
	n, err := strconv.Atoi(text)
	if err != nil {
		return 0, false
	}
	return n, true
}
