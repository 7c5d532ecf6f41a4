package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors for the schools.by subdomain directory page. Schools are
// grouped into one block per city, each holding a list of links.
const (
	cityBoxSelector  = "div.schlist_city_box"
	cityLinkSelector = "li > a"
)

// Directory fetches the subdomain directory page and returns every school
// URL in document order. The page is requested exactly once: this stage
// has no retry budget and its failure aborts the run.
func (p *Pipeline) Directory(ctx context.Context) ([]string, error) {
	body, err := p.fetcher.PageOnce(ctx, p.cfg.DirectoryURL)
	if err != nil {
		return nil, fmt.Errorf("directory page fetch failed: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory page: %w", err)
	}

	var subdomains []string
	doc.Find(cityBoxSelector).Each(func(_ int, box *goquery.Selection) {
		box.Find(cityLinkSelector).Each(func(_ int, a *goquery.Selection) {
			// One line per anchor, even when href is missing.
			subdomains = append(subdomains, a.AttrOr("href", ""))
		})
	})

	return subdomains, nil
}
