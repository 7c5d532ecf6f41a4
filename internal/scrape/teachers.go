package scrape

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/schoolsby-tools/teacherscrape/internal/downloader"
	"github.com/schoolsby-tools/teacherscrape/pkg/models"
)

// Selectors for a subdomain's teacher listing page.
const (
	teacherCardSelector  = "div.sch_ptbox_item"
	teacherNameSelector  = "a.user_type_3"
	teacherPhotoSelector = "a.photo>img"
)

// TeachersPage fetches and parses one subdomain's teacher listing.
// Transport failures consume the retry budget; on exhaustion or a decode
// failure the result carries the error and no teachers. Cards that yield
// neither a name nor an image URL are dropped.
func (p *Pipeline) TeachersPage(ctx context.Context, pageURL string) models.PageResult {
	res := models.PageResult{PageURL: pageURL}

	body, err := p.fetcher.Page(ctx, pageURL)
	if err != nil {
		log.Warn().Err(err).Str("page", pageURL).Msg("Teacher page skipped")
		res.Err = err
		return res
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		res.Err = fmt.Errorf("failed to parse %s: %w", pageURL, err)
		return res
	}

	doc.Find(teacherCardSelector).Each(func(_ int, card *goquery.Selection) {
		var t models.Teacher
		if name := card.Find(teacherNameSelector); name.Length() > 0 {
			t.Name = downloader.SanitizeName(name.First().Text())
		}
		if src, ok := card.Find(teacherPhotoSelector).First().Attr("src"); ok {
			t.ImgURL = src
		}
		if t != (models.Teacher{}) {
			res.Teachers = append(res.Teachers, t)
		}
	})

	log.Info().Str("page", pageURL).Int("teachers", len(res.Teachers)).Msg("Page parsed")
	return res
}
