// Package storefront scrapes the HTML side of the Steam platform: store app
// pages and store search. The Web API does not expose either.
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/avaler/steam-mcp/internal/cache"
	"github.com/avaler/steam-mcp/internal/steam"
)

const (
	requestTimeout  = 20 * time.Second
	maxResponseSize = 1 * 1024 * 1024 // 1MB
)

// AppPage is the readable summary of one store page.
type AppPage struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Text        string `json:"text"`
}

// Pages fetches store app pages, converting the game description to Markdown.
type Pages struct {
	c     *colly.Collector
	cache cache.KV
	ttl   time.Duration
	base  string
}

// NewPages returns a Pages fetcher that remembers results in store for ttl.
func NewPages(store cache.KV, ttl time.Duration) *Pages {
	c := colly.NewCollector(
		colly.AllowURLRevisit(),
		colly.Async(false),
	)
	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       1 * time.Second,
	})
	c.SetRequestTimeout(requestTimeout)
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", NextUserAgent())
		r.Headers.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
		// Skip the age gate on mature store pages.
		r.Headers.Set("Cookie", "birthtime=0; lastagecheckage=1-0-1970; mature_content=1")
	})
	return &Pages{c: c, cache: store, ttl: ttl, base: "https://store.steampowered.com"}
}

func (p *Pages) cacheKey(appID steam.AppID) string { return "store_page|" + appID.String() }

func (p *Pages) pageURL(appID steam.AppID) string {
	return p.base + "/app/" + appID.String() + "/"
}

// Fetch returns the store page summary for the given app.
func (p *Pages) Fetch(ctx context.Context, appID steam.AppID) (*AppPage, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if v, err := p.cache.Get(p.cacheKey(appID)); err == nil {
		var ap AppPage
		if json.Unmarshal(v, &ap) == nil {
			return &ap, nil
		}
	}

	var pageHTML []byte
	var finalURL string
	var contentType string

	originalCtx := p.c.Context
	p.c.Context = ctx
	defer func() { p.c.Context = originalCtx }()

	p.c.OnResponse(func(r *colly.Response) {
		if ctx.Err() != nil {
			return
		}
		finalURL = r.Request.URL.String()
		pageHTML = append([]byte(nil), r.Body...)
		contentType = r.Headers.Get("Content-Type")
	})

	if err := p.c.Visit(p.pageURL(appID)); err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if len(pageHTML) == 0 {
		return nil, errors.New("storefront: empty response body")
	}
	if len(pageHTML) > maxResponseSize {
		pageHTML = pageHTML[:maxResponseSize]
	}
	if !strings.Contains(strings.ToLower(contentType), "text/html") {
		return nil, errors.New("storefront: unexpected content type " + contentType)
	}

	ap, err := parseAppPage(finalURL, pageHTML)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(ap); err == nil {
		_ = p.cache.Put(p.cacheKey(appID), b, p.ttl)
	}
	return ap, nil
}

func parseAppPage(pageURL string, pageHTML []byte) (*AppPage, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(pageHTML))
	if err != nil {
		return nil, err
	}

	doc.Find("script, style, noscript, iframe, img, video, picture, svg, canvas, audio, form, input, button, select").Remove()

	title := singleLine(doc.Find("div#appHubAppName").First().Text())
	if title == "" {
		title = singleLine(doc.Find("head > title").First().Text())
	}
	desc := strings.TrimSpace(doc.Find("meta[name=description]").AttrOr("content", ""))
	if desc == "" {
		desc = singleLine(doc.Find("div.game_description_snippet").First().Text())
	}

	// "About This Game" carries the meat of the page; convert it to Markdown.
	about := doc.Find("div#game_area_description").First()
	var text string
	if about.Length() > 0 {
		aboutHTML, err := goquery.OuterHtml(about)
		if err == nil {
			if md, err := htmltomarkdown.ConvertString(aboutHTML); err == nil {
				text = strings.TrimSpace(md)
			}
		}
	}
	if text == "" {
		text = singleLine(doc.Find("body").Text())
	}

	return &AppPage{
		URL:         pageURL,
		Title:       title,
		Description: desc,
		Text:        text,
	}, nil
}
