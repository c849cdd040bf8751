package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"PaperIndexer/internal/domain"
	"PaperIndexer/internal/scanner"
)

var (
	dateExpr     = regexp.MustCompile(`\d{1,2} [A-Za-z]{3} \d{4}`)
	categoryExpr = regexp.MustCompile(`\(([^()]+)\)`)
)

// ArxivScanner crawls category listing pages and extracts papers for the
// requested day.
type ArxivScanner struct {
	client   *http.Client
	pageSize int
}

// NewArxivScanner wires an HTTP client; pageSize defaults to 200.
func NewArxivScanner(client *http.Client) *ArxivScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &ArxivScanner{client: client, pageSize: 200}
}

// Name identifies the strategy inside the registry.
func (a *ArxivScanner) Name() string {
	return "arxiv"
}

// Scan walks through each category URL and returns all papers published on
// the requested day, deduplicated by arxiv id.
func (a *ArxivScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.Paper, error) {
	if len(req.Categories) == 0 {
		return nil, fmt.Errorf("no categories provided for site %s", req.SiteName)
	}

	targetDay := req.Day.UTC().Truncate(24 * time.Hour)
	results := make([]domain.Paper, 0)
	seen := map[string]struct{}{}

	for _, cat := range req.Categories {
		skip := 0
		for {
			pageURL, err := buildPageURL(cat.URL, skip, a.pageSize)
			if err != nil {
				return nil, fmt.Errorf("category %s: %w", cat.Name, err)
			}

			doc, err := a.fetchDocument(ctx, pageURL)
			if err != nil {
				return nil, fmt.Errorf("category %s: %w", cat.Name, err)
			}

			pagePapers, shouldContinue := a.extractPapers(doc, targetDay, cat.Name)
			for _, paper := range pagePapers {
				if _, ok := seen[paper.ArxivID]; ok {
					continue
				}
				seen[paper.ArxivID] = struct{}{}
				results = append(results, paper)
			}

			if !shouldContinue {
				break
			}
			skip += a.pageSize
		}
	}

	return results, nil
}

func (a *ArxivScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "PaperIndexer/1.0")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func (a *ArxivScanner) extractPapers(doc *goquery.Document, targetDay time.Time, category string) ([]domain.Paper, bool) {
	var (
		collected    []domain.Paper
		continueScan = true
		processed    int
	)

	doc.Find("dl > dt").EachWithBreak(func(i int, dt *goquery.Selection) bool {
		dd := dt.Next()
		processed++

		paper, publishedAt, err := parseEntry(dt, dd, category)
		if err != nil {
			return true
		}

		paperDay := publishedAt.UTC().Truncate(24 * time.Hour)
		if paperDay.Equal(targetDay) {
			collected = append(collected, paper)
		}
		if paperDay.Before(targetDay) {
			continueScan = false
			return false
		}

		return true
	})

	if processed < a.pageSize {
		continueScan = false
	}

	return collected, continueScan
}

func parseEntry(dt, dd *goquery.Selection, category string) (domain.Paper, time.Time, error) {
	id := strings.TrimSpace(dt.Find("a[href*=\"/abs/\"]").First().Text())
	id = strings.TrimPrefix(id, "arXiv:")
	if id == "" {
		if href, exists := dt.Find("a[href*=\"/abs/\"]").First().Attr("href"); exists {
			id = strings.TrimPrefix(href, "/abs/")
		}
	}
	if id == "" {
		return domain.Paper{}, time.Time{}, fmt.Errorf("entry without arxiv id")
	}

	title := strings.TrimSpace(dd.Find(".list-title").First().Text())
	title = strings.TrimSpace(strings.TrimPrefix(title, "Title:"))

	abstract := dd.Find("p.mathjax").First().Text()
	abstract = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(abstract), "Abstract:"))

	var authors []string
	dd.Find(".list-authors a").Each(func(_ int, sel *goquery.Selection) {
		if name := strings.TrimSpace(sel.Text()); name != "" {
			authors = append(authors, name)
		}
	})

	categories := parseSubjects(dd.Find(".list-subjects").First().Text())
	if len(categories) == 0 && category != "" {
		categories = []string{category}
	}

	dateText := strings.TrimSpace(dd.Find(".list-date").First().Text())
	if dateText == "" {
		dateText = strings.TrimSpace(dd.Find(".list-dateline").First().Text())
	}

	publishedAt := time.Now().UTC()
	if match := dateExpr.FindString(dateText); match != "" {
		if parsed, err := time.Parse("2 Jan 2006", match); err == nil {
			publishedAt = parsed
		}
	}

	paper := domain.Paper{
		ArxivID:    id,
		Title:      title,
		Authors:    authors,
		Abstract:   abstract,
		Categories: categories,
		Published:  publishedAt.UTC().Format(time.RFC3339),
	}

	return paper, publishedAt, nil
}

// parseSubjects extracts category codes like "cs.AI" from a subjects line
// such as "Subjects: Artificial Intelligence (cs.AI); Machine Learning (cs.LG)".
func parseSubjects(text string) []string {
	var codes []string
	seen := map[string]struct{}{}
	for _, match := range categoryExpr.FindAllStringSubmatch(text, -1) {
		code := strings.TrimSpace(match[1])
		if code == "" {
			continue
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		codes = append(codes, code)
	}
	return codes
}

func buildPageURL(base string, skip, pageSize int) (string, error) {
	parsed, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid category url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("skip", strconv.Itoa(skip))
	query.Set("show", strconv.Itoa(pageSize))
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
