package collaborator

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

	"github.com/Hadi891/CareerCompass/internal/domain"
)

const maxCoursesPerQuery = 3

var ratingPattern = regexp.MustCompile(`\d\.\d`)

// CourseraSearcher scrapes the public Coursera search page for course
// recommendations. The catalog has no stable API for this, so results
// come from the rendered search HTML and may legitimately be empty
// when the markup shifts.
type CourseraSearcher struct {
	baseURL    string
	httpClient *http.Client
}

func NewCourseraSearcher(baseURL string, timeout time.Duration) *CourseraSearcher {
	return &CourseraSearcher{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (s *CourseraSearcher) SearchCourses(ctx context.Context, skill, level string) ([]domain.CourseResult, error) {
	query := url.Values{}
	query.Set("query", skill)
	query.Set("productDifficultyLevel", difficultyParam(level))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		s.baseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build search request: %w", err)
	}
	// The search page serves a bot-detection stub without a browser UA.
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("course search: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("course search returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse search page: %w", err)
	}

	results := s.parseCards(doc)
	if len(results) == 0 {
		results = s.parseCourseLinks(doc)
	}
	if len(results) > maxCoursesPerQuery {
		results = results[:maxCoursesPerQuery]
	}
	return results, nil
}

// parseCards reads the structured result cards of the search page.
func (s *CourseraSearcher) parseCards(doc *goquery.Document) []domain.CourseResult {
	var results []domain.CourseResult
	doc.Find(`div[data-testid="search-result-card"], li[data-testid="search-result"]`).
		EachWithBreak(func(_ int, card *goquery.Selection) bool {
			anchor := card.Find("a").First()
			href, ok := anchor.Attr("href")
			if !ok {
				return true
			}
			title := strings.TrimSpace(card.Find("h3").First().Text())
			if title == "" {
				title = strings.TrimSpace(anchor.Text())
			}
			if title == "" {
				return true
			}

			var rating float64
			if m := ratingPattern.FindString(card.Text()); m != "" {
				rating, _ = strconv.ParseFloat(m, 64)
			}

			results = append(results, domain.CourseResult{
				Title:       title,
				URL:         s.absolute(href),
				Description: strings.TrimSpace(card.Find("p").First().Text()),
				Rating:      rating,
			})
			return len(results) < maxCoursesPerQuery
		})
	return results
}

// parseCourseLinks is the fallback when no result cards are found:
// any anchor pointing at a course page counts as a hit.
func (s *CourseraSearcher) parseCourseLinks(doc *goquery.Document) []domain.CourseResult {
	seen := map[string]bool{}
	var results []domain.CourseResult
	doc.Find(`a[href*="/learn/"]`).EachWithBreak(func(_ int, anchor *goquery.Selection) bool {
		href, _ := anchor.Attr("href")
		title := strings.TrimSpace(anchor.Text())
		if title == "" || seen[href] {
			return true
		}
		seen[href] = true
		results = append(results, domain.CourseResult{
			Title: title,
			URL:   s.absolute(href),
		})
		return len(results) < maxCoursesPerQuery
	})
	return results
}

func (s *CourseraSearcher) absolute(href string) string {
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	return s.baseURL + href
}

func difficultyParam(level string) string {
	switch level {
	case domain.LevelIntermediate:
		return "Intermediate"
	case domain.LevelAdvanced:
		return "Advanced"
	default:
		return "Beginner"
	}
}
