package collector

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
)

// Quote is a scraped realtime price.
type Quote struct {
	Price  float64
	Change float64
	Time   time.Time
}

// QuoteScraper reads the headline price from a Yahoo TW quote page.
type QuoteScraper struct {
	Client  *http.Client
	BaseURL string
	now     func() time.Time
}

func NewQuoteScraper(client *http.Client, baseURL string) *QuoteScraper {
	return &QuoteScraper{
		Client:  client,
		BaseURL: strings.TrimRight(baseURL, "/"),
		now:     time.Now,
	}
}

// The headline price uses one of two font-size utility classes.
var priceSelectors = []string{"[class*='Fz(32px)']", "[class*='Fz(42px)']"}

var changePattern = regexp.MustCompile(`([▲▼+\-]?\s*[\d,]+\.?\d*)\s*\([^)]*%\)`)

func (s *QuoteScraper) FetchQuote(ctx context.Context, ticker string) (*Quote, error) {
	u := fmt.Sprintf("%s/quote/%s", s.BaseURL, url.QueryEscape(ticker))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("quote fetch %s: %w: %w", ticker, ErrDataUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("quote %s: status %d: %w", ticker, resp.StatusCode, ErrDataUnavailable)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	for _, sel := range priceSelectors {
		node := doc.Find(sel).First()
		if node.Length() == 0 {
			continue
		}
		price, err := parseNumber(node.Text())
		if err != nil || price <= 0 {
			continue
		}
		return &Quote{
			Price:  price,
			Change: parseChange(node.Parent().Text()),
			Time:   s.now(),
		}, nil
	}
	return nil, fmt.Errorf("quote %s: price not found: %w", ticker, ErrDataUnavailable)
}

func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return strconv.ParseFloat(s, 64)
}

// parseChange extracts the signed point change from text like "▼ 120.5 (0.52%)".
func parseChange(text string) float64 {
	m := changePattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	raw := strings.NewReplacer("▲", "", "▼", "", "+", "", "-", "", " ", "").Replace(m[1])
	v, err := parseNumber(raw)
	if err != nil {
		return 0
	}
	if strings.ContainsAny(m[1], "▼-") {
		return -v
	}
	return v
}
