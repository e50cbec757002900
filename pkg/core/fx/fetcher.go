package fx

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

// LiveFetcher scrapes a published HTML table of USD-anchored rates and feeds
// them into a Resolver. The engine works entirely from the static table when
// no live source is configured or a fetch fails; live rates only refresh the
// observed-rate cache.
type LiveFetcher struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewLiveFetcher creates a fetcher for the given rates page URL.
func NewLiveFetcher(url string, log *logrus.Logger) *LiveFetcher {
	if log == nil {
		log = logrus.New()
	}
	return &LiveFetcher{
		url: url,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// Prime fetches the rates page and records every parsable USD→X rate on the
// resolver. Expected markup: table rows whose first cell is a 3-letter
// currency code and second cell the units per USD.
func (f *LiveFetcher) Prime(ctx context.Context, resolver *Resolver) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return fmt.Errorf("failed to create rates request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return fmt.Errorf("rates fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to parse rates page: %w", err)
	}

	observed := 0
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}
		code := strings.ToUpper(strings.TrimSpace(cells.Eq(0).Text()))
		if len(code) != 3 {
			return
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(cells.Eq(1).Text()), 64)
		if err != nil || rate <= 0 {
			return
		}
		resolver.Observe(ctx, "USD", code, rate, f.url)
		observed++
	})

	if observed == 0 {
		return fmt.Errorf("no rates found at %s", f.url)
	}

	f.log.WithField("rates", observed).Info("primed live exchange rates")
	return nil
}
