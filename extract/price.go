package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fwojciec/stagenote"
)

var priceSelectors = []string{
	".prf_price", ".price", ".ticket-price", ".cost", ".ticket_info",
	`[class*="price"]`, ".seat_price", `.info_detail li:contains("가격")`,
	`.info_detail li:contains("티켓")`, `dl dt:contains("가격") + dd`,
}

// Sanity bounds for the generic numeric scan, in won. Tokens outside the
// range are assumed to be dates, seat counts, or phone fragments.
const (
	minPlausiblePrice = 1000
	maxPlausiblePrice = 5000000
)

type priceMatcher struct {
	seat     []*regexp.Regexp
	general  []*regexp.Regexp
	digit    *regexp.Regexp
	nonDigit *regexp.Regexp
}

func newPriceMatcher() priceMatcher {
	return priceMatcher{
		seat: []*regexp.Regexp{
			regexp.MustCompile(`[RSABCVIP]+석[\s:：]*[\d,]+원`),
			regexp.MustCompile(`[RSABCVIP]+[\s:：]*[\d,]+원`),
			regexp.MustCompile(`(?:전석|일반|학생)[\s:：]*[\d,]+원`),
			regexp.MustCompile(`[\d,]+원\s*\([RSABCVIP]+석\)`),
		},
		general: []*regexp.Regexp{
			regexp.MustCompile(`[\d,]+\s*원`),
			regexp.MustCompile(`₩\s*[\d,]+`),
			regexp.MustCompile(`(?i)KRW\s*[\d,]+`),
		},
		digit:    regexp.MustCompile(`\d`),
		nonDigit: regexp.MustCompile(`[^\d]`),
	}
}

// extract collects price tokens from structured selectors and seat-tier
// patterns; the generic numeric scan runs only when both find nothing.
func (m priceMatcher) extract(doc stagenote.Document, pageText string) string {
	var prices []string

	if doc != nil {
		for _, sel := range priceSelectors {
			doc.Each(sel, func(el stagenote.Element) {
				t := el.Text()
				if t != "" && m.digit.MatchString(t) {
					prices = append(prices, t)
				}
			})
		}
	}

	for _, re := range m.seat {
		for _, match := range re.FindAllString(pageText, -1) {
			if !contains(prices, match) {
				prices = append(prices, match)
			}
		}
	}

	if len(prices) == 0 {
		for _, re := range m.general {
			count := 0
			for _, match := range re.FindAllString(pageText, -1) {
				if count >= stagenote.MaxPriceTokens {
					break
				}
				price := strings.TrimSpace(match)
				n, err := strconv.Atoi(m.nonDigit.ReplaceAllString(price, ""))
				if err != nil {
					continue
				}
				if n >= minPlausiblePrice && n <= maxPlausiblePrice && !contains(prices, price) {
					prices = append(prices, price)
					count++
				}
			}
		}
	}

	if len(prices) > stagenote.MaxPriceTokens {
		prices = prices[:stagenote.MaxPriceTokens]
	}
	return strings.Join(prices, ", ")
}
