package salary

import (
	"regexp"
	"sort"
	"strings"
)

// currencyTokens is the alternation fed into every pattern. Bare
// single-letter tokens (K for kyat, R for rand) are deliberately absent:
// they collide with the k/M magnitude suffix and steal spans from real
// matches. Those arrive only through the standardization table.
var currencyTokens = []string{
	// Symbols
	"MX$", "US$", "S$", "C$", "A$", "R$",
	"$", "£", "€", "¥", "₹", "₽", "₩", "₪", "₦", "₴", "₨", "₵", "₫",
	"₮", "₱", "₲", "₸", "₺", "₼", "₾", "₿", "＄", "￡", "￥", "￦", "฿",
	"₭", "៛", "৳", "؋", "zł", "kč",
	// ISO codes
	"USD", "EUR", "GBP", "JPY", "CNY", "INR", "CAD", "AUD", "CHF", "SEK",
	"NOK", "DKK", "RUB", "KRW", "SGD", "HKD", "NZD", "MXN", "BRL", "ZAR",
	"THB", "MYR", "IDR", "PHP", "VND", "TWD", "PLN", "CZK", "HUF", "TRY",
	"ILS", "AED", "SAR", "EGP", "QAR", "KWD", "BHD", "OMR", "JOD", "LBP",
	"PKR", "LKR", "BDT", "NPR", "AFN", "MMK", "LAK", "KHR", "BND", "FJD",
	"PGK", "SBD", "TOP", "VUV", "WST", "NGN", "GHS", "ETB", "KES", "UGX",
	"TZS", "DZD", "IQD", "LYD", "TND", "RMB",
	// Regional names and abbreviations
	"RM", "RINGGIT", "MALAYSIAN RINGGIT", "SINGAPORE DOLLAR",
	"RUPIAH", "RP", "BAHT", "PESO", "PESOS", "DONG",
	"RUPEE", "RUPEES", "RS", "YUAN", "RENMINBI", "WON",
	"DIRHAM", "DH", "RIYAL", "SR", "SHEKEL", "LIRA",
	"RUBLE", "ROUBLE", "RAND", "REAL",
	"KRONA", "KRONOR", "KR", "KRONE", "KRONER", "FRANC", "FR",
	"ZLOTY", "FORINT", "FT", "KORUNA",
	"DINAR", "NAIRA", "CEDI", "BIRR", "SHILLING",
	"AFGHANI", "TAKA", "KYAT", "KIP", "RIEL",
}

// periodTokens are salary cadence suffixes, matched case-insensitively
// right after the amount.
var periodTokens = []string{
	"per year", "annually", "yearly", "per annum", "p.a.", "pa",
	"per month", "monthly", "per mth", "p.m.", "pm",
	"per hour", "hourly", "per hr", "p.h.", "ph",
	"per week", "weekly", "per wk", "p.w.", "pw",
	"per day", "daily", "per diem",
}

// Group roles used in pattern named groups.
const (
	groupCur    = "cur"
	groupCur2   = "cur2"
	groupMin    = "min"
	groupMax    = "max"
	groupSingle = "single"
	groupPeriod = "period"
)

// Pattern is one salary template: a compiled regex whose named groups
// (cur, cur2, min, max, single, period) declare which role each capture
// plays. Patterns run in slice order; the id is 1-based priority.
type Pattern struct {
	ID int
	re *regexp.Regexp
}

func alternation(tokens []string) string {
	sorted := make([]string, len(tokens))
	copy(sorted, tokens)
	// Longest first so e.g. "MX$" beats "$" and "per year" beats "pa".
	sort.Slice(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	quoted := make([]string, len(sorted))
	for i, t := range sorted {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

// buildPatterns compiles the template table. Number syntax covers plain
// digits, thousands-grouped digits with either separator, an optional
// decimal tail, and an optional k/M magnitude suffix.
func buildPatterns() []Pattern {
	num := `(?:\d{1,3}(?:[.,]\d{3})+|\d+)(?:\.\d+)?[kKmM]?`
	cur := alternation(currencyTokens)
	per := alternation(periodTokens)

	templates := []string{
		// 1: currency prefix on both ends of a range, e.g. MX$235,200 - MX$252,806
		`(?P<cur>` + cur + `)\s?(?P<min>` + num + `)\s*[-–—to]+\s*(?P<cur2>` + cur + `)\s?(?P<max>` + num + `)(?:\s*(?P<period>` + per + `))?`,
		// 2: currency prefix on the first number only, e.g. $80,000 - 120,000
		`(?P<cur>` + cur + `)\s?(?P<min>` + num + `)\s*[-–—to]+\s*(?P<max>` + num + `)(?:\s*(?P<period>` + per + `))?`,
		// 3: range with trailing currency, e.g. 50,000-80,000 USD
		`(?P<min>` + num + `)\s*[-–—to]?\s*(?P<max>` + num + `)\s*(?P<cur>` + cur + `)(?:\s*(?P<period>` + per + `))?`,
		// 4: single value with currency prefix, e.g. $75,000 annually
		`(?P<cur>` + cur + `)\s?(?P<single>` + num + `)(?:\s*(?P<period>` + per + `))?`,
		// 5: single value with currency suffix, e.g. 75,000 USD per year
		`(?P<single>` + num + `)\s*(?P<cur>` + cur + `)(?:\s*(?P<period>` + per + `))?`,
		// 6: bare range with trailing currency, stricter separator than 3
		`(?P<min>` + num + `)\s*[-–—to]\s*(?P<max>` + num + `)\s*(?P<cur>` + cur + `)(?:\s*(?P<period>` + per + `))?`,
		// 7: explicitly labeled range, e.g. Salary: MYR 5,000 - 8,000
		`(?:salary|compensation|pay|wage|income):\s*(?P<cur>` + cur + `)?\s?(?P<min>` + num + `)\s*[-–—to]\s*(?P<cur2>` + cur + `)?\s?(?P<max>` + num + `)(?:\s*(?P<period>` + per + `))?`,
	}

	patterns := make([]Pattern, len(templates))
	for i, t := range templates {
		patterns[i] = Pattern{ID: i + 1, re: regexp.MustCompile(`(?i)` + t)}
	}
	return patterns
}
