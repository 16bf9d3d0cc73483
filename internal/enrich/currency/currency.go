// Package currency maps free-form currency tokens to ISO 4217 codes and
// parses locale-ambiguous salary numbers.
package currency

import (
	"regexp"
	"strconv"
	"strings"
)

// isoByToken maps cleaned (uppercased, space-stripped) tokens to ISO codes.
// Used at match time, before the batch-wide standardization pass.
var isoByToken = map[string]string{
	"MX$": "MXN", "MXN": "MXN",
	"$": "USD", "USD": "USD", "US$": "USD",
	"€": "EUR", "EUR": "EUR",
	"£": "GBP", "GBP": "GBP",
	"¥": "JPY", "JPY": "JPY",
	"C$": "CAD", "CAD": "CAD",
	"A$": "AUD", "AUD": "AUD",
	"MYR": "MYR", "RM": "MYR",
	"SGD": "SGD", "S$": "SGD",
	"IDR": "IDR", "RP": "IDR",
	"₱": "PHP", "PHP": "PHP",
	"VND": "VND", "₫": "VND",
	"INR": "INR", "₹": "INR", "RS": "INR",
	"CNY": "CNY", "RMB": "CNY",
	"KRW": "KRW", "₩": "KRW",
	"BRL": "BRL", "R$": "BRL",
	"ZAR": "ZAR",
	"THB": "THB", "฿": "THB",
	"PLN": "PLN", "CZK": "CZK", "HUF": "HUF",
	"TRY": "TRY", "₺": "TRY",
	"ILS": "ILS", "₪": "ILS",
	"CHF": "CHF", "SEK": "SEK", "NOK": "NOK", "DKK": "DKK",
	"RUB": "RUB", "₽": "RUB",
	"HKD": "HKD", "NZD": "NZD", "TWD": "TWD",
	"AED": "AED", "SAR": "SAR", "EGP": "EGP", "QAR": "QAR",
	"KWD": "KWD", "BHD": "BHD", "OMR": "OMR", "JOD": "JOD",
	"PKR": "PKR", "LKR": "LKR", "BDT": "BDT", "NPR": "NPR",
	"MMK": "MMK", "LAK": "LAK", "KHR": "KHR",
	"NGN": "NGN", "₦": "NGN",
	"GHS": "GHS", "₵": "GHS",
	"RUPIAH": "IDR", "BAHT": "THB", "PESO": "PHP", "PESOS": "PHP",
	"DONG": "VND", "RUPEE": "INR", "RUPEES": "INR",
	"YUAN": "CNY", "RENMINBI": "CNY", "WON": "KRW",
	"DIRHAM": "AED", "DH": "AED", "RIYAL": "SAR", "SR": "SAR",
	"SHEKEL": "ILS", "LIRA": "TRY",
	"RUBLE": "RUB", "ROUBLE": "RUB",
	"RAND": "ZAR", "REAL": "BRL",
	"RINGGIT": "MYR", "NAIRA": "NGN", "CEDI": "GHS",
	"ZLOTY": "PLN", "ZŁ": "PLN", "FORINT": "HUF", "FT": "HUF",
	"KORUNA": "CZK", "KČ": "CZK",
	"KRONA": "SEK", "KRONOR": "SEK", "KR": "SEK",
	"KRONE": "NOK", "KRONER": "NOK",
	"FRANC": "CHF", "FR": "CHF",
	"TAKA": "BDT", "KYAT": "MMK", "KIP": "LAK", "RIEL": "KHR",
}

// Normalize maps a raw currency symbol, code, or word to its ISO code.
// Lookup is case- and space-insensitive. Unknown tokens return ("", false)
// so the caller can apply its own default policy.
func Normalize(token string) (string, bool) {
	c := clean(token)
	if c == "" {
		return "", false
	}
	iso, ok := isoByToken[c]
	return iso, ok
}

// NormalizeOrRaw maps a token to its ISO code, falling back to the cleaned
// token itself when unknown. Matches keep this raw form until the
// batch-wide Standardize pass resolves or defaults it.
func NormalizeOrRaw(token string) string {
	c := clean(token)
	if c == "" {
		return ""
	}
	if iso, ok := isoByToken[c]; ok {
		return iso
	}
	return c
}

func clean(token string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(token), " ", ""))
}

// standardTokens is the extended synonym table for the batch-wide
// standardization pass. Lowercase keys, with word-level synonyms that the
// match-time table deliberately omits.
var standardTokens = map[string]string{
	"$": "USD", "usd": "USD", "us$": "USD",
	"s$": "SGD", "sgd": "SGD",
	"£": "GBP", "gbp": "GBP",
	"€": "EUR", "eur": "EUR",
	"rs": "INR", "₹": "INR", "inr": "INR",
	"rm": "MYR", "myr": "MYR",
	"idr": "IDR", "rp": "IDR",
	"thb": "THB", "฿": "THB",
	"php": "PHP", "₱": "PHP",
	"vnd": "VND", "₫": "VND",
	"r": "ZAR", "zar": "ZAR",
	"top": "TOP",
	"mx$": "MXN", "mxn": "MXN", "mx": "MXN",
	"mx pesos": "MXN", "mexican peso": "MXN", "mexican pesos": "MXN",
}

var standardISO = map[string]bool{
	"USD": true, "MYR": true, "SGD": true, "EUR": true, "GBP": true,
	"INR": true, "THB": true, "IDR": true, "PHP": true, "VND": true,
	"ZAR": true, "TOP": true, "MXN": true, "JPY": true, "CNY": true,
	"KRW": true, "CAD": true, "AUD": true, "BRL": true, "CHF": true,
	"AED": true, "SAR": true, "PLN": true, "CZK": true, "HUF": true,
	"TRY": true, "ILS": true, "RUB": true, "SEK": true, "NOK": true,
	"DKK": true, "HKD": true, "NZD": true, "TWD": true, "PKR": true,
}

// Standardize resolves a raw extracted currency value to an ISO code.
// Unresolvable values return "", which callers default to USD. This runs
// after extraction, so leniency here never masks a real match.
func Standardize(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	v = strings.TrimRight(v, ".,")
	if v == "" || v == "none" {
		return ""
	}
	if iso, ok := standardTokens[v]; ok {
		return iso
	}
	if strings.HasPrefix(v, "mx$") || strings.HasPrefix(v, "mxn") || strings.HasPrefix(v, "mx ") {
		return "MXN"
	}
	if strings.Contains(v, "mexican peso") {
		return "MXN"
	}
	noSpace := strings.ReplaceAll(v, " ", "")
	if iso, ok := standardTokens[noSpace]; ok {
		return iso
	}
	if standardISO[strings.ToUpper(v)] {
		return strings.ToUpper(v)
	}
	// Leading symbol, e.g. "$85k" captured whole.
	if first := string([]rune(v)[0]); standardTokens[first] != "" {
		return standardTokens[first]
	}
	return ""
}

var stripSpaceComma = regexp.MustCompile(`[,\s]`)

// ParseNumber converts a salary number string to a float. A trailing k/K
// multiplies by 1,000 and m/M by 1,000,000. When both "," and "." appear,
// whichever occurs last is the decimal point and the other is thousands
// grouping; a lone "." repeated more than once is thousands grouping
// (European style, "4.500.000"). Unparsable input yields 0.0, never an
// error.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0.0
	}

	multiplier := 1.0
	switch {
	case strings.HasSuffix(strings.ToLower(s), "m"):
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case strings.HasSuffix(strings.ToLower(s), "k"):
		multiplier = 1_000
		s = s[:len(s)-1]
	}

	hasComma := strings.Contains(s, ",")
	hasPeriod := strings.Contains(s, ".")
	switch {
	case hasComma && hasPeriod:
		if strings.LastIndex(s, ".") > strings.LastIndex(s, ",") {
			// US style: 50,000.50
			s = strings.ReplaceAll(s, ",", "")
		} else {
			// European style: 50.000,50
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		}
	case hasPeriod:
		if strings.Count(s, ".") > 1 {
			// European thousands: 4.500.000
			s = strings.ReplaceAll(s, ".", "")
		}
		s = stripSpaceComma.ReplaceAllString(s, "")
	default:
		s = stripSpaceComma.ReplaceAllString(s, "")
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v * multiplier
}
