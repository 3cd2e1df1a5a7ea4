// Package currency owns the ISO 4217 lookup used to validate scraped
// prices. The table lists every active national currency; the special
// X codes (XXX, XTS, fund and precious-metal codes) are excluded on
// purpose because a menu price is always denominated in a circulating
// currency.
package currency

import "strings"

var codes = map[string]struct{}{
	"AED": {}, "AFN": {}, "ALL": {}, "AMD": {}, "ANG": {}, "AOA": {},
	"ARS": {}, "AUD": {}, "AWG": {}, "AZN": {}, "BAM": {}, "BBD": {},
	"BDT": {}, "BGN": {}, "BHD": {}, "BIF": {}, "BMD": {}, "BND": {},
	"BOB": {}, "BRL": {}, "BSD": {}, "BTN": {}, "BWP": {}, "BYN": {},
	"BZD": {}, "CAD": {}, "CDF": {}, "CHF": {}, "CLP": {}, "CNY": {},
	"COP": {}, "CRC": {}, "CUP": {}, "CVE": {}, "CZK": {}, "DJF": {},
	"DKK": {}, "DOP": {}, "DZD": {}, "EGP": {}, "ERN": {}, "ETB": {},
	"EUR": {}, "FJD": {}, "FKP": {}, "GBP": {}, "GEL": {}, "GHS": {},
	"GIP": {}, "GMD": {}, "GNF": {}, "GTQ": {}, "GYD": {}, "HKD": {},
	"HNL": {}, "HTG": {}, "HUF": {}, "IDR": {}, "ILS": {}, "INR": {},
	"IQD": {}, "IRR": {}, "ISK": {}, "JMD": {}, "JOD": {}, "JPY": {},
	"KES": {}, "KGS": {}, "KHR": {}, "KMF": {}, "KPW": {}, "KRW": {},
	"KWD": {}, "KYD": {}, "KZT": {}, "LAK": {}, "LBP": {}, "LKR": {},
	"LRD": {}, "LSL": {}, "LYD": {}, "MAD": {}, "MDL": {}, "MGA": {},
	"MKD": {}, "MMK": {}, "MNT": {}, "MOP": {}, "MRU": {}, "MUR": {},
	"MVR": {}, "MWK": {}, "MXN": {}, "MYR": {}, "MZN": {}, "NAD": {},
	"NGN": {}, "NIO": {}, "NOK": {}, "NPR": {}, "NZD": {}, "OMR": {},
	"PAB": {}, "PEN": {}, "PGK": {}, "PHP": {}, "PKR": {}, "PLN": {},
	"PYG": {}, "QAR": {}, "RON": {}, "RSD": {}, "RUB": {}, "RWF": {},
	"SAR": {}, "SBD": {}, "SCR": {}, "SDG": {}, "SEK": {}, "SGD": {},
	"SHP": {}, "SLE": {}, "SLL": {}, "SOS": {}, "SRD": {}, "SSP": {},
	"STN": {}, "SVC": {}, "SYP": {}, "SZL": {}, "THB": {}, "TJS": {},
	"TMT": {}, "TND": {}, "TOP": {}, "TRY": {}, "TTD": {}, "TWD": {},
	"TZS": {}, "UAH": {}, "UGX": {}, "USD": {}, "UYU": {}, "UZS": {},
	"VES": {}, "VND": {}, "VUV": {}, "WST": {}, "XAF": {}, "XCD": {},
	"XOF": {}, "XPF": {}, "YER": {}, "ZAR": {}, "ZMW": {}, "ZWL": {},
}

// Normalize trims and upper-cases a raw currency code.
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Valid reports whether code (already normalized) is a recognized
// ISO 4217 currency.
func Valid(code string) bool {
	if len(code) != 3 {
		return false
	}
	_, ok := codes[code]
	return ok
}
