package exchange

import "strings"

// Symbol normalizers. Each maps one exchange-native spelling to the canonical
// {BASE}USDT form and returns "" for pairs that are not USDT-quoted. All of
// them are idempotent: a canonical symbol passes through unchanged.

// NormalizePlain handles venues that already use the canonical form
// (e.g. "BTCUSDT" on MEXC spot, Bybit, Bitget).
func NormalizePlain(native string) string {
	if strings.HasSuffix(native, "USDT") {
		return native
	}
	return ""
}

// NormalizeUnderscore handles "BTC_USDT" spellings (Gate.io, MEXC contracts).
func NormalizeUnderscore(native string) string {
	return NormalizePlain(strings.ReplaceAll(native, "_", ""))
}

// NormalizeDash handles "BTC-USDT" spellings (BingX, OKX spot).
func NormalizeDash(native string) string {
	return NormalizePlain(strings.ReplaceAll(native, "-", ""))
}

// NormalizeSwap handles OKX perpetual instrument IDs ("BTC-USDT-SWAP").
func NormalizeSwap(native string) string {
	if base, ok := strings.CutSuffix(native, "-USDT-SWAP"); ok {
		return base + "USDT"
	}
	return NormalizeDash(native)
}
