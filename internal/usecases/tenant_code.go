package usecases

import "strings"

// bankShortNameLen bounds the short display name of auto-registered banks
const bankShortNameLen = 20

// NormalizeTenantCode turns a display name into a bank/branch code:
// trimmed, uppercased, every space replaced by "_", cut to maxLen runes.
// Space runs are not collapsed: "State  Bank" becomes "STATE__BANK".
func NormalizeTenantCode(name string, maxLen int) string {
	code := []rune(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(name)), " ", "_"))
	if maxLen > 0 && len(code) > maxLen {
		code = code[:maxLen]
	}
	return string(code)
}

// BankShortName is the display name cut to bankShortNameLen runes
func BankShortName(name string) string {
	short := []rune(strings.TrimSpace(name))
	if len(short) > bankShortNameLen {
		short = short[:bankShortNameLen]
	}
	return string(short)
}
