package util

import "strings"

// Iraqi mobile numbers are normalized to the canonical 9647XXXXXXXX form.
// Accepted inputs: +9647810011034, 009647810011034, 9647810011034,
// 07810011034, 7810011034, with Arabic or Persian digits anywhere.

const iraqCountryCode = "964"

func NormalizePhoneNumber(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= '٠' && r <= '٩': // Arabic-Indic digits
			b.WriteRune('0' + (r - '٠'))
		case r >= '۰' && r <= '۹': // Extended Arabic-Indic (Persian) digits
			b.WriteRune('0' + (r - '۰'))
		}
	}
	normalized := b.String()

	switch {
	case strings.HasPrefix(normalized, "00964"):
		normalized = normalized[2:]
	case strings.HasPrefix(normalized, "964"):
		// already canonical
	case strings.HasPrefix(normalized, "07"):
		normalized = iraqCountryCode + normalized[1:]
	case strings.HasPrefix(normalized, "7") && len(normalized) == 10:
		normalized = iraqCountryCode + normalized
	}

	return normalized
}

// PhoneVariants lists every format a number may have been stored under,
// for lookups against accounts created before normalization existed.
func PhoneVariants(phone string) []string {
	normalized := NormalizePhoneNumber(phone)

	localNumber := normalized
	if strings.HasPrefix(normalized, iraqCountryCode) {
		localNumber = normalized[len(iraqCountryCode):]
	}

	return []string{
		normalized,         // 9647810011034
		"+" + normalized,   // +9647810011034
		"00" + normalized,  // 009647810011034
		"0" + localNumber,  // 07810011034
		localNumber,        // 7810011034
	}
}
