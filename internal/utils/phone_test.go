package util_test

import (
	"testing"

	util "github.com/muraja-app/muraja-backend/internal/utils"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"InternationalPlus", "+9647810011034", "9647810011034"},
		{"InternationalZeros", "009647810011034", "9647810011034"},
		{"AlreadyCanonical", "9647810011034", "9647810011034"},
		{"LocalWithZero", "07810011034", "9647810011034"},
		{"LocalWithoutZero", "7810011034", "9647810011034"},
		{"WithSpacesAndDashes", "+964 781-001-1034", "9647810011034"},
		{"ArabicDigits", "٠٧٨١٠٠١١٠٣٤", "9647810011034"},
		{"PersianDigits", "۰۷۸۱۰۰۱۱۰۳۴", "9647810011034"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := util.NormalizePhoneNumber(tc.input)
			if got != tc.want {
				t.Errorf("NormalizePhoneNumber(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestPhoneVariants(t *testing.T) {
	variants := util.PhoneVariants("07810011034")

	want := map[string]bool{
		"9647810011034":   false,
		"+9647810011034":  false,
		"009647810011034": false,
		"07810011034":     false,
		"7810011034":      false,
	}

	for _, v := range variants {
		if _, ok := want[v]; !ok {
			t.Errorf("unexpected variant %q", v)
			continue
		}
		want[v] = true
	}
	for v, seen := range want {
		if !seen {
			t.Errorf("missing variant %q", v)
		}
	}
}
