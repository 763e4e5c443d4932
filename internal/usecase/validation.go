package usecase

import (
	"fmt"
	"strings"
	"unicode"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

// TaxIDLength is the number of digits of a Brazilian CPF.
const TaxIDLength = 11

// NormalizeDigits drops every non digit rune so "529.982.247-25" becomes "52998224725".
func NormalizeDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// ValidateTaxID checks a CPF in any punctuation using its two mod 11 check digits.
func ValidateTaxID(taxID string) bool {
	for _, r := range taxID {
		if !unicode.IsDigit(r) && !strings.ContainsRune(".- ", r) {
			return false
		}
	}

	digits := NormalizeDigits(taxID)
	if len(digits) != TaxIDLength {
		return false
	}

	allSame := true
	for i := 1; i < len(digits); i++ {
		if digits[i] != digits[0] {
			allSame = false
			break
		}
	}
	if allSame {
		return false
	}

	for _, n := range []int{9, 10} {
		var sum int
		for i := 0; i < n; i++ {
			sum += int(digits[i]-'0') * (n + 1 - i)
		}
		check := sum * 10 % 11
		if check == 10 {
			check = 0
		}
		if check != int(digits[n]-'0') {
			return false
		}
	}

	return true
}

const postalCodeLength = 8

var federativeUnits = map[string]struct{}{
	"AC": {}, "AL": {}, "AP": {}, "AM": {}, "BA": {}, "CE": {}, "DF": {}, "ES": {}, "GO": {},
	"MA": {}, "MT": {}, "MS": {}, "MG": {}, "PA": {}, "PB": {}, "PR": {}, "PE": {}, "PI": {},
	"RJ": {}, "RN": {}, "RS": {}, "RO": {}, "RR": {}, "SC": {}, "SP": {}, "SE": {}, "TO": {},
}

// NormalizePhone keeps the digits of a Brazilian landline or mobile number with area code.
func NormalizePhone(phone string) (string, bool) {
	digits := NormalizeDigits(phone)
	if len(digits) != 10 && len(digits) != 11 {
		return "", false
	}
	return digits, true
}

// NormalizeAddress trims every field, reduces the CEP to digits and upper
// cases the state. It reports the first missing or malformed field.
func NormalizeAddress(a model.Address) (model.Address, error) {
	out := model.Address{
		Street:     strings.TrimSpace(a.Street),
		Number:     strings.TrimSpace(a.Number),
		District:   strings.TrimSpace(a.District),
		City:       strings.TrimSpace(a.City),
		State:      strings.ToUpper(strings.TrimSpace(a.State)),
		PostalCode: NormalizeDigits(a.PostalCode),
	}
	required := []struct {
		field, value string
	}{
		{"street", out.Street},
		{"number", out.Number},
		{"district", out.District},
		{"city", out.City},
	}
	for _, r := range required {
		if r.value == "" {
			return model.Address{}, fmt.Errorf("%w: address %s is required", domainErrors.ErrInvalidAccount, r.field)
		}
	}
	if _, ok := federativeUnits[out.State]; !ok {
		return model.Address{}, fmt.Errorf("%w: unknown state %q", domainErrors.ErrInvalidAccount, a.State)
	}
	if len(out.PostalCode) != postalCodeLength {
		return model.Address{}, fmt.Errorf("%w: postal code must have 8 digits", domainErrors.ErrInvalidAccount)
	}
	return out, nil
}
