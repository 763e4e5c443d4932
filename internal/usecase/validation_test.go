package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/ecocoleta/internal/domain/errors"
	"github.com/polkiloo/ecocoleta/internal/domain/model"
)

func TestValidateTaxID(t *testing.T) {
	valid := []string{
		"52998224725",
		"529.982.247-25",
		"111.444.777-35",
		"12345678909",
	}
	for _, taxID := range valid {
		if !ValidateTaxID(taxID) {
			t.Fatalf("expected tax id %s to be valid", taxID)
		}
	}

	invalid := []string{"", "123456", "abcdefghijk", "52998224724", "11111111111", "529.982.247-2x", "5299822472500"}
	for _, taxID := range invalid {
		if ValidateTaxID(taxID) {
			t.Fatalf("expected tax id %s to be invalid", taxID)
		}
	}
}

func TestNormalizeDigits(t *testing.T) {
	cases := map[string]string{
		"529.982.247-25": "52998224725",
		"OS 0007":        "0007",
		"abc":            "",
		"":               "",
		"１２":             "",
	}
	for in, want := range cases {
		if got := NormalizeDigits(in); got != want {
			t.Fatalf("NormalizeDigits(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"(11) 98765-4321": "11987654321",
		"19 3232-1010":    "1932321010",
	}
	for in, want := range cases {
		if got, ok := NormalizePhone(in); !ok || got != want {
			t.Fatalf("NormalizePhone(%q) = %q %v, want %q", in, got, ok, want)
		}
	}
	for _, in := range []string{"", "98765-4321", "+55 (11) 98765-4321"} {
		if _, ok := NormalizePhone(in); ok {
			t.Fatalf("expected %q to be rejected", in)
		}
	}
}

func TestNormalizeAddress(t *testing.T) {
	in := model.Address{Street: " Av. Brasil ", Number: "s/n", District: "Jardim", City: "Recife", State: " pe ", PostalCode: "50.030-230"}
	got, err := NormalizeAddress(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Address{Street: "Av. Brasil", Number: "s/n", District: "Jardim", City: "Recife", State: "PE", PostalCode: "50030230"}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}

	in.PostalCode = "5003023"
	if _, err := NormalizeAddress(in); !errors.Is(err, domainErrors.ErrInvalidAccount) {
		t.Fatalf("expected invalid account for short CEP, got %v", err)
	}
}
