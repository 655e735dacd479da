package validator

import (
	"testing"
	"time"
)

func TestValidateName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		valid bool
	}{
		{"simple", "Maria Silva", true},
		{"accented", "João Conceição", true},
		{"hyphen and apostrophe", "Anne-Marie d'Arc", true},
		{"empty", "", false},
		{"whitespace only", "   ", false},
		{"too short", "A", false},
		{"digits", "Maria 2", false},
		{"symbols", "Maria@Silva", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateName(c.input)
			if c.valid && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", c.input, err)
			}
			if !c.valid && err == nil {
				t.Errorf("ValidateName(%q) = nil, want error", c.input)
			}
		})
	}
}

func TestValidateNameTooLong(t *testing.T) {
	long := ""
	for i := 0; i < 101; i++ {
		long += "a"
	}
	if err := ValidateName(long); err == nil {
		t.Error("ValidateName accepted a 101-char name")
	}
}

func TestValidateEmail(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"maria@example.com", true},
		{"m.silva+res@mail.pt", true},
		{"", false},
		{"not-an-email", false},
		{"a@", false},
		{"Maria Silva <maria@example.com>", false},
	}
	for _, c := range cases {
		err := ValidateEmail(c.input)
		if c.valid && err != nil {
			t.Errorf("ValidateEmail(%q) = %v, want nil", c.input, err)
		}
		if !c.valid && err == nil {
			t.Errorf("ValidateEmail(%q) = nil, want error", c.input)
		}
	}
}

func TestValidatePhone(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"912345678", true},     // PT mobile, national format
		{"+351912345678", true}, // PT mobile, international format
		{"213456789", true},     // Lisbon landline
		{"+442071838750", true}, // valid UK number
		{"", false},
		{"123", false},
		{"abcdef", false},
	}
	for _, c := range cases {
		err := ValidatePhone(c.input)
		if c.valid && err != nil {
			t.Errorf("ValidatePhone(%q) = %v, want nil", c.input, err)
		}
		if !c.valid && err == nil {
			t.Errorf("ValidatePhone(%q) = nil, want error", c.input)
		}
	}
}

func TestValidateCapacity(t *testing.T) {
	cases := []struct {
		capacity int
		valid    bool
	}{
		{0, false},
		{1, true},
		{20, true},
		{21, false},
		{-3, false},
	}
	for _, c := range cases {
		err := ValidateCapacity(c.capacity)
		if c.valid && err != nil {
			t.Errorf("ValidateCapacity(%d) = %v, want nil", c.capacity, err)
		}
		if !c.valid && err == nil {
			t.Errorf("ValidateCapacity(%d) = nil, want error", c.capacity)
		}
	}
}

func TestValidateReservationDate(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name  string
		at    time.Time
		valid bool
	}{
		{"zero time", time.Time{}, false},
		{"one second in the past", now.Add(-time.Second), false},
		{"one hour ahead", now.Add(time.Hour), true},
		{"ninety days ahead", now.Add(90 * 24 * time.Hour).Add(-time.Minute), true},
		{"ninety-one days ahead", now.Add(91 * 24 * time.Hour), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateReservationDate(c.at)
			if c.valid && err != nil {
				t.Errorf("ValidateReservationDate(%v) = %v, want nil", c.at, err)
			}
			if !c.valid && err == nil {
				t.Errorf("ValidateReservationDate(%v) = nil, want error", c.at)
			}
		})
	}
}

func TestValidateTableNumber(t *testing.T) {
	cases := []struct {
		input string
		valid bool
	}{
		{"M1", true},
		{"VIP-2", true},
		{"mesa_10", true},
		{"", false},
		{"   ", false},
		{"12345678901", false}, // 11 chars
		{"M 1", false},
		{"M#1", false},
	}
	for _, c := range cases {
		err := ValidateTableNumber(c.input)
		if c.valid && err != nil {
			t.Errorf("ValidateTableNumber(%q) = %v, want nil", c.input, err)
		}
		if !c.valid && err == nil {
			t.Errorf("ValidateTableNumber(%q) = nil, want error", c.input)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  X@Y.Com "); got != "x@y.com" {
		t.Errorf("NormalizeEmail = %q, want %q", got, "x@y.com")
	}
}

func TestCapitalizeName(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"maria da silva", "Maria da Silva"},
		{"JOÃO DOS SANTOS", "João dos Santos"},
		{"de castro", "De Castro"}, // leading preposition is capitalized
		{"  ana   e   rui ", "Ana e Rui"},
	}
	for _, c := range cases {
		if got := CapitalizeName(c.input); got != c.want {
			t.Errorf("CapitalizeName(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestCleanString(t *testing.T) {
	if got := CleanString("  a   b\tc "); got != "a b c" {
		t.Errorf("CleanString = %q, want %q", got, "a b c")
	}
}
