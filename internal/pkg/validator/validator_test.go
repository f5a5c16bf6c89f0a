package validator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	valid := []string{
		"0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // valid UUIDv7
		"0188D0F2-7B8C-7B4A-8A2B-6B8B8B8B8B8B", // valid UUIDv7 (uppercase)
	}
	invalid := []string{
		"123e4567-e89b-12d3-a456-426614174000", // not v7
		"123E4567-E89B-12D3-A456-426614174000", // not v7
		"0188d0f27b8c7b4a8a2b6b8b8b8b8b8b",     // missing dashes
		"g188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b", // invalid hex
		"",                                     // empty
	}
	for _, uuid := range valid {
		if !IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = false, want true", uuid)
		}
	}
	for _, uuid := range invalid {
		if IsValidUUID(uuid) {
			t.Errorf("IsValidUUID(%q) = true, want false", uuid)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31"}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsFutureDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)
	// 2024-03-01 20:00 UTC is already 2024-03-02 in UTC+7
	now := time.Date(2024, 3, 1, 20, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		loc  *time.Location
		want bool
	}{
		{"2024-03-01", time.UTC, false},
		{"2024-03-02", time.UTC, true},
		{"2024-02-29", time.UTC, false},
		{"2024-03-02", jakarta, false},
		{"2024-03-03", jakarta, true},
	}
	for _, c := range cases {
		d, ok := IsValidDate(c.date)
		if !ok {
			t.Fatalf("IsValidDate(%q) = false", c.date)
		}
		if got := IsFutureDate(d, now, c.loc); got != c.want {
			t.Errorf("IsFutureDate(%q, %s) = %v, want %v", c.date, c.loc, got, c.want)
		}
	}
}

func TestIsValidUsername(t *testing.T) {
	valid := []string{"owner", "site.admin", "team_lead-2"}
	invalid := []string{"ab", "has space", "name@x", ""}
	for _, u := range valid {
		if !IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = false, want true", u)
		}
	}
	for _, u := range invalid {
		if IsValidUsername(u) {
			t.Errorf("IsValidUsername(%q) = true, want false", u)
		}
	}
}

func TestValidationErrors_Error(t *testing.T) {
	errs := ValidationErrors{
		{Field: "work_date", Message: "invalid"},
		{Field: "day_count", Message: "required"},
	}
	got := errs.Error()
	want := "work_date: invalid; day_count: required"
	if got != want {
		t.Errorf("ValidationErrors.Error() = %q, want %q", got, want)
	}
}

func TestValidationErrors_ToMap(t *testing.T) {
	errs := ValidationErrors{
		{Field: "work_date", Message: "invalid"},
		{Field: "day_count", Message: "required"},
	}
	got := errs.ToMap()
	want := map[string]string{"work_date": "invalid", "day_count": "required"}
	if len(got) != len(want) {
		t.Errorf("ValidationErrors.ToMap() length = %d, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("ValidationErrors.ToMap()[%q] = %q, want %q", k, got[k], v)
		}
	}
}

func TestClampLimit(t *testing.T) {
	cases := []struct {
		limit, want int
	}{
		{0, 100},
		{-3, 100},
		{42, 42},
		{9000, 500},
	}
	for _, c := range cases {
		if got := ClampLimit(c.limit, 100, 500); got != c.want {
			t.Errorf("ClampLimit(%d) = %d, want %d", c.limit, got, c.want)
		}
	}
}

func TestIsValidMoney(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"0.01", true},
		{"150", true},
		{"999999999999.99", true},
		{"0", false},
		{"-5", false},
		{"0.004", false},
		{"10.001", false},
		{"1000000000000", false},
		{"12345678901234.5", false},
	}
	for _, c := range cases {
		if got := IsValidMoney(decimal.RequireFromString(c.input)); got != c.want {
			t.Errorf("IsValidMoney(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}
