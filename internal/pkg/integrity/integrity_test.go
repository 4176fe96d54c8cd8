package integrity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func strPtr(s string) *string { return &s }

func baseFields() Fields {
	return Fields{
		EmployeeID: "01957a3c-7b8c-7b4a-8a2b-6b8b8b8b8b8b",
		Date:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		StartTime:  strPtr("05:00"),
		EndTime:    strPtr("13:00"),
		Category:   "outdoor_round",
		IsOutside:  true,
		Gratuity:   decimal.RequireFromString("2.50"),
		CreatedAt:  time.Date(2025, 3, 3, 13, 5, 0, 123456789, time.UTC),
	}
}

func TestCanonicalLayout(t *testing.T) {
	got := string(Canonical(baseFields()))
	want := `{"employee_id":"01957a3c-7b8c-7b4a-8a2b-6b8b8b8b8b8b","date":"2025-03-03","start_time":"05:00","end_time":"13:00","category":"outdoor_round","is_outside":1,"tip":2.50,"created_at":"2025-03-03T13:05:00.123456Z"}`
	if got != want {
		t.Errorf("Canonical() =\n%s\nwant\n%s", got, want)
	}
}

func TestCanonicalNullTimes(t *testing.T) {
	f := baseFields()
	f.StartTime = nil
	f.EndTime = strPtr("")
	got := string(Canonical(f))
	if !strings.Contains(got, `"start_time":null,"end_time":null`) {
		t.Errorf("Canonical() = %s, want null clock times", got)
	}
}

func TestStampDeterministic(t *testing.T) {
	secret := "s3cr3t"
	a := Stamp(secret, baseFields())
	b := Stamp(secret, baseFields())
	if a != b {
		t.Fatalf("Stamp() not deterministic: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Errorf("len(Stamp()) = %d, want 64", len(a))
	}
	if Stamp("other", baseFields()) == a {
		t.Error("Stamp() with a different secret produced the same hash")
	}
}

func TestStampChangesWithEachField(t *testing.T) {
	secret := "s3cr3t"
	base := Stamp(secret, baseFields())

	mutations := map[string]func(f *Fields){
		"employee_id": func(f *Fields) { f.EmployeeID = "01957a3c-7b8c-7b4a-8a2b-000000000000" },
		"date":        func(f *Fields) { f.Date = f.Date.AddDate(0, 0, 1) },
		"start_time":  func(f *Fields) { f.StartTime = strPtr("05:01") },
		"end_time":    func(f *Fields) { f.EndTime = nil },
		"category":    func(f *Fields) { f.Category = "office" },
		"is_outside":  func(f *Fields) { f.IsOutside = false },
		"gratuity":    func(f *Fields) { f.Gratuity = decimal.RequireFromString("2.51") },
		"created_at":  func(f *Fields) { f.CreatedAt = f.CreatedAt.Add(time.Microsecond) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			f := baseFields()
			mutate(&f)
			if Stamp(secret, f) == base {
				t.Errorf("changing %s did not change the hash", name)
			}
		})
	}
}

func TestStampIgnoresSubMicrosecondAndZone(t *testing.T) {
	secret := "s3cr3t"
	f := baseFields()
	base := Stamp(secret, f)

	f.CreatedAt = time.Date(2025, 3, 3, 14, 5, 0, 123456999, time.FixedZone("CET", 3600))
	if Stamp(secret, f) != base {
		t.Error("hash changed for the same instant at microsecond precision")
	}
}

func TestVerify(t *testing.T) {
	secret := "s3cr3t"
	hash := Stamp(secret, baseFields())

	if !Verify(secret, baseFields(), hash) {
		t.Error("Verify() = false for an untouched entry")
	}

	tampered := baseFields()
	tampered.EndTime = strPtr("15:00")
	if Verify(secret, tampered, hash) {
		t.Error("Verify() = true for a tampered entry")
	}
	if Verify(secret, baseFields(), "not-hex") {
		t.Error("Verify() = true for a malformed hash")
	}
}

func TestNewSecret(t *testing.T) {
	a, err := NewSecret()
	if err != nil {
		t.Fatalf("NewSecret() error = %v", err)
	}
	b, _ := NewSecret()
	if len(a) != 64 {
		t.Errorf("len(NewSecret()) = %d, want 64", len(a))
	}
	if a == b {
		t.Error("NewSecret() returned the same value twice")
	}
}
