package trip

import (
	"testing"

	"ojoto/internal/types"
)

func TestCheckTime(t *testing.T) {
	for _, ok := range []string{"00:00", "08:30", "23:59", "17:45:10"} {
		if err := checkTime(ok); err != nil {
			t.Errorf("checkTime(%q) = %v", ok, err)
		}
	}
	for _, bad := range []string{"24:00", "8am", "08-30", "08:30 PM", ""} {
		if err := checkTime(bad); err == nil {
			t.Errorf("checkTime(%q) accepted", bad)
		}
	}
}

func TestCheckDate(t *testing.T) {
	if err := checkDate("2026-02-28"); err != nil {
		t.Fatalf("checkDate: %v", err)
	}
	for _, bad := range []string{"2026-02-30", "28-02-2026", "2026/02/28", "tomorrow"} {
		if err := checkDate(bad); err == nil {
			t.Errorf("checkDate(%q) accepted", bad)
		}
	}
}

func TestValidateCreateTrimsText(t *testing.T) {
	b, err := validateCreate(CreateInput{
		OriginAddress:      "  Ogui Road ",
		DestinationAddress: "Airport",
		Date:               " 2026-11-02",
		Time:               "09:00 ",
		DistanceKm:         NumberOf(1),
	}, false)
	if err != nil {
		t.Fatalf("validateCreate: %v", err)
	}
	if b.originAddress != "Ogui Road" || b.date != "2026-11-02" || b.time != "09:00" {
		t.Fatalf("not trimmed: %+v", b)
	}
}

func TestValidatePatchOnlySetsSentFields(t *testing.T) {
	dest := "New Haven"
	ch, err := validatePatch(Patch{DestinationAddress: &dest, DistanceKm: Number{}})
	if err != nil {
		t.Fatalf("validatePatch: %v", err)
	}
	if ch.DestinationAddress == nil || *ch.DestinationAddress != dest {
		t.Fatalf("destination = %v", ch.DestinationAddress)
	}
	if ch.OriginAddress != nil || ch.DistanceKm != nil || ch.Fare != nil || ch.Origin != nil {
		t.Fatalf("unexpected changes: %+v", ch)
	}
}

func TestParseDistance(t *testing.T) {
	if d, err := ParseDistance(NumberFromString("2.25")); err != nil || d != 2.25 {
		t.Fatalf("ParseDistance = %v, %v", d, err)
	}
	if _, err := ParseDistance(NumberFromString("Infinity")); !types.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
