package common

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGenerateID(t *testing.T) {
	a := GenerateID("")
	b := GenerateID("")
	if a == b {
		t.Error("two generated IDs should differ")
	}
	p := GenerateID("lst-")
	if !strings.HasPrefix(string(p), "lst-") {
		t.Errorf("prefixed ID %q missing prefix", p)
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	orig := Timestamp(time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC))
	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var parsed Timestamp
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Time().Equal(orig.Time()) {
		t.Errorf("round trip mismatch: %v != %v", parsed.Time(), orig.Time())
	}
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`"not-a-time"`), &ts); err == nil {
		t.Error("expected error for invalid timestamp")
	}
}

func TestAPIResponseHelpers(t *testing.T) {
	ok := OK("req-1", 42)
	if !ok.Success || ok.Data != 42 || ok.RequestID != "req-1" {
		t.Errorf("OK built unexpected response: %+v", ok)
	}

	fail := Fail[int]("req-2", "LST_001", "listing rejected")
	if fail.Success || fail.Error == nil {
		t.Fatalf("Fail built unexpected response: %+v", fail)
	}
	if fail.Error.Code != "LST_001" {
		t.Errorf("error code = %q", fail.Error.Code)
	}
}

func TestClockFunc(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := ClockFunc(func() time.Time { return fixed })
	if !clock.Now().Equal(fixed) {
		t.Error("ClockFunc should return the wrapped time")
	}
	if SystemClock().Now().IsZero() {
		t.Error("SystemClock should return a non-zero time")
	}
}

//Personal.AI order the ending
