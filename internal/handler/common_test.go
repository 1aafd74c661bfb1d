package handler

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-02-28")
	if err != nil {
		t.Fatalf("parseDate: %v", err)
	}
	if d.Location() != time.UTC {
		t.Error("parsed date must be in UTC")
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Error("parsed date must be midnight")
	}

	for _, bad := range []string{"", "2026-2-28", "28-02-2026", "2026-02-30T00:00:00Z"} {
		if _, err := parseDate(bad); err == nil {
			t.Errorf("parseDate(%q) should fail", bad)
		}
	}
}

func TestTodayUTC(t *testing.T) {
	d := todayUTC()
	if d.Location() != time.UTC {
		t.Error("todayUTC must be UTC")
	}
	if d.Hour() != 0 || d.Minute() != 0 || d.Second() != 0 {
		t.Error("todayUTC must be truncated to midnight")
	}
}
