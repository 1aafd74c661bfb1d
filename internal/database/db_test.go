package database

import (
	"strings"
	"testing"
)

func TestDSNPinsUTCDates(t *testing.T) {
	for _, want := range []string{"parseTime=true", "loc=UTC"} {
		if !strings.Contains(dsnParams, want) {
			t.Errorf("dsnParams = %q, missing %q", dsnParams, want)
		}
	}
}
