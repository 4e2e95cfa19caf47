package server

import (
	"encoding/json"
	"math"
	"testing"
)

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{`3`, 3, true},
		{`2.9`, 2, true},
		{`-1.5`, -1, true},
		{`"4"`, 4, true},
		{`" 5 "`, 5, true},
		{`true`, 1, true},
		{`false`, 0, true},
		{`1e12`, math.MaxInt32, true},
		{`-1e12`, math.MinInt32, true},
		{`"99999999999999999999"`, math.MaxInt32, true},
		{`"3.0"`, 0, false},
		{`"high"`, 0, false},
		{`[1]`, 0, false},
		{`{}`, 0, false},
		{`null`, 0, false},
	}
	for _, tc := range tests {
		got, ok := coerceInt(json.RawMessage(tc.raw))
		if ok != tc.wantOK || got != tc.want {
			t.Errorf("coerceInt(%s) = %d, %v; want %d, %v", tc.raw, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestIsFalsy(t *testing.T) {
	for _, raw := range []string{``, `null`, `0`, `""`, `false`} {
		if !isFalsy(json.RawMessage(raw)) {
			t.Errorf("isFalsy(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{`1`, `"7"`, `true`, `"0 "`} {
		if isFalsy(json.RawMessage(raw)) {
			t.Errorf("isFalsy(%q) = true, want false", raw)
		}
	}
}
