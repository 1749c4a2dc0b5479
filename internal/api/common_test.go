package api

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateTimeJSONRoundTrip(t *testing.T) {
	in := dateTime(time.Date(2022, time.March, 14, 9, 30, 0, 0, time.UTC))

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2022-03-14T09:30:00Z"` {
		t.Errorf("marshal = %s", data)
	}

	var out dateTime
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if !time.Time(out).Equal(time.Time(in)) {
		t.Errorf("round trip = %v, want %v", time.Time(out), time.Time(in))
	}
}

func TestDurationJSONRoundTrip(t *testing.T) {
	in := duration(90 * time.Minute)

	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"1h30m0s"` {
		t.Errorf("marshal = %s", data)
	}

	var out duration
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %v, want %v", time.Duration(out), time.Duration(in))
	}
}

func TestParseOccurrenceID(t *testing.T) {
	id, ts, err := parseOccurrenceID("42_1647250200")
	if err != nil {
		t.Fatal(err)
	}
	if id != 42 {
		t.Errorf("id = %d, want 42", id)
	}
	if ts.Unix() != 1647250200 {
		t.Errorf("ts = %v", ts)
	}

	for _, bad := range []string{"", "42", "x_1", "42_x"} {
		if _, _, err := parseOccurrenceID(bad); err == nil {
			t.Errorf("parseOccurrenceID(%q) must fail", bad)
		}
	}
}
