package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

func exportItem(uid, title, description, location string, from, to time.Time) *model.CalendarItem {
	return &model.CalendarItem{
		UID: uid,
		ItemCreate: model.ItemCreate{
			Kind:        model.ItemKindEvent,
			Title:       title,
			Description: description,
			Location:    location,
			From:        from,
			To:          to,
		},
	}
}

func TestEscapeUnescapeInverse(t *testing.T) {
	inputs := []string{
		"plain",
		"semi;colon",
		"comma,separated,values",
		"back\\slash",
		"multi\nline\ntext",
		`all of it: \; \, \\ and` + "\na newline",
		"",
	}

	for _, in := range inputs {
		if got := unescapeText(escapeText(in)); got != in {
			t.Errorf("unescape(escape(%q)) = %q", in, got)
		}
	}
}

func TestEscapeOrdersBackslashFirst(t *testing.T) {
	if got := escapeText(`a\;b`); got != `a\\\;b` {
		t.Errorf("escape = %q, want %q", got, `a\\\;b`)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	from := time.Date(2022, time.March, 14, 9, 0, 0, 0, time.UTC)
	now := time.Date(2022, time.March, 1, 12, 0, 0, 0, time.UTC)

	items := []*model.CalendarItem{
		exportItem("uid-1", "Planning; sync", "line one\nline two", "Room 4, floor 2", from, from.Add(time.Hour)),
		exportItem("uid-2", "1:1", "", "", from.Add(2*time.Hour), from.Add(3*time.Hour)),
	}

	decoded, err := Decode(Encode(items, now))
	if err != nil {
		t.Fatal(err)
	}

	if len(decoded) != len(items) {
		t.Fatalf("got %d items, want %d", len(decoded), len(items))
	}

	for i, want := range items {
		got := decoded[i]
		if got.UID != want.UID {
			t.Errorf("item %d: uid = %q, want %q", i, got.UID, want.UID)
		}
		if got.Title != want.Title {
			t.Errorf("item %d: title = %q, want %q", i, got.Title, want.Title)
		}
		if got.Description != want.Description {
			t.Errorf("item %d: description = %q, want %q", i, got.Description, want.Description)
		}
		if got.Location != want.Location {
			t.Errorf("item %d: location = %q, want %q", i, got.Location, want.Location)
		}
		if !got.From.Equal(want.From) {
			t.Errorf("item %d: from = %v, want %v", i, got.From, want.From)
		}
		if !got.To.Equal(want.To) {
			t.Errorf("item %d: to = %v, want %v", i, got.To, want.To)
		}
		if got.Visibility != model.VisibilityPrivate {
			t.Errorf("item %d: imported visibility must default to private", i)
		}
		if got.Source != model.SourcePersonal {
			t.Errorf("item %d: imported source = %q", i, got.Source)
		}
	}
}

func TestEncodeEnvelopeAndLineEndings(t *testing.T) {
	from := time.Date(2022, time.March, 14, 9, 0, 0, 0, time.UTC)
	out := Encode([]*model.CalendarItem{
		exportItem("uid-1", "Sync", "", "", from, from.Add(time.Hour)),
	}, from)

	text := string(out)
	if !strings.HasPrefix(text, "BEGIN:VCALENDAR\r\n") {
		t.Error("document must open with BEGIN:VCALENDAR")
	}
	if !strings.HasSuffix(text, "END:VCALENDAR\r\n") {
		t.Error("document must close with END:VCALENDAR")
	}
	for _, required := range []string{"VERSION:2.0", "PRODID:", "CALSCALE:GREGORIAN", "METHOD:PUBLISH", "DTSTAMP:20220314T090000Z"} {
		if !strings.Contains(text, required) {
			t.Errorf("document is missing %q", required)
		}
	}
	if strings.Contains(strings.ReplaceAll(text, "\r\n", ""), "\n") {
		t.Error("all line endings must be CRLF")
	}
}

// The exported document must be readable by an independent iCalendar
// implementation, not just our own decoder.
func TestEncodeParsesWithExternalLibrary(t *testing.T) {
	from := time.Date(2022, time.March, 14, 9, 0, 0, 0, time.UTC)
	out := Encode([]*model.CalendarItem{
		exportItem("uid-1", "Planning; sync", "agenda\nnotes", "HQ", from, from.Add(time.Hour)),
	}, from)

	cal, err := ical.ParseCalendar(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("external parser rejected export: %v", err)
	}

	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("external parser found %d events, want 1", len(events))
	}

	uid := events[0].GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value != "uid-1" {
		t.Errorf("external parser uid = %v, want uid-1", uid)
	}

	start, err := events[0].GetStartAt()
	if err != nil {
		t.Fatalf("external parser start: %v", err)
	}
	if !start.Equal(from) {
		t.Errorf("external parser start = %v, want %v", start, from)
	}
}

func TestDecodeMissingDTENDDefaultsToOneHour(t *testing.T) {
	doc := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:full",
		"DTSTART:20220314T090000Z",
		"DTEND:20220314T100000Z",
		"SUMMARY:Full block",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:truncated",
		"DTSTART:20220314T110000Z",
		"SUMMARY:No end",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	items, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}

	truncated := items[1]
	if truncated.UID != "truncated" {
		t.Fatalf("unexpected item order: %v", truncated.UID)
	}
	if want := truncated.From.Add(time.Hour); !truncated.To.Equal(want) {
		t.Errorf("defaulted end = %v, want %v", truncated.To, want)
	}
}

func TestDecodeLenientInput(t *testing.T) {
	doc := strings.Join([]string{
		"END:VEVENT", // stray end, no open block
		"BEGIN:VCALENDAR",
		"BEGIN:VEVENT",
		"UID:ok",
		"X-CUSTOM-FIELD:ignored",
		"garbage line without separator",
		"DTSTART;TZID=UTC:20220314T0900", // params and missing seconds
		"DTEND:20220314T100000",          // no UTC marker
		"SUMMARY:Still fine",
		"END:VEVENT",
		"END:VCALENDAR",
	}, "\r\n")

	items, err := Decode([]byte(doc))
	if err != nil {
		t.Fatal(err)
	}

	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	it := items[0]
	if it.Title != "Still fine" {
		t.Errorf("title = %q", it.Title)
	}
	wantFrom := time.Date(2022, time.March, 14, 9, 0, 0, 0, time.UTC)
	if !it.From.Equal(wantFrom) {
		t.Errorf("from = %v, want %v", it.From, wantFrom)
	}
	if !it.To.Equal(wantFrom.Add(time.Hour)) {
		t.Errorf("to = %v, want %v", it.To, wantFrom.Add(time.Hour))
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n"} {
		items, err := Decode([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		if len(items) != 0 {
			t.Errorf("got %d items from empty document", len(items))
		}
	}
}
