package ics

import (
	"strings"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
	"github.com/google/uuid"
)

const (
	stampLayout = "20060102T150405Z"
	prodID      = "-//social-calendar//backend//EN"
)

// Encode serializes items into the iCalendar interchange text: a fixed
// calendar envelope and one VEVENT block per item, CRLF line endings
// throughout. now becomes each block's DTSTAMP.
func Encode(items []*model.CalendarItem, now time.Time) []byte {
	var b strings.Builder

	writeLine(&b, "BEGIN:VCALENDAR")
	writeLine(&b, "VERSION:2.0")
	writeLine(&b, "PRODID:"+prodID)
	writeLine(&b, "CALSCALE:GREGORIAN")
	writeLine(&b, "METHOD:PUBLISH")

	stamp := now.UTC().Format(stampLayout)

	for _, it := range items {
		uid := it.UID
		if uid == "" {
			uid = uuid.NewString()
		}

		writeLine(&b, "BEGIN:VEVENT")
		writeLine(&b, "UID:"+uid)
		writeLine(&b, "DTSTAMP:"+stamp)
		writeLine(&b, "DTSTART:"+it.From.UTC().Format(stampLayout))
		writeLine(&b, "DTEND:"+it.To.UTC().Format(stampLayout))
		writeLine(&b, "SUMMARY:"+escapeText(it.Title))
		if it.Description != "" {
			writeLine(&b, "DESCRIPTION:"+escapeText(it.Description))
		}
		if it.Location != "" {
			writeLine(&b, "LOCATION:"+escapeText(it.Location))
		}
		writeLine(&b, "END:VEVENT")
	}

	writeLine(&b, "END:VCALENDAR")

	return []byte(b.String())
}

func writeLine(b *strings.Builder, line string) {
	b.WriteString(line)
	b.WriteString("\r\n")
}
