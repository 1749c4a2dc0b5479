package ics

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ansokolv/social-calendar-backend/internal/model"
)

// Decode parses interchange text back into calendar items. The parse is
// best-effort, matching how interchange tooling behaves in the wild:
// unrecognized keys are ignored, malformed field lines are skipped, a stray
// END closes nothing, and a block without DTEND gets DTSTART plus one hour.
// A structurally empty document yields an empty result.
//
// Imported items are classified private/"personal"; reconciling ownership is
// the caller's job.
func Decode(data []byte) ([]*model.CalendarItem, error) {
	var res []*model.CalendarItem
	var current *model.CalendarItem
	var hasStart bool

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		key, value, ok := splitField(line)
		if !ok {
			continue
		}

		switch key {
		case "BEGIN":
			if strings.EqualFold(value, "VEVENT") {
				current = &model.CalendarItem{
					Exceptions: map[int64]struct{}{},
					ItemCreate: model.ItemCreate{
						Kind:       model.ItemKindEvent,
						Visibility: model.VisibilityPrivate,
						Source:     model.SourcePersonal,
					},
				}
				hasStart = false
			}
		case "END":
			if !strings.EqualFold(value, "VEVENT") || current == nil {
				continue
			}
			if hasStart {
				if current.To.IsZero() {
					current.To = current.From.Add(time.Hour)
				}
				res = append(res, current)
			}
			current = nil
		case "UID":
			if current != nil {
				current.UID = value
			}
		case "SUMMARY":
			if current != nil {
				current.Title = unescapeText(value)
			}
		case "DESCRIPTION":
			if current != nil {
				current.Description = unescapeText(value)
			}
		case "LOCATION":
			if current != nil {
				current.Location = unescapeText(value)
			}
		case "DTSTART":
			if current == nil {
				continue
			}
			if t, err := parseStamp(value); err == nil {
				current.From = t
				hasStart = true
			}
		case "DTEND":
			if current == nil {
				continue
			}
			if t, err := parseStamp(value); err == nil {
				current.To = t
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan document: %w", err)
	}

	return res, nil
}

// splitField breaks "KEY;PARAMS:value" into an upper-cased key and the raw
// value. Parameters after ';' are dropped; lines without ':' are malformed.
func splitField(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}

	key, _, _ = strings.Cut(key, ";")

	return strings.ToUpper(strings.TrimSpace(key)), value, true
}

// parseStamp reads the compact timestamp format. It tolerates both the
// trailing UTC marker and its absence, and a missing seconds field.
func parseStamp(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	v = strings.TrimSuffix(v, "Z")

	if t, err := time.Parse("20060102T150405", v); err == nil {
		return t, nil
	}
	if t, err := time.Parse("20060102T1504", v); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}
