package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lixenwraith/strata/domain"
)

// ExportSchemaVersion identifies the JSON export document layout.
const ExportSchemaVersion = 1

// CategoryExport is one category row in the JSON export.
type CategoryExport struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorIndex  int    `json:"color_index"`
	KarmaEffect int8   `json:"karma_effect"`
}

// SessionExport is one session row in the JSON export, denormalized with
// the category name.
type SessionExport struct {
	ID             int    `json:"id"`
	Date           string `json:"date"`
	CategoryID     uint64 `json:"category_id"`
	CategoryName   string `json:"category_name"`
	Description    string `json:"description"`
	StartTime      string `json:"start_time"`
	EndTime        string `json:"end_time"`
	ElapsedSeconds int    `json:"elapsed_seconds"`
}

// DataExport is the versioned JSON export document.
type DataExport struct {
	SchemaVersion int              `json:"schema_version"`
	ExportedAt    time.Time        `json:"exported_at"`
	Categories    []CategoryExport `json:"categories"`
	Sessions      []SessionExport  `json:"sessions"`
}

// BuildExport assembles the export document from loaded records. The
// reserved none category is omitted; sessions keep their none rows so
// the export is a faithful copy of the log.
func BuildExport(categories []domain.Category, sessions []domain.Session, now time.Time) DataExport {
	names := make(map[domain.CategoryID]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	export := DataExport{
		SchemaVersion: ExportSchemaVersion,
		ExportedAt:    now.UTC(),
		Categories:    []CategoryExport{},
		Sessions:      []SessionExport{},
	}
	for _, c := range categories {
		if c.ID == domain.NoneID {
			continue
		}
		export.Categories = append(export.Categories, CategoryExport{
			ID:          uint64(c.ID),
			Name:        c.Name,
			Description: c.Description,
			ColorIndex:  c.ColorIndex,
			KarmaEffect: c.KarmaEffect,
		})
	}
	for _, s := range sessions {
		name, ok := names[s.CategoryID]
		if !ok {
			name = domain.NoneName
		}
		export.Sessions = append(export.Sessions, SessionExport{
			ID:             s.ID,
			Date:           s.Date,
			CategoryID:     uint64(s.CategoryID),
			CategoryName:   name,
			Description:    s.Description,
			StartTime:      s.StartTime,
			EndTime:        s.EndTime,
			ElapsedSeconds: s.ElapsedSeconds,
		})
	}
	return export
}

// ExportJSON renders the export document as indented JSON.
func ExportJSON(export DataExport) ([]byte, error) {
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return data, nil
}

// SessionUID derives the stable calendar UID for a session. UUIDv5 over
// the session's identifying fields: re-exporting unchanged data yields
// identical UIDs, so calendar clients deduplicate instead of
// re-importing.
func SessionUID(s SessionExport) string {
	seed := fmt.Sprintf("strata-session-%d-%s-%d", s.ID, s.Date, s.CategoryID)
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(seed)).String()
}

// ExportICS renders the sessions as an iCalendar document. None-category
// and zero-length sessions are skipped.
func ExportICS(export DataExport, now time.Time) []byte {
	var sb strings.Builder
	sb.WriteString("BEGIN:VCALENDAR\r\n")
	sb.WriteString("VERSION:2.0\r\n")
	sb.WriteString("PRODID:-//strata//time tracking//EN\r\n")

	stamp := now.UTC().Format("20060102T150405Z")
	for _, s := range export.Sessions {
		if s.CategoryName == domain.NoneName || s.ElapsedSeconds == 0 {
			continue
		}
		sb.WriteString("BEGIN:VEVENT\r\n")
		fmt.Fprintf(&sb, "UID:%s\r\n", SessionUID(s))
		fmt.Fprintf(&sb, "DTSTAMP:%s\r\n", stamp)
		fmt.Fprintf(&sb, "DTSTART:%s\r\n", icsDateTime(s.Date, s.StartTime))
		fmt.Fprintf(&sb, "DTEND:%s\r\n", icsDateTime(s.Date, s.EndTime))
		fmt.Fprintf(&sb, "SUMMARY:%s\r\n", icsEscape(s.CategoryName))
		if s.Description != "" {
			fmt.Fprintf(&sb, "DESCRIPTION:%s\r\n", icsEscape(s.Description))
		}
		fmt.Fprintf(&sb, "CATEGORIES:%s\r\n", icsEscape(s.CategoryName))
		sb.WriteString("END:VEVENT\r\n")
	}

	sb.WriteString("END:VCALENDAR\r\n")
	return []byte(sb.String())
}

// icsDateTime converts "2006-01-02" + "15:04:05" into the compact local
// iCalendar form.
func icsDateTime(date, clock string) string {
	return strings.ReplaceAll(date, "-", "") + "T" + strings.ReplaceAll(clock, ":", "")
}

func icsEscape(s string) string {
	r := strings.NewReplacer("\\", "\\\\", ";", "\\;", ",", "\\,", "\n", "\\n")
	return r.Replace(s)
}
