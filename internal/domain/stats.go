package domain

import (
	"regexp"
	"sort"
	"strconv"
	"time"
)

// NoProjectName groups records whose project column is empty.
const NoProjectName = "No project"

// hoursPattern extracts the first decimal number from a loosely typed hours field.
var hoursPattern = regexp.MustCompile(`\d+(\.\d+)?`)

// Stats is the result of aggregating raw records.
// Fields are ordered to minimize memory padding.
type Stats struct {
	ByProject map[string]float64 // Total hours per project name
	Skipped   []SkippedRecord    // Malformed records left out of the totals
	Total     float64            // Sum of all ByProject values
}

// SkippedRecord describes a record the aggregation could not use.
type SkippedRecord struct {
	Record RawRecord
	Reason string
}

// ParseRecordHours extracts hours from a stored field such as "2.50", 3 or "1.5h".
// ok is false when no number is present.
func ParseRecordHours(v any) (float64, bool) {
	var s string
	switch val := v.(type) {
	case nil:
		return 0, false
	case string:
		s = val
	default:
		s = RawRecord{ColumnHours: val}.String(ColumnHours)
	}
	match := hoursPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	hours, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return hours, true
}

// Aggregate totals hours per project. days limits the window to that many
// calendar days counting today (nil = all time); projectFilter keeps only the
// exactly matching project ("" = all). Malformed records are skipped and
// reported in Stats.Skipped; Aggregate never fails.
func Aggregate(records []RawRecord, days *int, projectFilter string, now time.Time) Stats {
	stats := Stats{ByProject: make(map[string]float64)}

	var cutoff time.Time
	if days != nil {
		cutoff = Cutoff(now, *days)
	}

	for _, rec := range records {
		ts, ok := rec.Timestamp(now.Location())
		if !ok {
			stats.Skipped = append(stats.Skipped, SkippedRecord{Record: rec, Reason: "invalid date/time"})
			continue
		}
		if days != nil && ts.Before(cutoff) {
			continue
		}

		project := rec.String(ColumnProject)
		if project == "" {
			project = NoProjectName
		}
		if projectFilter != "" && project != projectFilter {
			continue
		}

		hours, ok := ParseRecordHours(rec[ColumnHours])
		if !ok {
			stats.Skipped = append(stats.Skipped, SkippedRecord{Record: rec, Reason: "invalid hours"})
			continue
		}

		stats.ByProject[project] += hours
		stats.Total += hours
	}

	return stats
}

// ProjectShare is one line of a statistics summary.
type ProjectShare struct {
	Project string
	Hours   float64
	Percent float64
}

// Summarize orders projects by hours (descending, then by name) and computes
// each project's share of the total. Shares are 0 when the total is 0.
func Summarize(stats Stats) []ProjectShare {
	shares := make([]ProjectShare, 0, len(stats.ByProject))
	for project, hours := range stats.ByProject {
		var percent float64
		if stats.Total != 0 {
			percent = hours / stats.Total * 100
		}
		shares = append(shares, ProjectShare{Project: project, Hours: hours, Percent: percent})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Hours != shares[j].Hours {
			return shares[i].Hours > shares[j].Hours
		}
		return shares[i].Project < shares[j].Project
	})
	return shares
}
