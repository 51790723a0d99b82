package entity

import (
	"testing"
	"time"
)

func TestComputeTotalHours(t *testing.T) {
	fullWeek := func(hours float64) []DayEntry {
		entries := make([]DayEntry, DaysPerWeek)
		for i := range entries {
			entries[i] = DayEntry{DayIndex: i, Hours: hours}
		}
		return entries
	}

	tests := []struct {
		name     string
		rows     []TimesheetRow
		expected float64
	}{
		{"empty row set", nil, 0},
		{"no entries", []TimesheetRow{{ProjectID: "p1"}}, 0},
		{
			"standard work week",
			[]TimesheetRow{{
				ProjectID: "p1",
				Entries: []DayEntry{
					{DayIndex: 0, Hours: 8}, {DayIndex: 1, Hours: 8},
					{DayIndex: 2, Hours: 8}, {DayIndex: 3, Hours: 8},
					{DayIndex: 4, Hours: 8}, {DayIndex: 5, Hours: 0},
					{DayIndex: 6, Hours: 0},
				},
			}},
			40,
		},
		{
			"multiple rows accumulate",
			[]TimesheetRow{
				{ProjectID: "p1", Entries: fullWeek(4)},
				{ProjectID: "p2", Entries: fullWeek(2)},
			},
			42,
		},
		{
			"fractional hours",
			[]TimesheetRow{{
				ProjectID: "p1",
				Entries:   []DayEntry{{Hours: 7.5}, {Hours: 0.25}},
			}},
			7.75,
		},
		{
			"short entry list is summed as-is",
			[]TimesheetRow{{
				ProjectID: "p1",
				Entries:   []DayEntry{{Hours: 3}},
			}},
			3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeTotalHours(tt.rows); got != tt.expected {
				t.Errorf("ComputeTotalHours() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTimesheet_AppendAudit(t *testing.T) {
	ts := &Timesheet{}

	ts.AppendAudit(ActionCreated, "a@example.com", mustTime(t, "2025-01-06T09:00:00Z"))
	ts.AppendAudit(ActionUpdated, "b@example.com", mustTime(t, "2025-01-06T10:00:00Z"))

	if len(ts.AuditTrail) != 2 {
		t.Fatalf("audit trail length = %d, want 2", len(ts.AuditTrail))
	}
	if ts.AuditTrail[0].Action != ActionCreated {
		t.Errorf("first action = %s, want %s", ts.AuditTrail[0].Action, ActionCreated)
	}
	if ts.AuditTrail[1].Actor != "b@example.com" {
		t.Errorf("second actor = %s, want b@example.com", ts.AuditTrail[1].Actor)
	}
}

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		t.Fatalf("parse time %q: %v", value, err)
	}
	return parsed
}
