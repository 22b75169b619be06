package preferences

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Preference holds a user's notification delivery settings: one toggle per
// notification category plus an optional do-not-disturb window.
type Preference struct {
	UserID string `json:"userId"`

	// Category toggles. A disabled toggle suppresses non-critical
	// notifications of that category before they are persisted.
	TicketAssignments   bool `json:"ticketAssignments"`
	TicketStatusChanges bool `json:"ticketStatusChanges"`
	AssetAssignments    bool `json:"assetAssignments"`
	MaintenanceAlerts   bool `json:"maintenanceAlerts"`
	UpgradeRequests     bool `json:"upgradeRequests"`
	SystemAnnouncements bool `json:"systemAnnouncements"`
	EmployeeChanges     bool `json:"employeeChanges"`

	// Do-not-disturb window. Start and End are clock times in "HH:MM"
	// (24-hour) format. A window where Start > End wraps past midnight,
	// e.g. 22:00-06:00. Days restricts the window to the listed weekdays;
	// an empty set applies the window every day.
	DNDEnabled bool           `json:"dndEnabled"`
	DNDStart   string         `json:"dndStart,omitempty"`
	DNDEnd     string         `json:"dndEnd,omitempty"`
	DNDDays    []time.Weekday `json:"dndDays,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Default returns the settings used when a user has no stored preference
// record: every category enabled and do-not-disturb off. Absence of a record
// must never block delivery.
func Default(userID string) Preference {
	return Preference{
		UserID:              userID,
		TicketAssignments:   true,
		TicketStatusChanges: true,
		AssetAssignments:    true,
		MaintenanceAlerts:   true,
		UpgradeRequests:     true,
		SystemAnnouncements: true,
		EmployeeChanges:     true,
	}
}

// CategoryEnabled reports whether the toggle named by category is on.
// Categories without a dedicated toggle, including the generic alerts
// bucket, are always enabled.
func (p Preference) CategoryEnabled(category string) bool {
	switch category {
	case "ticketAssignments":
		return p.TicketAssignments
	case "ticketStatusChanges":
		return p.TicketStatusChanges
	case "assetAssignments":
		return p.AssetAssignments
	case "maintenanceAlerts":
		return p.MaintenanceAlerts
	case "upgradeRequests":
		return p.UpgradeRequests
	case "systemAnnouncements":
		return p.SystemAnnouncements
	case "employeeChanges":
		return p.EmployeeChanges
	default:
		return true
	}
}

// InQuietHours reports whether now falls inside the configured
// do-not-disturb window. It returns false when DND is disabled, when either
// clock time is missing or malformed, or when the window is restricted to
// days that do not include now's weekday.
//
// Non-wrap windows (start <= end) match inclusively on both ends. Wrap
// windows (start > end) match when now >= start or now <= end.
func (p Preference) InQuietHours(now time.Time) bool {
	if !p.DNDEnabled || p.DNDStart == "" || p.DNDEnd == "" {
		return false
	}

	start, err := parseClock(p.DNDStart)
	if err != nil {
		return false
	}
	end, err := parseClock(p.DNDEnd)
	if err != nil {
		return false
	}

	if len(p.DNDDays) > 0 && !slices.Contains(p.DNDDays, now.Weekday()) {
		return false
	}

	cur := now.Hour()*60 + now.Minute()
	if start <= end {
		return cur >= start && cur <= end
	}
	return cur >= start || cur <= end
}

// Validate checks that the DND clock times parse when DND is enabled.
func (p Preference) Validate() error {
	if !p.DNDEnabled {
		return nil
	}
	if p.DNDStart != "" {
		if _, err := parseClock(p.DNDStart); err != nil {
			return err
		}
	}
	if p.DNDEnd != "" {
		if _, err := parseClock(p.DNDEnd); err != nil {
			return err
		}
	}
	return nil
}

// parseClock converts an "HH:MM" clock time into minutes since midnight.
func parseClock(s string) (int, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return h*60 + m, nil
}
