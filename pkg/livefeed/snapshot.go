package livefeed

import "time"

// Snapshot carries the slices of current domain state the synthesizer reads.
// Callers assemble it from whatever queries back their views; the synthesizer
// itself performs no I/O and treats the snapshot as immutable.
type Snapshot struct {
	// AssignedTickets are open tickets currently assigned to the caller.
	AssignedTickets []Ticket `json:"assignedTickets,omitempty"`

	// SubmittedTickets are still-active tickets the caller opened.
	SubmittedTickets []Ticket `json:"submittedTickets,omitempty"`

	// DelegatedTickets are open tickets the caller assigned to others.
	DelegatedTickets []Ticket `json:"delegatedTickets,omitempty"`

	// PendingApprovals are approval requests visible to the caller's role.
	PendingApprovals []Approval `json:"pendingApprovals,omitempty"`

	// RecentAssets are assets assigned to the caller recently enough to
	// surface.
	RecentAssets []Asset `json:"recentAssets,omitempty"`

	// UpcomingMaintenance lists scheduled maintenance touching the
	// caller's assets.
	UpcomingMaintenance []Maintenance `json:"upcomingMaintenance,omitempty"`
}

// Ticket is the slice of a helpdesk ticket the synthesizer needs.
type Ticket struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Urgent bool   `json:"urgent,omitempty"`
}

// Approval is a pending approval request, e.g. an upgrade awaiting sign-off.
type Approval struct {
	ID    string `json:"id"`
	Kind  string `json:"kind,omitempty"`
	Title string `json:"title,omitempty"`
}

// Asset is an inventory item assigned to the caller.
type Asset struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	AssignedAt time.Time `json:"assignedAt,omitempty"`
}

// Maintenance is a scheduled maintenance window on one of the caller's
// assets.
type Maintenance struct {
	AssetID      string    `json:"assetId"`
	AssetName    string    `json:"assetName,omitempty"`
	ScheduledFor time.Time `json:"scheduledFor,omitempty"`
}
