package notifications

import (
	"time"
)

// Type identifies the domain area a notification originates from.
type Type string

const (
	TypeTicket      Type = "ticket"
	TypeAsset       Type = "asset"
	TypeMaintenance Type = "maintenance"
	TypeUpgrade     Type = "upgrade"
	TypeSystem      Type = "system"
	TypeEmployee    Type = "employee"
	TypeGeneral     Type = "general"
)

// Priority represents the notification urgency level.
type Priority string

const (
	PriorityInfo     Priority = "info"
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities for sorting: critical > high > medium > low > info.
// Unknown values rank below info so malformed data sinks instead of surfacing.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 5
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 2
	case PriorityInfo:
		return 1
	default:
		return 0
	}
}

// Category maps a notification to one of the per-user preference toggles.
// CategoryAlerts is the generic bucket stamped when no category applies;
// it cannot be toggled off.
type Category string

const (
	CategoryTicketAssignments   Category = "ticketAssignments"
	CategoryTicketStatusChanges Category = "ticketStatusChanges"
	CategoryAssetAssignments    Category = "assetAssignments"
	CategoryMaintenanceAlerts   Category = "maintenanceAlerts"
	CategoryUpgradeRequests     Category = "upgradeRequests"
	CategorySystemAnnouncements Category = "systemAnnouncements"
	CategoryEmployeeChanges     Category = "employeeChanges"
	CategoryAlerts              Category = "alerts"
)

// Notification is a persisted in-app message for exactly one recipient.
// The title and message are stored fully rendered; rows are immutable except
// for the read and snooze state.
type Notification struct {
	ID           string     `json:"id"`
	RecipientID  string     `json:"-"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	Type         Type       `json:"type"`
	Category     Category   `json:"category"`
	Priority     Priority   `json:"priority"`
	Read         bool       `json:"read"`
	ReadAt       *time.Time `json:"readAt,omitempty"`
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty"`
	EntityID     string     `json:"entityId,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// MarkAsRead marks the notification as read with the current timestamp.
func (n *Notification) MarkAsRead() {
	n.Read = true
	now := time.Now()
	n.ReadAt = &now
}
