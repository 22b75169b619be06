package livefeed

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/deskops/notifykit/pkg/notifications"
)

// itemKey derives the deterministic identifier of a synthesized item from
// the rule that produced it and the entity ids it covers. Equal inputs hash
// to equal keys, and a cardinality change alters the id list and therefore
// the key, which is what lets session-local dismissal survive re-evaluation
// of an unchanged condition.
func itemKey(rule string, ids []string) string {
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	data := fmt.Sprintf("%s|%d|%s", rule, len(sorted), strings.Join(sorted, "|"))
	hash := sha256.Sum256([]byte(data))
	return rule + ":" + hex.EncodeToString(hash[:])[:16]
}

// Synthesizer computes ephemeral feed items from a domain snapshot. It is a
// pure function of its inputs: no I/O, no stored state, and re-running it on
// the same snapshot yields the same items with the same keys.
type Synthesizer struct {
	now func() time.Time
}

// SynthesizerOption configures a Synthesizer.
type SynthesizerOption func(*Synthesizer)

// WithSynthesizerClock overrides the time source used to judge how soon a
// maintenance window is.
func WithSynthesizerClock(now func() time.Time) SynthesizerOption {
	return func(s *Synthesizer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSynthesizer creates a new snapshot synthesizer.
func NewSynthesizer(opts ...SynthesizerOption) *Synthesizer {
	s := &Synthesizer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// maintenanceSoon is the horizon within which upcoming maintenance is
// escalated from medium to high.
const maintenanceSoon = 24 * time.Hour

// Synthesize evaluates every rule against the snapshot and returns the
// resulting items. Rules producing nothing for an empty input are simply
// absent; callers get only conditions that currently hold.
func (s *Synthesizer) Synthesize(snap Snapshot) []Item {
	var items []Item

	if item, ok := s.assignedTickets(snap.AssignedTickets); ok {
		items = append(items, item)
	}
	if item, ok := s.pendingApprovals(snap.PendingApprovals); ok {
		items = append(items, item)
	}
	if item, ok := s.upcomingMaintenance(snap.UpcomingMaintenance); ok {
		items = append(items, item)
	}
	if item, ok := s.recentAssets(snap.RecentAssets); ok {
		items = append(items, item)
	}
	if item, ok := s.delegatedTickets(snap.DelegatedTickets); ok {
		items = append(items, item)
	}
	if item, ok := s.submittedTickets(snap.SubmittedTickets); ok {
		items = append(items, item)
	}

	return items
}

func (s *Synthesizer) assignedTickets(tickets []Ticket) (Item, bool) {
	if len(tickets) == 0 {
		return Item{}, false
	}

	urgent := 0
	ids := make([]string, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID
		if tk.Urgent {
			urgent++
		}
	}

	priority := notifications.PriorityMedium
	title := fmt.Sprintf("%d open %s assigned to you", len(tickets), pluralTicket(len(tickets)))
	if urgent > 0 {
		priority = notifications.PriorityHigh
		title = fmt.Sprintf("%d open %s assigned to you (%d urgent)", len(tickets), pluralTicket(len(tickets)), urgent)
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("assigned-tickets", ids),
		Title:    title,
		Message:  "Review your ticket queue.",
		Type:     notifications.TypeTicket,
		Priority: priority,
	}, true
}

func (s *Synthesizer) pendingApprovals(approvals []Approval) (Item, bool) {
	if len(approvals) == 0 {
		return Item{}, false
	}

	ids := make([]string, len(approvals))
	for i, a := range approvals {
		ids[i] = a.ID
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("pending-approvals", ids),
		Title:    fmt.Sprintf("%d %s awaiting your approval", len(approvals), plural(len(approvals), "request", "requests")),
		Message:  "Pending requests need a decision.",
		Type:     notifications.TypeUpgrade,
		Priority: notifications.PriorityHigh,
	}, true
}

func (s *Synthesizer) upcomingMaintenance(windows []Maintenance) (Item, bool) {
	if len(windows) == 0 {
		return Item{}, false
	}

	now := s.now()
	soon := false
	ids := make([]string, len(windows))
	for i, m := range windows {
		ids[i] = m.AssetID
		if m.ScheduledFor.Sub(now) <= maintenanceSoon {
			soon = true
		}
	}

	priority := notifications.PriorityMedium
	if soon {
		priority = notifications.PriorityHigh
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("upcoming-maintenance", ids),
		Title:    fmt.Sprintf("Maintenance scheduled for %d of your %s", len(windows), plural(len(windows), "asset", "assets")),
		Message:  "Your assets will be unavailable during the maintenance window.",
		Type:     notifications.TypeMaintenance,
		Priority: priority,
	}, true
}

func (s *Synthesizer) recentAssets(assets []Asset) (Item, bool) {
	if len(assets) == 0 {
		return Item{}, false
	}

	ids := make([]string, len(assets))
	for i, a := range assets {
		ids[i] = a.ID
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("recent-assets", ids),
		Title:    fmt.Sprintf("%d %s recently assigned to you", len(assets), plural(len(assets), "asset", "assets")),
		Message:  "Confirm receipt of your newly assigned equipment.",
		Type:     notifications.TypeAsset,
		Priority: notifications.PriorityLow,
	}, true
}

func (s *Synthesizer) delegatedTickets(tickets []Ticket) (Item, bool) {
	if len(tickets) == 0 {
		return Item{}, false
	}

	ids := make([]string, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("delegated-tickets", ids),
		Title:    fmt.Sprintf("%d %s you assigned %s still open", len(tickets), pluralTicket(len(tickets)), plural(len(tickets), "is", "are")),
		Message:  "Tickets you delegated have not been resolved yet.",
		Type:     notifications.TypeTicket,
		Priority: notifications.PriorityLow,
	}, true
}

func (s *Synthesizer) submittedTickets(tickets []Ticket) (Item, bool) {
	if len(tickets) == 0 {
		return Item{}, false
	}

	ids := make([]string, len(tickets))
	for i, tk := range tickets {
		ids[i] = tk.ID
	}

	return Item{
		Source:   SourceSynthesized,
		Key:      itemKey("submitted-tickets", ids),
		Title:    fmt.Sprintf("%d of your submitted %s %s in progress", len(tickets), pluralTicket(len(tickets)), plural(len(tickets), "is", "are")),
		Message:  "Your open requests are being worked on.",
		Type:     notifications.TypeTicket,
		Priority: notifications.PriorityInfo,
	}, true
}

func pluralTicket(n int) string {
	return plural(n, "ticket", "tickets")
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return singular
	}
	return pluralForm
}
