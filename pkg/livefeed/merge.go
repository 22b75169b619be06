package livefeed

import (
	"sort"

	"github.com/deskops/notifykit/pkg/notifications"
)

// Merge combines persisted notifications and synthesized items into the
// final display order: descending priority, with ties keeping their incoming
// relative order. Synthesized items are appended after the persisted ones
// before sorting, so within a priority level stored notifications come
// first.
func Merge(persisted []notifications.Notification, synthesized []Item) []Item {
	merged := make([]Item, 0, len(persisted)+len(synthesized))
	for _, n := range persisted {
		merged = append(merged, FromPersisted(n))
	}
	merged = append(merged, synthesized...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Priority.Rank() > merged[j].Priority.Rank()
	})
	return merged
}
