// Package notifications implements preference-gated in-app notification
// delivery: a factory that decides per recipient whether an event becomes a
// persisted notification, a dispatcher that expands role-targeted broadcasts,
// a feed service over the persisted rows, and a hub for live fan-out.
//
// # Gate pipeline
//
// Factory.Create evaluates gates in a fixed order: input validation, then
// preference resolution, then the do-not-disturb window, then the category
// toggle. Only notifications passing every gate are persisted. Suppression
// is a successful outcome and returns (nil, nil); callers distinguish
// "delivered" from "suppressed" by the nil notification, not by the error.
// Critical priority bypasses the do-not-disturb gate so outage-class events
// always land.
//
// Recipients without stored preferences get the fail-open defaults from the
// preferences package: every category on, do-not-disturb off.
//
// # Basic usage
//
//	prefs := preferences.NewService(preferences.NewMemoryStorage())
//	store := notifications.NewMemoryStorage()
//	hub := notifications.NewHub()
//
//	factory := notifications.NewFactory(prefs, store,
//		notifications.WithFactoryHub(hub),
//	)
//
//	notif, err := factory.Create(ctx, notifications.CreateInput{
//		RecipientID: userID,
//		Title:       "Ticket assigned to you",
//		Message:     "Ticket #482 'Printer offline' was assigned to you.",
//		Type:        notifications.TypeTicket,
//		Priority:    notifications.PriorityHigh,
//		Category:    notifications.CategoryTicketAssignments,
//	})
//	if err != nil {
//		return err
//	}
//	if notif == nil {
//		// Suppressed by the recipient's preferences.
//	}
//
// # Broadcasts
//
// The dispatcher resolves a role name (or TargetAll) to user ids through a
// RecipientSource and pushes each member through the same gate pipeline.
// The returned RecipientCount counts persisted rows, so an audience of three
// with one opted-out member reports two.
//
//	directory := notifications.NewStaticDirectory(map[string][]string{
//		"manager": {"u1", "u2", "u3"},
//	})
//	dispatcher := notifications.NewDispatcher(factory, directory)
//
//	result, err := dispatcher.Broadcast(ctx, notifications.BroadcastInput{
//		Target:   "manager",
//		Title:    "Quarterly audit starts Monday",
//		Message:  "Asset inventory freeze from 09:00.",
//		Type:     notifications.TypeSystem,
//		Priority: notifications.PriorityMedium,
//	})
//
// # Feed
//
// Feed serves the recipient-facing surface: paginated listing (newest
// first, page size clamped to MaxListLimit), unread counts, mark-read,
// snooze, dismissal. Batch state changes skip unknown and foreign ids
// silently so clients can retry without bookkeeping.
//
//	feed := notifications.NewFeed(store, notifications.WithFeedHub(hub))
//	page, err := feed.List(ctx, userID, notifications.ListQuery{OnlyUnread: true})
//
// # Live delivery
//
// Hub.Subscribe returns a channel of notifications accepted for the
// recipient while the subscription is live. Delivery is best effort; the
// persisted feed is the source of truth and slow subscribers lose messages
// instead of blocking publishers.
package notifications
