// Package notifier exposes the notification services over HTTP as a
// mountable chi router.
//
// The module trusts the surrounding application for authentication: a
// CallerResolver turns each request into a Caller, and the default resolver
// reads the X-User-Id and X-User-Role headers set by an upstream gateway.
// Feed, preference and display endpoints are scoped to the caller; template
// management, broadcasts and direct creation require the admin role.
//
//	module := notifier.NewModule(notifier.Deps{
//		Feed:        feed,
//		Dispatcher:  dispatcher,
//		Registry:    registry,
//		Preferences: prefs,
//		Hub:         hub,
//		Synthesizer: livefeed.NewSynthesizer(),
//	})
//
//	r := chi.NewRouter()
//	r.Mount("/notifications", module.Router())
//
// Routes mounted under the prefix:
//
//	GET    /                  list the caller's notifications (limit, offset, unreadOnly, since)
//	GET    /unread-count      unread counter for badges
//	POST   /read              mark a batch of ids read
//	POST   /read-all          mark everything read
//	POST   /{id}/snooze       hide one notification until a time or for N minutes
//	DELETE /{id}              dismiss one notification
//	DELETE /                  clear the whole feed
//	POST   /display           merge the posted domain snapshot with the stored feed
//	GET    /stream            live notifications as server-sent events
//	GET    /preferences       effective settings (stored or fail-open defaults)
//	PUT    /preferences       replace the caller's settings
//	DELETE /preferences       reset to defaults
//	*      /templates         template management (admin)
//	POST   /broadcast         role-targeted fan-out (admin)
//	POST   /direct            gate-bypassing single delivery (admin)
package notifier
