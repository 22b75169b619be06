// Package livefeed derives ephemeral notifications from current domain
// state and merges them with persisted ones into a single ordered display
// list.
//
// The synthesizer is a pure function over a Snapshot of the caller's world:
// assigned tickets, pending approvals, upcoming maintenance and so on. Each
// rule that currently holds yields one Item whose Key is content-derived,
// so re-evaluating an unchanged snapshot produces identical keys while any
// change in the underlying entity set produces a new one. Nothing is
// persisted; the items exist only in the response.
//
//	synth := livefeed.NewSynthesizer()
//	items := synth.Synthesize(livefeed.Snapshot{
//		AssignedTickets: []livefeed.Ticket{
//			{ID: "t1", Title: "Printer offline", Urgent: true},
//		},
//	})
//
// Merge folds persisted notification rows into the same Item shape and
// orders everything by priority, critical first, with stable ties.
// Session tracks which synthesized keys the caller dismissed; the state is
// deliberately session-local and resets on reload, because a synthesized
// item is a live condition, not a record with lifecycle of its own.
//
//	session := livefeed.NewSession()
//	session.Dismiss(items[0].Key)
//	visible := session.Filter(livefeed.Merge(persisted, items))
package livefeed
