// Package notify delivers push notifications to the Parse push service off
// the request path.
//
// Handlers call Dispatcher.Dispatch, which only enqueues. A fixed pool of
// workers drains the queue and hands each Notification to a Pusher. Delivery
// is attempted once; outcomes are logged and never reported back to the
// caller that triggered them.
//
//	d := notify.NewFromConfig(cfg, notify.NewParsePusher(cfg, nil, log), log)
//	g.Go(d.Run(ctx))
//	...
//	d.Dispatch("alice", []string{notify.DefaultChannel}, payload)
package notify
