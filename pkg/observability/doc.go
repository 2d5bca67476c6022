/*
Package observability provides tools for monitoring the hxnotify dispatcher.

It turns the dispatcher's lifecycle hooks into Prometheus collectors and structured
log lines, so the mix of successful swaps, modal redirects and error modals can be
followed from the outside.
*/
package observability
