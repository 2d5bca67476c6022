/*
Package domain contains the core models of the hxnotify dispatcher.

It describes the request lifecycle of a partial-swap frontend (htmx) and the feedback
it produces, without any knowledge of HTTP, browsers or message brokers. Hosts translate
their own transport into Signals and implement the ports that receive the effects.

# Key Entities

  - Signal: A fire-once lifecycle notification (before-request, after-request,
    before-swap, after-swap, response-error) carrying an opaque Detail bag.
  - Status: The HTTP status of a completed request, classified into a Band.
  - Swap: The pending DOM update the before-swap step may redirect or cancel.
  - Decision: The explicit outcome of the before-swap step (Proceed, RedirectToModal,
    ShowError), threaded through a Cycle instead of mutable flags.
  - AppEvent: An application-level event (start-loading, finish-loading) for loading
    indicators and modal animations.
  - Timeline: A paused entrance animation handed to downstream listeners.
*/
package domain
