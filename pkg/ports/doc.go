/*
Package ports defines the driven ports (interfaces) of the hxnotify dispatcher.

These interfaces decouple the dispatcher from the host that renders its effects, so the
same decisions can land in a browser, in htmx response headers or in a test recorder.

# Key Interfaces

  - EventSink: Receives application-level events (start-loading, finish-loading).
  - Document: Receives markup appended to the end of the page body.
  - Alerter: Shows a blocking alert.
  - ErrorModalBuilder: Builds the markup of the server-error modal.
  - ErrorPresenter: Strategy that decides how a server error reaches the user.
*/
package ports
