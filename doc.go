/*
Package hxnotify turns the htmx request lifecycle into user-facing feedback: loading indicators, a confirm-modal redirect for validation errors, an error modal for server failures and an alert for transport failures.

It implements a "Decide, then Effect" architecture. Each response status is classified into an explicit decision, and the side effects (events, modal markup, alerts) are delivered through small ports, so the same rules drive an HTTP middleware, an SSE stream or a Redis channel.

# Concept

Every htmx request produces a short sequence of lifecycle signals:

	before-request -> before-swap -> after-swap -> after-request
	response-error (transport failure, no response)

The dispatcher consumes each signal once, runs the handlers registered for its kind and keeps a per-request cycle holding the swap decision. Statuses below 400 proceed; 4xx responses without an explicit retarget are redirected into the modal wrapper and animated in; 5xx responses show an error modal (or an alert when no modal builder is wired).

# Key Features

  - Explicit Decisions: the swap outcome is a value, not a set of mutated flags.
  - Hexagonal Architecture: event sinks, document and alerter are ports.
  - Graceful Degradation: a failing modal builder falls back to exactly one alert.
  - Observability: lifecycle hooks feed Prometheus and slog.

# Usage

	package main

	import (
		"log"
		"net/http"

		"github.com/aretw0/hxnotify"
		hxhttp "github.com/aretw0/hxnotify/pkg/adapters/http"
		"github.com/aretw0/hxnotify/pkg/adapters/template"
	)

	func main() {
		builder, err := template.NewModalBuilder()
		if err != nil {
			log.Fatal(err)
		}

		effects := hxhttp.ContextEffects{}
		n, err := hxnotify.New(
			hxnotify.WithSink(effects),
			hxnotify.WithAlerter(effects),
			hxnotify.WithErrorModal(builder, effects),
		)
		if err != nil {
			log.Fatal(err)
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/save", save)
		log.Fatal(http.ListenAndServe(":8080", hxhttp.Middleware(n)(mux)))
	}
*/
package hxnotify
