// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics declares the Prometheus collectors for the service.

Collectors are registered on the default registry at init and exposed by
the router at GET /metrics.

  - portfolio_api_requests_total, portfolio_api_request_duration_seconds:
    recorded by middleware.PrometheusMetrics, labelled by route pattern
  - portfolio_polls_created_total, portfolio_votes_total{outcome}:
    recorded by the poll engine
  - portfolio_events_published_total, portfolio_events_dropped_total,
    portfolio_websocket_clients: recorded by the events hub
  - portfolio_media_store_*: recorded by media store backends
  - portfolio_circuit_breaker_state: cloud storage breaker
*/
package metrics
