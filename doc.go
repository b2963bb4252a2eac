/*
Package atrium is the data synchronization layer of the Atrium alumni
platform client. It gives UI code one way to request data and trigger
actions against a swappable backend: a simulated in-process dataset for
development, or the remote REST API in production.

The top-level Client bundles the per-domain service facades with the
supporting machinery around them: the derived-query cache, the session
manager, and factories for the debounced search fetcher. The polling
scheduler (pkg/poll) and confirmation gate (pkg/confirm) are standalone
primitives consumed directly by view code.

Every facade call returns a domain.Envelope; consumers branch on its
Success field and never on the active backend mode.
*/
package atrium
