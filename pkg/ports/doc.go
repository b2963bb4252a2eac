/*
Package ports defines the driven ports (interfaces) for the Atrium sync layer.

These interfaces decouple the UI-facing components from the concrete backend,
allowing the same consumers to run against the simulated in-process dataset
or the remote REST API without branching on the active mode.

# Key Interfaces

  - JobService / DirectoryService: the service facades, one per data domain.
  - SessionStore: persistence for the signed-in session state.

The Run*Contract helpers are reusable test suites; every adapter must pass
the contract for the port it implements.
*/
package ports
