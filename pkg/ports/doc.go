/*
Package ports defines the driven ports (interfaces) of the call-flow engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various graph sources and setup storage backends.

# Key Interfaces

  - GraphLoader: Responsible for loading the call-flow Graph (e.g., from a file or memory).
  - SetupStore: Responsible for persisting the representative's sticky setup between calls.
*/
package ports
