/*
Package domain contains the core models of the call-flow engine.

It defines the immutable script graph, the mutable per-call context and the
navigation state the engine owns. This package is kept pure and free of I/O,
following Hexagonal Architecture principles.

# Key Entities

  - Graph: the scripted call, loaded once and shared read-only.
  - Node: one step of the call with a text template and ordered options.
  - Option: a user-selectable choice, optionally patching the context.
  - CallContext: everything learned or decided so far in the call.
  - NavigationState: current node plus the (node, context snapshot) history.
  - ResolvedView: the data-only output handed to a UI shell.
*/
package domain
