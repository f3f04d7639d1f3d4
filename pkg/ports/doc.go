/*
Package ports defines the contracts between the arcade orchestrator and its collaborators.

These interfaces decouple the core logic from concrete stages, configuration sources and
presentation technology.

# Key Interfaces

  - Stage: One phase of the progression (with optional InputHandler and Cleaner).
  - StageHost: The capability set a stage receives; it never sees the whole session.
  - Presenter: A downstream subscriber that receives snapshots after every change.
  - CatalogLoader: Supplies marketing, persona and upgrade configuration.
*/
package ports
