/*
Package domain contains the core domain models of the Sweetwater arcade.

It defines the session record shared by every stage, the stage identifiers, personas,
player intents and the snapshot handed to presenters. This package is kept pure and free
of external dependencies like I/O or scheduling, following Hexagonal Architecture principles.

# Key Entities

  - Session: The mutable score/awareness/time record owned by the orchestrator.
  - StageID: The identifier of a stage in the fixed progression.
  - Persona: A customer archetype that weights which rewards are preferred.
  - Snapshot: A read-only view of the session (and board, when one exists) for presentation.
*/
package domain
