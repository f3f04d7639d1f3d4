/*
Package schedule provides the cooperative scheduling primitives used by the arcade.

Every stage timer and every player input runs on one logical thread. Nothing blocks:
a "wait" is always expressed as a callback scheduled for the future.

# Key Types

  - Scheduler: The interface stages program against (Now + AfterFunc).
  - Loop: A real-time, single goroutine event loop backed by time.AfterFunc.
  - Manual: A deterministic virtual clock for tests, advanced explicitly.
  - Scope: A group of schedules owned by one stage activation and cancelled together.
*/
package schedule
