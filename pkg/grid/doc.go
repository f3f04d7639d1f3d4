/*
Package grid implements the tick-driven grid collection minigame.

The Simulator is a pure state-transition function: Step takes the current State plus the
session inputs it needs (awareness, persona) and returns the next State together with an
Outcome describing the score and awareness effects the caller must apply. It never draws,
schedules or mutates anything outside the returned values.

Collision handling is forgiving: hitting a wall steers the occupant back into the board,
and running into itself only ends the run when awareness is already low.
*/
package grid
