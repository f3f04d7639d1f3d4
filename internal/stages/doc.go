// Package stages implements the stages of the arcade progression on top of the
// ports.Stage contract: the two intro cards, the grid minigame and the placeholder
// stages that only count down.
package stages
