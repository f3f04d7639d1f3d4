// Package tui draws snapshots in a terminal and decodes keyboard input into intents.
package tui
