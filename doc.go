/*
Package sweetwater runs the Sweetwater Arcade: a short sequence of timed stages
strung together into one play session, where a score and an "awareness"
multiplier persist and compound from stage to stage.

# Concept

An orchestrator owns the session and the fixed stage order (marketing, wild
customer, sales, merch, IT hub, warehouse, celebration). Each stage is started
with a capability-scoped host: it can show content, adjust the session and ask to
advance, and every timer it arms dies with it when the stage is left. The sales
stage hosts the only real simulation, a grid collection game with continuous
movement, forgiving collisions and persona-weighted pickups.

All game logic runs on one event loop goroutine. Presenters (terminal, Redis,
HTTP inspector) receive immutable snapshots after every change.

# Usage

	arcade, err := sweetwater.New(ctx,
		sweetwater.WithConfigDir("examples/config"),
		sweetwater.WithPresenters(tui.NewPresenter(os.Stdout)),
	)
	if err != nil {
		log.Fatal(err)
	}

	go func() {
		arcade.Input(domain.IntentConfirm) // start the game
	}()

	if err := arcade.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package sweetwater
