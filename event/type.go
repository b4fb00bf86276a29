package event

// EventType represents the type of session event
type EventType int

const (
	// EventTick is reserved for automatic FSM transitions
	EventTick EventType = iota

	// === Round FSM triggers ===

	// EventWordShown fires when the presentation delay of a word elapsed
	// Trigger: Session scheduler | Consumer: FSM | Payload: nil
	EventWordShown

	// EventWordMatched fires on a submit that matches the target word
	// Trigger: Session.Submit | Consumer: FSM | Payload: nil
	EventWordMatched

	// EventLaunched fires once the projectile has been released
	// Trigger: LaunchProjectile action | Consumer: FSM, Audio | Payload: *LaunchPayload
	EventLaunched

	// EventMissed fires when the miss timer expired without an impact
	// Trigger: Session scheduler | Consumer: FSM, HUD | Payload: nil
	EventMissed

	// EventSettled fires when the post-impact settle delay elapsed
	// Trigger: Session scheduler | Consumer: FSM | Payload: nil
	EventSettled

	// EventBuildingDown fires after a polled threshold crossing
	// Trigger: Session scheduler | Consumer: FSM | Payload: nil
	EventBuildingDown

	// EventLevelDone fires when the level complete delay elapsed
	// Trigger: CompleteLevel action | Consumer: FSM | Payload: nil
	EventLevelDone

	// EventTransitionDone fires when the camera pan finished
	// Trigger: BeginTransition action | Consumer: FSM | Payload: nil
	EventTransitionDone

	// === Lifecycle notifications ===

	// EventRoundStarted announces a new building
	// Trigger: Session | Consumer: HUD, Audio | Payload: *RoundPayload
	EventRoundStarted EventType = iota + 100

	// EventWordPresented announces the word of a round
	// Trigger: PresentWord action | Consumer: HUD | Payload: *WordPayload
	EventWordPresented

	// EventLetterAdded announces a staged letter
	// Trigger: Session.LetterTyped | Consumer: Audio | Payload: *LetterPayload
	EventLetterAdded

	// EventLetterRemoved announces a deleted letter
	// Trigger: Session.LetterDeleted | Consumer: HUD | Payload: *LetterPayload
	EventLetterRemoved

	// EventWrongSubmit announces a mismatched submit
	// Trigger: Session.Submit | Consumer: Audio, HUD | Payload: *WordPayload
	EventWrongSubmit

	// EventImpact announces the canonical impact of a launch
	// Trigger: Impact evaluator | Consumer: Audio, Render | Payload: *ImpactPayload
	EventImpact

	// EventThresholdCrossed announces that the live height dropped below the threshold
	// Trigger: Threshold poll | Consumer: Audio | Payload: *RoundPayload
	EventThresholdCrossed

	// EventBuildingDestroyed announces a completed building
	// Trigger: CompleteLevel action | Consumer: HUD | Payload: *RoundPayload
	EventBuildingDestroyed

	// EventVictory announces that the last building fell
	// Trigger: CompleteLevel action | Consumer: Audio | Payload: nil
	EventVictory

	// EventGameComplete carries final session statistics
	// Trigger: FinishSession action | Consumer: Store, HUD | Payload: *SessionPayload
	EventGameComplete

	// === Frontend ===

	// EventKey carries a raw key press from the input goroutine
	// Trigger: Terminal poller | Consumer: Input handler | Payload: *KeyPayload
	EventKey EventType = iota + 200

	// EventQuit requests loop shutdown
	// Trigger: Input handler | Consumer: Main loop | Payload: nil
	EventQuit
)

// GameEvent is a typed event with an optional payload
type GameEvent struct {
	Type    EventType
	Payload Payload
}
