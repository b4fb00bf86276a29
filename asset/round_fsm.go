package asset

// RoundGraph is the round state machine graph loaded by game.Session
// Playing groups the in-building phases so a threshold crossing can end the level from any of them
const RoundGraph = `
initial = "ShowingWord"

[states.Session]

[states.Playing]
parent = "Session"

[[states.Playing.transitions]]
trigger = "EventBuildingDown"
target = "LevelComplete"

[states.ShowingWord]
parent = "Playing"
on_enter = [{ action = "PresentWord" }]

[[states.ShowingWord.transitions]]
trigger = "EventWordShown"
target = "WaitingForInput"

[states.WaitingForInput]
parent = "Playing"
on_enter = [{ action = "OpenInput" }]

[[states.WaitingForInput.transitions]]
trigger = "EventWordMatched"
target = "Launching"

[states.Launching]
parent = "Playing"
on_enter = [{ action = "LaunchProjectile" }, { action = "EmitEvent", event = "EventLaunched" }]

[[states.Launching.transitions]]
trigger = "EventLaunched"
target = "WatchingImpact"

[states.WatchingImpact]
parent = "Playing"
on_enter = [{ action = "ArmMissTimer" }]
on_exit = [{ action = "DisarmMissTimer" }]

[[states.WatchingImpact.transitions]]
trigger = "EventMissed"
target = "ShowingWord"

[[states.WatchingImpact.transitions]]
trigger = "EventSettled"
target = "LevelComplete"
guard = "BuildingDestroyed"

[[states.WatchingImpact.transitions]]
trigger = "EventSettled"
target = "ShowingWord"
guard = "BuildingStanding"

[states.LevelComplete]
parent = "Session"
on_enter = [{ action = "CompleteLevel" }]

[[states.LevelComplete.transitions]]
trigger = "EventLevelDone"
target = "TransitionToNext"
guard = "MoreBuildings"

[[states.LevelComplete.transitions]]
trigger = "EventLevelDone"
target = "GameComplete"

[states.TransitionToNext]
parent = "Session"
on_enter = [{ action = "BeginTransition" }]

[[states.TransitionToNext.transitions]]
trigger = "EventTransitionDone"
target = "WaitingForInput"
guard = "WordCarried"

[[states.TransitionToNext.transitions]]
trigger = "EventTransitionDone"
target = "ShowingWord"

[states.GameComplete]
parent = "Session"
on_enter = [{ action = "FinishSession" }]
`
