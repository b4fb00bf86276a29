package event

import (
	"strings"
	"sync"
)

var (
	registryMu   sync.RWMutex
	nameToType   = make(map[string]EventType)
	typeToName   = make(map[EventType]string)
	registryOnce sync.Once
)

// RegisterType maps a string name to an EventType
func RegisterType(name string, et EventType) {
	registryMu.Lock()
	defer registryMu.Unlock()
	nameToType[name] = et
	typeToName[et] = name
}

// GetEventType returns the EventType for a given name
func GetEventType(name string) (EventType, bool) {
	// Special case for FSM "Tick"
	if strings.EqualFold(name, "Tick") {
		return EventTick, true
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	et, ok := nameToType[name]
	return et, ok
}

// GetEventName returns the string name for an EventType
func GetEventName(et EventType) string {
	if et == EventTick {
		return "Tick"
	}
	registryMu.RLock()
	defer registryMu.RUnlock()
	return typeToName[et]
}

// InitRegistry populates the registry with all session events
// Safe to call more than once
func InitRegistry() {
	registryOnce.Do(func() {
		// FSM triggers
		RegisterType("EventWordShown", EventWordShown)
		RegisterType("EventWordMatched", EventWordMatched)
		RegisterType("EventLaunched", EventLaunched)
		RegisterType("EventMissed", EventMissed)
		RegisterType("EventSettled", EventSettled)
		RegisterType("EventBuildingDown", EventBuildingDown)
		RegisterType("EventLevelDone", EventLevelDone)
		RegisterType("EventTransitionDone", EventTransitionDone)

		// Lifecycle
		RegisterType("EventRoundStarted", EventRoundStarted)
		RegisterType("EventWordPresented", EventWordPresented)
		RegisterType("EventLetterAdded", EventLetterAdded)
		RegisterType("EventLetterRemoved", EventLetterRemoved)
		RegisterType("EventWrongSubmit", EventWrongSubmit)
		RegisterType("EventImpact", EventImpact)
		RegisterType("EventThresholdCrossed", EventThresholdCrossed)
		RegisterType("EventBuildingDestroyed", EventBuildingDestroyed)
		RegisterType("EventVictory", EventVictory)
		RegisterType("EventGameComplete", EventGameComplete)

		// Frontend
		RegisterType("EventKey", EventKey)
		RegisterType("EventQuit", EventQuit)
	})
}
