package fsm

// GraphConfig is the decoded TOML graph
type GraphConfig struct {
	Initial string                  `toml:"initial"`
	States  map[string]*StateConfig `toml:"states"`
}

// StateConfig is one state table, Parent empty means Root
type StateConfig struct {
	Parent      string             `toml:"parent"`
	OnEnter     []ActionConfig     `toml:"on_enter"`
	OnUpdate    []ActionConfig     `toml:"on_update"`
	OnExit      []ActionConfig     `toml:"on_exit"`
	Transitions []TransitionConfig `toml:"transitions"`
}

// TransitionConfig links a trigger to a target, optionally guarded
// Trigger is an event name or "Tick"
type TransitionConfig struct {
	Trigger string `toml:"trigger"`
	Target  string `toml:"target"`
	Guard   string `toml:"guard"`
}

// ActionConfig names a registered action, Event is the argument of EmitEvent
type ActionConfig struct {
	Action string `toml:"action"`
	Event  string `toml:"event"`
}
