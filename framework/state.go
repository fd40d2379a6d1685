package framework

// State is the interface for interactive application state.
type State interface {
	Label() string
	Process(line string) (State, error)
	Close()
	SetNext(state State)
	NextState() State
	Suggestions(input string) map[string]string
	SetupCommands()
	IsEnding() bool
}

// BaseState implements the bookkeeping part of State.
// Concrete states embed it and provide Label, Process and Suggestions.
type BaseState struct {
	nextState State
}

// SetNext simple method to set next state.
func (s *BaseState) SetNext(state State) {
	s.nextState = state
}

// NextState returns the state set by SetNext.
func (s *BaseState) NextState() State {
	return s.nextState
}

// SetupCommands is called after each processed line, empty by default.
func (s *BaseState) SetupCommands() {}

// Close empty method to implement State.
func (s *BaseState) Close() {}

// IsEnding returns false, only the exit state ends the session.
func (s *BaseState) IsEnding() bool { return false }
