package domain

// DialogState is the position of a user's conversation.
type DialogState string

const (
	StateMenuIdle           DialogState = "menu_idle"            // Main menu, nothing in progress
	StateSelectProject      DialogState = "select_project"       // Choosing a project to log time on
	StateEnterProjectName   DialogState = "enter_project_name"   // Typing the name of a new project
	StateEnterHours         DialogState = "enter_hours"          // Typing the number of hours
	StateEnterComment       DialogState = "enter_comment"        // Typing a comment or skipping it
	StateStatsMenu          DialogState = "stats_menu"           // Statistics period menu
	StateStatsSelectProject DialogState = "stats_select_project" // Choosing a statistics project filter
	StateDone               DialogState = "done"                 // Entry saved (folds back to menu_idle)
	StateCancelled          DialogState = "cancelled"            // Dialog cancelled (folds back to menu_idle)
)

// AllDialogStates returns every state, terminal ones included.
func AllDialogStates() []DialogState {
	return []DialogState{
		StateMenuIdle,
		StateSelectProject,
		StateEnterProjectName,
		StateEnterHours,
		StateEnterComment,
		StateStatsMenu,
		StateStatsSelectProject,
		StateDone,
		StateCancelled,
	}
}

// dialogTransitions defines the allowed state changes within one turn.
// Flow: menu_idle → select_project → enter_hours → enter_comment → done → menu_idle
//
//	             ↑     ↓
//	enter_project_name
//
// Every non-terminal state may also reach cancelled and menu_idle, and the
// entry states select_project and stats_menu (re-entry resets the dialog).
var dialogTransitions = map[DialogState][]DialogState{
	StateMenuIdle:           {StateSelectProject, StateStatsMenu},
	StateSelectProject:      {StateEnterHours, StateEnterProjectName},
	StateEnterProjectName:   {StateSelectProject},
	StateEnterHours:         {StateEnterComment},
	StateEnterComment:       {StateDone},
	StateStatsMenu:          {StateStatsSelectProject},
	StateStatsSelectProject: {StateStatsMenu},
	StateDone:               {StateMenuIdle},
	StateCancelled:          {StateMenuIdle},
}

// CanTransitionTo returns true if the dialog may move from s to target in one turn.
// Staying in the same state (validation retry, re-prompt) is always allowed.
func (s DialogState) CanTransitionTo(target DialogState) bool {
	if s == target {
		return true
	}
	if s.IsTerminal() {
		return target == StateMenuIdle
	}
	if _, ok := dialogTransitions[s]; !ok {
		return false
	}
	// Universal exits and re-entry points.
	switch target {
	case StateCancelled, StateMenuIdle, StateSelectProject, StateStatsMenu:
		return true
	}
	for _, t := range dialogTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true for states that immediately fold back to menu_idle.
func (s DialogState) IsTerminal() bool {
	return s == StateDone || s == StateCancelled
}

// CollectsEntry returns true for states that belong to the add-time flow.
func (s DialogState) CollectsEntry() bool {
	switch s {
	case StateSelectProject, StateEnterProjectName, StateEnterHours, StateEnterComment:
		return true
	default:
		return false
	}
}

// IsValid returns true if the state is a known value.
func (s DialogState) IsValid() bool {
	switch s {
	case StateMenuIdle, StateSelectProject, StateEnterProjectName, StateEnterHours,
		StateEnterComment, StateStatsMenu, StateStatsSelectProject, StateDone, StateCancelled:
		return true
	default:
		return false
	}
}

// Display returns a human-readable representation of the state.
func (s DialogState) Display() string {
	switch s {
	case StateMenuIdle:
		return "Main menu"
	case StateSelectProject:
		return "Select project"
	case StateEnterProjectName:
		return "New project name"
	case StateEnterHours:
		return "Enter hours"
	case StateEnterComment:
		return "Enter comment"
	case StateStatsMenu:
		return "Statistics"
	case StateStatsSelectProject:
		return "Statistics project filter"
	case StateDone:
		return "Done"
	case StateCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}
