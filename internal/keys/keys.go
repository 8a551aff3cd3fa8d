// Package keys is the keybinding glossary: a pure lookup table from
// key chord to the action it triggers, shared by the event loop (to
// dispatch) and the help pane (to render).
package keys

// Action names a keybinding's effect without tying it to a
// particular pane's Go method.
type Action string

const (
	ActionMoveDown       Action = "move_down"
	ActionMoveUp         Action = "move_up"
	ActionPageDown       Action = "page_down"
	ActionPageUp         Action = "page_up"
	ActionEnterNode      Action = "enter_node"
	ActionExitNode       Action = "exit_node"
	ActionOpenExternally Action = "open_externally"

	ActionSortSize  Action = "sort_size"
	ActionSortName  Action = "sort_name"
	ActionSortMTime Action = "sort_mtime"
	ActionSortCount Action = "sort_count"

	ActionToggleCountColumn Action = "toggle_count_column"
	ActionToggleMTimeColumn Action = "toggle_mtime_column"

	ActionMarkAndAdvance Action = "mark_and_advance"
	ActionMarkInPlace    Action = "mark_in_place"

	ActionHelp        Action = "help"
	ActionGlob        Action = "glob"
	ActionCycleFocus  Action = "cycle_focus"
	ActionQuit        Action = "quit"
	ActionRefreshOne  Action = "refresh_selected"
	ActionRefreshAll  Action = "refresh_all"
	ActionDeleteMarks Action = "delete_marked"

	ActionEscape Action = "escape"
)

// Binding pairs a human-readable chord with the action it triggers,
// for the help pane's glossary listing.
type Binding struct {
	Chord  string
	Action Action
	Help   string
}

// Glossary is the complete, ordered keybinding table.
var Glossary = []Binding{
	{Chord: "j", Action: ActionMoveDown, Help: "down one row"},
	{Chord: "k", Action: ActionMoveUp, Help: "up one row"},
	{Chord: "ctrl+d", Action: ActionPageDown, Help: "down ten rows"},
	{Chord: "ctrl+u", Action: ActionPageUp, Help: "up ten rows"},
	{Chord: "o", Action: ActionEnterNode, Help: "enter directory"},
	{Chord: "u", Action: ActionExitNode, Help: "exit to parent"},
	{Chord: "O", Action: ActionOpenExternally, Help: "open externally"},

	{Chord: "s", Action: ActionSortSize, Help: "sort by size"},
	{Chord: "n", Action: ActionSortName, Help: "sort by name"},
	{Chord: "m", Action: ActionSortMTime, Help: "sort by mtime"},
	{Chord: "c", Action: ActionSortCount, Help: "sort by count"},

	{Chord: "C", Action: ActionToggleCountColumn, Help: "toggle count column"},
	{Chord: "M", Action: ActionToggleMTimeColumn, Help: "toggle mtime column"},

	{Chord: "d", Action: ActionMarkAndAdvance, Help: "mark and advance"},
	{Chord: "space", Action: ActionMarkInPlace, Help: "mark in place"},

	{Chord: "?", Action: ActionHelp, Help: "toggle help"},
	{Chord: "/", Action: ActionGlob, Help: "search"},
	{Chord: "tab", Action: ActionCycleFocus, Help: "cycle focus"},
	{Chord: "q", Action: ActionQuit, Help: "quit (twice if marked)"},

	{Chord: "r", Action: ActionRefreshOne, Help: "refresh selected subtree"},
	{Chord: "R", Action: ActionRefreshAll, Help: "refresh all"},

	{Chord: "ctrl+shift+r", Action: ActionDeleteMarks, Help: "delete marked entries"},

	{Chord: "esc", Action: ActionEscape, Help: "context-dependent back/cancel"},
}

// Lookup returns the action bound to chord and whether a binding
// exists for it.
func Lookup(chord string) (Action, bool) {
	for _, b := range Glossary {
		if b.Chord == chord {
			return b.Action, true
		}
	}
	return "", false
}
