package picker

import "strings"

// Key actions.
const (
	ActionMode       = "mode"
	ActionHelp       = "help"
	ActionPrint      = "print"
	ActionSave       = "save"
	ActionCallback   = "callback"
	ActionUndo       = "undo"
	ActionCopy       = "copy"
	ActionCopyFigure = "copyfigure"
)

func defaultKeys() map[string]string {
	return map[string]string{
		"m":      ActionMode,
		"h":      ActionHelp,
		"p":      ActionPrint,
		"w":      ActionSave,
		"c":      ActionCallback,
		"ctrl+z": ActionUndo,
		"y":      ActionCopy,
		"ctrl+c": ActionCopyFigure,
	}
}

var helpLines = []string{
	"",
	"R-mouse : artist select",
	"L-mouse : data select",
	"ctrl+z  : undo",
	"w       : save",
	"p       : print",
	"c       : callback",
	"m       : mode",
	"h       : help",
	"y       : copy table",
	"ctrl+c  : copy figure",
}

// Help writes the key bindings to the diagnostic log.
func (c *Controller) Help() {
	for _, l := range helpLines {
		c.logf("%s", l)
	}
}

// Action returns the action bound to key.
func (c *Controller) Action(key string) (string, bool) {
	a, ok := c.keys[strings.ToLower(key)]
	return a, ok
}

// OnKey dispatches a key press. Unbound keys are ignored. Only a callback
// that fails twice produces an error.
func (c *Controller) OnKey(key string) error {
	action, ok := c.Action(key)
	if !ok {
		return nil
	}
	return c.Run(action)
}

// Run performs the named action.
func (c *Controller) Run(action string) error {
	switch action {
	case ActionMode:
		c.AdvanceMode()
	case ActionHelp:
		c.Help()
	case ActionPrint:
		c.Print()
	case ActionSave:
		c.Save()
	case ActionCallback:
		return c.InvokeCallback()
	case ActionUndo:
		c.Undo()
	case ActionCopy:
		c.CopyTable()
	case ActionCopyFigure:
		c.CopyFigure()
	default:
		c.logf("unknown action %q", action)
	}
	return nil
}
