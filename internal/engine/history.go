package engine

// history is a linear command list with a cursor. Commands below the
// cursor have been applied; commands at or above it are the redo tail.
type history struct {
	cmds   []command
	cursor int
}

// push truncates any redo tail and appends the command.
func (h *history) push(cmd command) {
	h.cmds = append(h.cmds[:h.cursor], cmd)
	h.cursor = len(h.cmds)
}

// stepBack returns the command to revert, moving the cursor down.
func (h *history) stepBack() (command, bool) {
	if h.cursor == 0 {
		return nil, false
	}
	h.cursor--
	return h.cmds[h.cursor], true
}

// stepForward returns the command to re-apply, moving the cursor up.
func (h *history) stepForward() (command, bool) {
	if h.cursor == len(h.cmds) {
		return nil, false
	}
	cmd := h.cmds[h.cursor]
	h.cursor++
	return cmd, true
}

// clear drops the whole stack. Called on discard and at session end; a
// discarded edit session cannot be redone.
func (h *history) clear() {
	h.cmds = nil
	h.cursor = 0
}

func (h *history) canUndo() bool { return h.cursor > 0 }
func (h *history) canRedo() bool { return h.cursor < len(h.cmds) }

// peekUndo describes the command undo would revert, for UI hints.
func (h *history) peekUndo() string {
	if h.cursor == 0 {
		return ""
	}
	return h.cmds[h.cursor-1].describe()
}

// peekRedo describes the command redo would re-apply.
func (h *history) peekRedo() string {
	if h.cursor == len(h.cmds) {
		return ""
	}
	return h.cmds[h.cursor].describe()
}
