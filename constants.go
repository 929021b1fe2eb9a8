package main

type Mode int

const (
	ModeNormal Mode = iota
	ModePan
	ModeDrag
	ModeConfirm
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmGenerate
	ConfirmClear
	ConfirmImport
)

type ActionType int

const (
	ActionMoveAcross ActionType = iota
	ActionReorder
	ActionReposition
	ActionGenerate
	ActionClear
	ActionImport
)

func (a ActionType) String() string {
	switch a {
	case ActionMoveAcross:
		return "move"
	case ActionReorder:
		return "reorder"
	case ActionReposition:
		return "reposition"
	case ActionGenerate:
		return "generate"
	case ActionClear:
		return "clear"
	case ActionImport:
		return "import"
	default:
		return "unknown"
	}
}

const (
	headerRows    = 1
	separatorRows = 1
	statusRows    = 1

	axisStep      = 50.0 // logical units between grid lines
	bufferGap     = 4.0
	panStep       = 4 // cells per key press
	dragGhostRune = '◆'
)
