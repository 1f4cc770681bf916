package tui

type state int

const (
	editState state = iota
	errorState
)

// pointerTarget is the surface a held mouse button started on.
type pointerTarget int

const (
	noTarget pointerTarget = iota
	barTarget
	canvasTarget
)
