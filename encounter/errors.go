package encounter

import "errors"

var (
	ErrInvalidPhase            = errors.New("invalid phase")
	ErrNoMorePhases            = errors.New("no more phases")
	ErrMissingBossReference    = errors.New("missing boss reference")
	ErrDuplicateExtraWeakpoint = errors.New("duplicate extra weakpoint")
	ErrWeakpointFinished       = errors.New("weakpoint already dying or expiring")
	ErrTransitionVetoed        = errors.New("transition vetoed")
	ErrNotStarted              = errors.New("sequencer not started")
)
