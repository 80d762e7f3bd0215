package paper

import "errors"

var (
	ErrCycle                 = errors.New("paper: item cannot become a descendant of itself")
	ErrDocumentRoot          = errors.New("paper: document root cannot be reparented")
	ErrForeignDocument       = errors.New("paper: item belongs to a different document")
	ErrCompoundNesting       = errors.New("paper: compound paths can only contain paths, one level deep")
	ErrDestroyed             = errors.New("paper: item has been destroyed")
	ErrIndexOutOfRange       = errors.New("paper: index out of range")
	ErrInvalidArc            = errors.New("paper: no arc passes through the given points")
	ErrInvalidCurveParameter = errors.New("paper: curve parameter must lie strictly between 0 and 1")
)
