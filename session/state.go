package session

// State is the fitting session's position in the try-on flow. All
// transitions go through the controller's guarded operations; illegal
// moves are rejected with ErrInvalidTransition.
type State int

const (
	StateIdle State = iota
	StateAwaitingPhoto
	StateUploading
	StateGenerating
	StateResult
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPhoto:
		return "awaiting_photo"
	case StateUploading:
		return "uploading"
	case StateGenerating:
		return "generating"
	case StateResult:
		return "result"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
