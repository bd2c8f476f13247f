package common

// Virtual key codes understood by the spread host.
// These values match GLFW key codes which use ASCII values for printable keys.
// Escape is handled by the window itself and closes it.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyM     = 77 // M key (ASCII), switches to the next deck
	KeyP     = 80 // P key (ASCII), toggles profiling
	KeyR     = 82 // R key (ASCII), recenters the pointer signal
	KeySpace = 32 // Spacebar (ASCII), pauses or resumes the current deck
)
