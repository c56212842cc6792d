package robot

import (
	"github.com/go-vgo/robotgo"
)

// Corner is where the pointer is parked on a width x height display
func Corner(width, height int) (x, y int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	return width - 1, height - 1
}

// ParkPointer moves the mouse pointer to the bottom right corner so it does not
// sit in the middle of the video
func ParkPointer(width, height int) {
	x, y := Corner(width, height)
	robotgo.Move(x, y)
}
