//go:build !tinygo && cgo

package hal

import "github.com/hajimehoshi/ebiten/v2"

// pollJoystick mirrors the arrow keys (and WASD) onto the joystick switches.
// Keys are level-sampled like the real switches: held means pressed.
func pollJoystick(in *pinInput) {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	in.setSwitches(
		pressed(ebiten.KeyArrowUp, ebiten.KeyW),
		pressed(ebiten.KeyArrowDown, ebiten.KeyS),
		pressed(ebiten.KeyArrowLeft, ebiten.KeyA),
		pressed(ebiten.KeyArrowRight, ebiten.KeyD),
	)
}
