//go:build tinygo

package main

import (
	"joysprite/app"
	"joysprite/hal"
)

func main() {
	app.Run(hal.New())
}
