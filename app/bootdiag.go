//go:build !(tinygo && bootdebug)

package app

import "joysprite/hal"

func bootStep(h hal.HAL, msg string) {}
