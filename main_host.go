//go:build !tinygo

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"joysprite/app"
	"joysprite/hal"
)

func main() {
	var (
		backend string
		hz      int
		ticks   uint64
		scale   int
	)
	pc := hal.DefaultPeriphConfig()
	flag.StringVar(&backend, "backend", "window", "Target: window, headless, term or periph.")
	flag.IntVar(&hz, "hz", hal.DefaultHz, "Loop iterations per second.")
	flag.Uint64Var(&ticks, "ticks", 0, "Stop after N iterations in headless mode (0 = run forever).")
	flag.IntVar(&scale, "scale", 4, "Panel pixels per terminal column in term mode.")
	flag.StringVar(&pc.SPI, "spi", pc.SPI, "spidev port for the panel (periph).")
	flag.StringVar(&pc.DC, "dc", pc.DC, "Data/command GPIO (periph).")
	flag.StringVar(&pc.Reset, "rst", pc.Reset, "Reset GPIO (periph).")
	flag.StringVar(&pc.Backlight, "bl", pc.Backlight, "Backlight GPIO (periph).")
	flag.StringVar(&pc.LED, "led", pc.LED, "Status LED GPIO (periph).")
	flag.StringVar(&pc.Up, "up", pc.Up, "Joystick up GPIO (periph).")
	flag.StringVar(&pc.Down, "down", pc.Down, "Joystick down GPIO (periph).")
	flag.StringVar(&pc.Left, "left", pc.Left, "Joystick left GPIO (periph).")
	flag.StringVar(&pc.Right, "right", pc.Right, "Joystick right GPIO (periph).")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch backend {
	case "window":
		err = hal.RunWindow(app.New, hz)
	case "headless":
		err = hal.RunHeadless(ctx, app.New, hal.HeadlessConfig{Hz: hz, Ticks: ticks})
	case "term":
		err = hal.RunTerm(ctx, app.New, hal.TermConfig{Hz: hz, Scale: scale})
	case "periph":
		pc.Hz = hz
		err = hal.RunPeriph(ctx, app.New, pc)
	default:
		err = fmt.Errorf("unknown backend %q", backend)
	}
	if err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
