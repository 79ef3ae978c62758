//go:build tinygo

package hal

// printLogger writes to the runtime's default console (USB CDC on RP2040).
type printLogger struct{}

func (printLogger) WriteLineString(s string) {
	println(s)
}

func (printLogger) WriteLineBytes(b []byte) {
	println(string(b))
}
