// Package iocli abstracts terminal input and output for the booking CLI,
// so commands can be driven by scripted input in tests.
package iocli

//go:generate moq -out io_mock.go . IO

// IO is the terminal of one CLI invocation.
// Write lets tabular output (text/tabwriter) go through the same sink as Println.
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	// ReadInput печатает prompt и читает строку без завершающего перевода строки
	ReadInput(prompt string) (string, error)
	// ReadPassword читает строку без эха
	ReadPassword(prompt string) (string, error)
	Write(p []byte) (n int, err error)
}
