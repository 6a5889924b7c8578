package iocli

//go:generate moq -out io_mock.go . IO

// IO abstracts the terminal for CLI commands
type IO interface {
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	// ReadAll reads stdin to EOF (piped note content)
	ReadAll() (string, error)
	// IsInteractive reports whether stdin is a terminal
	IsInteractive() bool
	Write(p []byte) (n int, err error)
}
