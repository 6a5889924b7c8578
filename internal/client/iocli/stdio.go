package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

type Stdio struct {
	in  io.Reader
	out io.Writer
	fd  int
}

func NewStdio() IO {
	return &Stdio{in: os.Stdin, out: os.Stdout, fd: int(os.Stdin.Fd())}
}

func (s *Stdio) Println(a ...any) {
	fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	reader := bufio.NewReader(s.in)
	input, err := reader.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadAll() (string, error) {
	data, err := io.ReadAll(s.in)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (s *Stdio) IsInteractive() bool {
	return term.IsTerminal(s.fd)
}
