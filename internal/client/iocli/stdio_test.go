package iocli

import (
	"bufio"
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedStdio(input string) (*Stdio, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &Stdio{
		in:  bufio.NewReader(strings.NewReader(input)),
		out: out,
		fd:  -1,
	}, out
}

// Проверяем что NewStdio возвращает валидный объект
func TestNewStdio(t *testing.T) {
	stdio := NewStdio()
	assert.NotNil(t, stdio)
}

func TestPrintlnPrintfWrite(t *testing.T) {
	stdio, out := newBufferedStdio("")

	stdio.Println("hello", "world")
	stdio.Printf("test %d %s\n", 1, "abc")
	_, err := stdio.Write([]byte("raw"))
	require.NoError(t, err)

	assert.Equal(t, "hello world\ntest 1 abc\nraw", out.String())
}

// Тест ReadInput: несколько строк подряд из одного буфера
func TestReadInput(t *testing.T) {
	stdio, out := newBufferedStdio("alice\n  Da Nang  \nlast-without-newline")

	first, err := stdio.ReadInput("Username: ")
	require.NoError(t, err)
	assert.Equal(t, "alice", first)

	second, err := stdio.ReadInput("City: ")
	require.NoError(t, err)
	assert.Equal(t, "Da Nang", second)

	third, err := stdio.ReadInput("Last: ")
	require.NoError(t, err)
	assert.Equal(t, "last-without-newline", third)

	_, err = stdio.ReadInput("EOF: ")
	assert.Error(t, err)

	assert.Contains(t, out.String(), "Username: ")
}

// Вне терминала пароль читается как обычная строка
func TestReadPassword_NotTerminal(t *testing.T) {
	stdio, _ := newBufferedStdio("passw0rd!\n")

	password, err := stdio.ReadPassword("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "passw0rd!", password)
}

// Тест ReadInput через подмену os.Stdin
func TestReadInput_FromStdinPipe(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)

	go func() {
		_, _ = w.Write([]byte("user input\n"))
		_ = w.Close()
	}()

	oldStdin := os.Stdin
	defer func() { os.Stdin = oldStdin }()
	os.Stdin = r

	stdio := NewStdio()
	result, err := stdio.ReadInput("Prompt: ")
	assert.NoError(t, err)
	assert.Equal(t, "user input", result)
}
