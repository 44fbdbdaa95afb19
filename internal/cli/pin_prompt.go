package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
)

// readPin reads one line from stdin. Echo is turned off when stdin is a
// terminal; piped input is read as is.
func readPin(stdin *os.File) (string, error) {
	if stdin == nil {
		return "", errors.New("stdin unavailable")
	}

	if restore, err := disableEcho(stdin); err == nil {
		defer restore()
	}
	return readLine(stdin)
}

func readLine(input io.Reader) (string, error) {
	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
