package cli

import (
	"os"
	"strings"
	"testing"
)

func TestReadPinFromPipe(t *testing.T) {
	t.Parallel()

	reader, writer, err := os.Pipe()
	if err != nil {
		t.Fatalf("create pipe: %v", err)
	}
	defer reader.Close()

	if _, err := writer.WriteString("4321\r\nignored\n"); err != nil {
		t.Fatalf("write pipe: %v", err)
	}
	writer.Close()

	pin, err := readPin(reader)
	if err != nil {
		t.Fatalf("readPin returned error: %v", err)
	}
	if pin != "4321" {
		t.Fatalf("expected 4321, got %q", pin)
	}
}

func TestReadLineWithoutTrailingNewline(t *testing.T) {
	t.Parallel()

	line, err := readLine(strings.NewReader("9876"))
	if err != nil {
		t.Fatalf("readLine returned error: %v", err)
	}
	if line != "9876" {
		t.Fatalf("expected 9876, got %q", line)
	}
}

func TestReadPinRequiresStdin(t *testing.T) {
	t.Parallel()

	if _, err := readPin(nil); err == nil {
		t.Fatal("expected error for nil stdin")
	}
}
