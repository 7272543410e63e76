package accountdelivery

import (
	"fmt"
	"io"
	"strings"
)

// readLine returns the next input line without surrounding whitespace.
//
// A final line without a newline is returned before io.EOF.
func (h *Handler) readLine() (string, error) {
	if h.outErr != nil {
		return "", outputError{h.outErr}
	}

	line, err := h.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}

	return strings.TrimSpace(line), nil
}

func (h *Handler) prompt(label string) (string, error) {
	h.printf("%s", label)
	return h.readLine()
}

// waitForEnter pauses until the holder presses enter. End of input is left
// for the menu loop to handle.
func (h *Handler) waitForEnter() error {
	h.println()
	h.printf("Press Enter to continue...")

	_, err := h.readLine()
	if err == io.EOF {
		return nil
	}

	return err
}

func (h *Handler) clearScreen() {
	if h.clear {
		h.printf("%s", clearSeq)
	}
}

func (h *Handler) println(a ...any) {
	if h.outErr != nil {
		return
	}
	_, h.outErr = fmt.Fprintln(h.out, a...)
}

func (h *Handler) printf(format string, a ...any) {
	if h.outErr != nil {
		return
	}
	_, h.outErr = fmt.Fprintf(h.out, format, a...)
}
