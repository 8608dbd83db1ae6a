package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ConfirmFrom prints a yes/no prompt to w and reads the answer from r.
// Anything but "y" or "yes" is a no.
func ConfirmFrom(r io.Reader, w io.Writer, prompt string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", StyleWarning.Render(prompt))
	line, _ := bufio.NewReader(r).ReadString('\n')
	line = strings.TrimSpace(strings.ToLower(line))
	return line == "y" || line == "yes"
}
