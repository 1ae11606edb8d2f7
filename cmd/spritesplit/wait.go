package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/ssh/terminal"
)

// waitForKey keeps a console window opened by double-clicking around until
// the user has read the error.
func waitForKey(enabled bool) {
	if !enabled {
		return
	}
	fmt.Println("Press any key to exit...")

	fd := int(os.Stdin.Fd())
	if terminal.IsTerminal(fd) {
		if state, err := terminal.MakeRaw(fd); err == nil {
			defer terminal.Restore(fd, state)
		}
	}
	b := make([]byte, 1)
	os.Stdin.Read(b)
}
