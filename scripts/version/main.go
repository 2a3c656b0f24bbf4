// Package main prints the version to stamp into the binary.
package main

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Release tags written by preflight itself are excluded so they never
// become the tool's own version.
func main() {
	out, err := exec.CommandContext(context.Background(),
		"git", "describe", "--tags", "--match", "v*", "--always", "--dirty").Output()
	if err != nil {
		fmt.Print("dev")
		return
	}
	fmt.Print(strings.TrimSpace(string(out)))
}
