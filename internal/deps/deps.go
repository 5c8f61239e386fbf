// Package deps reports whether the host programs litshelf shells out to are
// installed.
package deps

import (
	"fmt"
	"os/exec"
	"strings"
)

// Requirement defines an external program litshelf may run.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string `json:"name"`
	Command     string `json:"command"`
	Description string `json:"description,omitempty"`
	Optional    bool   `json:"optional"`
	Available   bool   `json:"available"`
	Detail      string `json:"detail,omitempty"`
}

// CheckBinaries evaluates the provided requirements and reports availability.
// Only the first word of Command is looked up so configured commands may carry
// arguments.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		switch bin := Binary(cmd); {
		case bin == "":
			status.Detail = "command not configured"
		case !Available(bin):
			status.Detail = fmt.Sprintf("binary %q not found", bin)
		default:
			status.Available = true
		}
		results = append(results, status)
	}
	return results
}

// FirstAvailable returns the first command whose binary is on PATH.
func FirstAvailable(commands ...string) (string, bool) {
	for _, cmd := range commands {
		if bin := Binary(cmd); bin != "" && Available(bin) {
			return cmd, true
		}
	}
	return "", false
}

// Available reports whether bin resolves via PATH (or is an executable path).
func Available(bin string) bool {
	_, err := exec.LookPath(bin)
	return err == nil
}

// Binary returns the program name of a command line.
func Binary(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
