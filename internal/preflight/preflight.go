package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"litshelf/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// Targets lists what RunAll inspects. Empty directory fields are skipped.
type Targets struct {
	StateDir      string
	WorkingDir    string
	LiteratureDir string
	AttributeDir  string
	RepositoryDir string
	Programs      []deps.Requirement
}

// RunAll executes every applicable check.
func RunAll(t Targets) []Result {
	var results []Result
	dirs := []struct {
		name string
		path string
	}{
		{"State directory", t.StateDir},
		{"Working directory", t.WorkingDir},
		{"Literature collection", t.LiteratureDir},
		{"Attribute collection", t.AttributeDir},
		{"Repository directory", t.RepositoryDir},
	}
	for _, d := range dirs {
		if d.path == "" {
			continue
		}
		results = append(results, CheckDirectoryAccess(d.name, d.path))
	}
	for _, status := range deps.CheckBinaries(t.Programs) {
		detail := status.Detail
		if status.Available {
			detail = fmt.Sprintf("%s (found)", status.Command)
		}
		results = append(results, Result{
			Name:     status.Name,
			Passed:   status.Available,
			Optional: status.Optional,
			Detail:   detail,
		})
	}
	return results
}

// Failed returns the required checks that did not pass.
func Failed(results []Result) []Result {
	var out []Result
	for _, r := range results {
		if !r.Passed && !r.Optional {
			out = append(out, r)
		}
	}
	return out
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
