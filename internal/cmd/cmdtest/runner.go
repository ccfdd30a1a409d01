// Package cmdtest provides a scripted cmd.Runner for tests.
package cmdtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/raphi011/agentkit/internal/cmd"
)

// Response is the scripted outcome for a command line.
type Response struct {
	Stdout string
	Stderr string
	Code   int
}

// Call records one invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// Line returns "name arg1 arg2".
func (c Call) Line() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Runner answers commands from a table keyed by command-line prefix.
// The longest matching prefix wins; unmatched commands succeed with no output.
type Runner struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []Call
}

// New creates an empty scripted runner.
func New() *Runner {
	return &Runner{responses: make(map[string]Response)}
}

// On scripts the response for every command line starting with prefix.
func (r *Runner) On(prefix string, resp Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[prefix] = resp
	return r
}

// Run implements cmd.Runner.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (cmd.Result, error) {
	r.mu.Lock()
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	r.calls = append(r.calls, call)
	resp, ok := r.match(call.Line())
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return cmd.Result{ExitCode: -1}, err
	}
	if !ok {
		return cmd.Result{}, nil
	}

	res := cmd.Result{ExitCode: resp.Code, Stdout: []byte(resp.Stdout), Stderr: []byte(resp.Stderr)}
	if resp.Code != 0 {
		return res, &cmd.ExitError{Name: name, Args: args, Code: resp.Code, Stderr: strings.TrimSpace(resp.Stderr)}
	}
	return res, nil
}

func (r *Runner) match(line string) (Response, bool) {
	best := -1
	var found Response
	for prefix, resp := range r.responses {
		if (line == prefix || strings.HasPrefix(line, prefix+" ")) && len(prefix) > best {
			best = len(prefix)
			found = resp
		}
	}
	return found, best >= 0
}

// Calls returns every recorded invocation in order.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Lines returns the recorded command lines in order.
func (r *Runner) Lines() []string {
	var lines []string
	for _, c := range r.Calls() {
		lines = append(lines, c.Line())
	}
	return lines
}

// Ran reports whether any recorded command line starts with prefix.
func (r *Runner) Ran(prefix string) bool {
	for _, line := range r.Lines() {
		if line == prefix || strings.HasPrefix(line, prefix+" ") {
			return true
		}
	}
	return false
}

// String lists the recorded command lines, one per line.
func (r *Runner) String() string {
	return fmt.Sprint(strings.Join(r.Lines(), "\n"))
}
