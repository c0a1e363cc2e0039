package exec_test

import (
	"context"
	"strings"
)

// call records one runner invocation.
type call struct {
	dir  string
	name string
	args string
}

// fakeRunner answers commands from a table keyed by "name args".
type fakeRunner struct {
	calls     []call
	responses map[string]response
}

type response struct {
	output string
	err    error
}

func (r *fakeRunner) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	joined := strings.Join(args, " ")
	r.calls = append(r.calls, call{dir: dir, name: name, args: joined})
	resp := r.responses[name+" "+joined]
	return resp.output, resp.err
}

func (r *fakeRunner) commands() []string {
	var out []string
	for _, c := range r.calls {
		out = append(out, c.name+" "+c.args)
	}
	return out
}
