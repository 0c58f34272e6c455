package testutil

import (
	"context"
	"fmt"
	"strings"
)

// Response represents a pre-configured command response for FakeCommander.
type Response struct {
	Output []byte
	Status int
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." format; prefix matching is
// tried when no exact match exists.
type FakeCommander struct {
	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// DefaultResponse is returned when no matching response is found.
	// If nil, an error is returned for unmatched commands.
	DefaultResponse *Response
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{
		Responses: make(map[string]Response),
	}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key string, output string, status int, err error) {
	c.Responses[key] = Response{
		Output: []byte(output),
		Status: status,
		Err:    err,
	}
}

func (c *FakeCommander) lookup(name string, args ...string) (Response, error) {
	fullCmd := name
	if len(args) > 0 {
		fullCmd = name + " " + strings.Join(args, " ")
	}

	c.Calls = append(c.Calls, fullCmd)

	if resp, ok := c.Responses[fullCmd]; ok {
		return resp, nil
	}
	for key, resp := range c.Responses {
		if strings.HasPrefix(fullCmd, key) {
			return resp, nil
		}
	}
	if c.DefaultResponse != nil {
		return *c.DefaultResponse, nil
	}
	return Response{}, fmt.Errorf("no fake response registered for %q", fullCmd)
}

// Run looks up the command in Responses and returns the matching output.
func (c *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	resp, err := c.lookup(name, args...)
	if err != nil {
		return nil, err
	}
	return resp.Output, resp.Err
}

// ExitStatus looks up the command in Responses and returns its status.
func (c *FakeCommander) ExitStatus(_ context.Context, name string, args ...string) (int, error) {
	resp, err := c.lookup(name, args...)
	if err != nil {
		return -1, err
	}
	return resp.Status, resp.Err
}
