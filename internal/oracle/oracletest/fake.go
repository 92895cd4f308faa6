// Package oracletest provides a scripted oracle for tests.
package oracletest

import (
	"context"
	"sync"

	"github.com/muhammadolammi/opportunitymatch/internal/oracle"
)

// Reply is the scripted answer for one task.
type Reply struct {
	Text string
	Err  error
}

// Fake answers each task with a fixed reply and records every request.
type Fake struct {
	mu       sync.Mutex
	replies  map[oracle.Task]Reply
	requests []oracle.Request
	// Block, when set, makes Ask wait for ctx to finish before answering.
	Block bool
}

func New() *Fake {
	return &Fake{replies: make(map[oracle.Task]Reply)}
}

// On sets the reply for task and returns f for chaining.
func (f *Fake) On(task oracle.Task, text string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replies[task] = Reply{Text: text, Err: err}
	return f
}

func (f *Fake) Ask(ctx context.Context, req oracle.Request) (string, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	reply, ok := f.replies[req.Task]
	block := f.Block
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if !ok {
		return "{}", nil
	}
	return reply.Text, reply.Err
}

// Requests returns a copy of the recorded requests.
func (f *Fake) Requests() []oracle.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]oracle.Request(nil), f.requests...)
}

// Calls counts the recorded requests for task.
func (f *Fake) Calls(task oracle.Task) int {
	n := 0
	for _, r := range f.Requests() {
		if r.Task == task {
			n++
		}
	}
	return n
}
