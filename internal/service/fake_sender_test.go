package service_test

import (
	"context"
	"sync"

	"github.com/gpublishing/website/internal/email"
)

// fakeSender records every message and lets a test fail or panic per recipient.
type fakeSender struct {
	mu     sync.Mutex
	sent   []email.Message
	fail   map[string]error
	panics map[string]bool
	hook   func(msg email.Message)
}

func newFakeSender() *fakeSender {
	return &fakeSender{
		fail:   map[string]error{},
		panics: map[string]bool{},
	}
}

func (f *fakeSender) Send(_ context.Context, msg email.Message) error {
	if f.hook != nil {
		f.hook(msg)
	}

	f.mu.Lock()
	f.sent = append(f.sent, msg)
	err := f.fail[msg.To]
	doPanic := f.panics[msg.To]
	f.mu.Unlock()

	if doPanic {
		panic("boom for " + msg.To)
	}
	return err
}

func (f *fakeSender) recipients() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.To)
	}
	return out
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
