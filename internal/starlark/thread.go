package starlark

import (
	"go.starlark.net/starlark"
)

// DefaultPoolSize is used when NewThreadPool is given a non-positive size.
const DefaultPoolSize = 10

// ThreadPool recycles Starlark threads. One pool is shared by every file
// a templater renders, across goroutines.
type ThreadPool struct {
	idle chan *starlark.Thread
}

// NewThreadPool creates a pool keeping at most maxSize idle threads.
func NewThreadPool(maxSize int) *ThreadPool {
	if maxSize <= 0 {
		maxSize = DefaultPoolSize
	}
	return &ThreadPool{idle: make(chan *starlark.Thread, maxSize)}
}

// Get returns an idle thread, or a new one when none is idle. name shows
// up in Starlark error backtraces.
func (p *ThreadPool) Get(name string) *starlark.Thread {
	select {
	case thread := <-p.idle:
		thread.Name = name
		return thread
	default:
		return &starlark.Thread{Name: name, Print: func(*starlark.Thread, string) {}}
	}
}

// Put hands a thread back. Threads beyond the pool size are dropped.
func (p *ThreadPool) Put(thread *starlark.Thread) {
	thread.Name = ""
	thread.Uncancel()
	select {
	case p.idle <- thread:
	default:
	}
}

// Size returns the number of idle threads.
func (p *ThreadPool) Size() int {
	return len(p.idle)
}
