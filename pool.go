package pcrex

import (
	"runtime"
	"sync"
)

// Pool hands out Regex instances compiled from one pattern so goroutines
// can match in parallel without sharing a match-data block.
//
// Idle instances are kept in a bounded free list. Unlike sync.Pool, every
// instance the Pool drops is closed, so its native handles are released.
type Pool struct {
	source string
	cfg    Config
	idle   chan *Regex

	mu     sync.Mutex
	closed bool
}

// NewPool compiles source once to validate it and keeps the result as the
// first idle instance. The free list holds up to GOMAXPROCS instances.
func NewPool(source string, cfg Config) (*Pool, error) {
	re, err := BuildWithConfig(source, cfg)
	if err != nil {
		return nil, err
	}

	size := runtime.GOMAXPROCS(0)
	p := &Pool{
		source: source,
		cfg:    cfg,
		idle:   make(chan *Regex, size),
	}
	p.idle <- re
	return p, nil
}

// Get returns an idle instance, or compiles a new one if none is idle.
func (p *Pool) Get() (*Regex, error) {
	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	select {
	case re := <-p.idle:
		return re, nil
	default:
		return BuildWithConfig(p.source, p.cfg)
	}
}

// Put returns re to the pool. It is closed instead if the pool is closed
// or the free list is full. Put ignores nil and closed instances.
func (p *Pool) Put(re *Regex) {
	if re == nil || re.isClosed() {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		_ = re.Close()
		return
	}
	select {
	case p.idle <- re:
	default:
		_ = re.Close()
	}
}

// Close releases every idle instance. Instances still checked out are
// closed when they are Put back.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	for {
		select {
		case re := <-p.idle:
			_ = re.Close()
		default:
			return nil
		}
	}
}
