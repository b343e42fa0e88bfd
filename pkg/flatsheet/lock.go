package flatsheet

import "sync"

// pathLocks is a set of mutexes keyed by output path. Entries are dropped
// once no conversion holds or waits for them.
type pathLocks struct {
	mu    sync.Mutex
	paths map[string]*pathLock
}

type pathLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the path is free and returns the matching unlock.
func (l *pathLocks) lock(path string) func() {
	l.mu.Lock()
	if l.paths == nil {
		l.paths = make(map[string]*pathLock)
	}
	pl, ok := l.paths[path]
	if !ok {
		pl = &pathLock{}
		l.paths[path] = pl
	}
	pl.refs++
	l.mu.Unlock()

	pl.mu.Lock()
	return func() {
		pl.mu.Unlock()
		l.mu.Lock()
		pl.refs--
		if pl.refs == 0 {
			delete(l.paths, path)
		}
		l.mu.Unlock()
	}
}

// held returns the number of paths currently tracked.
func (l *pathLocks) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.paths)
}
