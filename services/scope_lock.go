package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	scopeLockPrefix = "exam_scope_lock:"
	scopeLockLease  = 30 * time.Second
	scopeLockRetry  = 50 * time.Millisecond
)

// ErrLockTimeout is returned when a scope lock cannot be taken before the deadline
var ErrLockTimeout = errors.New("timed out waiting for scope lock")

// DistributedLocker is the subset of utils/cache.RedisCache used for cross-process locking
type DistributedLocker interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error)
	ReleaseIfOwner(ctx context.Context, key, token string) (bool, error)
}

// ScopeLocker serialises mutations per department/semester cohort. A partial
// scope expands to every cohort it covers, and keys are always taken in
// sorted order so overlapping requests cannot deadlock.
type ScopeLocker struct {
	departments []string
	remote      DistributedLocker
	timeout     time.Duration

	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewScopeLocker creates a locker. remote may be nil for in-process locking only.
func NewScopeLocker(departments []string, remote DistributedLocker, timeout time.Duration) *ScopeLocker {
	return &ScopeLocker{
		departments: departments,
		remote:      remote,
		timeout:     timeout,
		slots:       make(map[string]chan struct{}),
	}
}

// Lock blocks until every cohort covered by scopes is held and returns the release func
func (l *ScopeLocker) Lock(ctx context.Context, scopes ...Scope) (func(), error) {
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	keys := l.keys(scopes)
	token := uuid.NewString()
	var local, remote []string

	release := func() {
		for i := len(remote) - 1; i >= 0; i-- {
			l.releaseRemote(remote[i], token)
		}
		for i := len(local) - 1; i >= 0; i-- {
			<-l.slot(local[i])
		}
	}

	for _, key := range keys {
		select {
		case l.slot(key) <- struct{}{}:
			local = append(local, key)
		case <-ctx.Done():
			release()
			return nil, fmt.Errorf("%w %s", ErrLockTimeout, key)
		}
	}

	if l.remote != nil {
		for _, key := range keys {
			held, err := l.acquireRemote(ctx, key, token)
			if err != nil {
				release()
				return nil, err
			}
			if held {
				remote = append(remote, key)
			}
		}
	}

	return release, nil
}

// acquireRemote retries SETNX until the context expires. A Redis failure
// degrades to in-process locking and reports held=false.
func (l *ScopeLocker) acquireRemote(ctx context.Context, key, token string) (bool, error) {
	ticker := time.NewTicker(scopeLockRetry)
	defer ticker.Stop()

	for {
		ok, err := l.remote.SetNX(ctx, scopeLockPrefix+key, token, scopeLockLease)
		if err != nil {
			if ctx.Err() != nil {
				return false, fmt.Errorf("%w %s", ErrLockTimeout, key)
			}
			log.Printf("[LOCK] redis unavailable for %s, using local lock only: %v", key, err)
			return false, nil
		}
		if ok {
			return true, nil
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return false, fmt.Errorf("%w %s", ErrLockTimeout, key)
		}
	}
}

func (l *ScopeLocker) releaseRemote(key, token string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	released, err := l.remote.ReleaseIfOwner(ctx, scopeLockPrefix+key, token)
	if err != nil {
		log.Printf("[LOCK] failed to release %s: %v", key, err)
		return
	}
	if !released {
		log.Printf("[LOCK] lease on %s expired before release", key)
	}
}

func (l *ScopeLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}
	return ch
}

// keys expands scopes into sorted, de-duplicated cohort keys
func (l *ScopeLocker) keys(scopes []Scope) []string {
	seen := make(map[string]bool)
	var keys []string
	for _, scope := range scopes {
		departments := l.departments
		if scope.Department != "" {
			departments = []string{scope.Department}
		}
		semesters := []int{}
		if scope.Semester != nil {
			semesters = append(semesters, *scope.Semester)
		} else {
			for s := minSemester; s <= maxSemester; s++ {
				semesters = append(semesters, s)
			}
		}
		for _, d := range departments {
			for _, s := range semesters {
				key := cohortKey(d, s)
				if !seen[key] {
					seen[key] = true
					keys = append(keys, key)
				}
			}
		}
	}
	sort.Strings(keys)
	return keys
}
