package app

import "sync"

// LeaderboardFeed fans out change notifications to leaderboard watchers.
// Notifications carry no payload; subscribers re-query their own filtered
// view. Channels are buffered one deep and sends never block, so a slow
// watcher coalesces bursts into a single refresh.
type LeaderboardFeed struct {
	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

func NewLeaderboardFeed() *LeaderboardFeed {
	return &LeaderboardFeed{subscribers: make(map[chan struct{}]struct{})}
}

// Subscribe registers a watcher. The caller must invoke the returned cancel
// function to avoid leaks.
func (f *LeaderboardFeed) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	f.mu.Lock()
	f.subscribers[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subscribers[ch]; ok {
			delete(f.subscribers, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Notify signals every subscriber that the leaderboard changed.
func (f *LeaderboardFeed) Notify() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
