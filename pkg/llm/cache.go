package llm

import (
	"container/list"
	"fmt"
	"sync"
)

// defaultCacheSize matches the bounded memoization the debate engine relies
// on: rehearsal trees re-score identical statements often enough that a small
// cache pays for itself.
const defaultCacheSize = 100

// promptCache is a mutex-guarded LRU of prompt+options -> completion.
type promptCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List               // front = most recently used
	entries  map[string]*list.Element // key -> element holding cacheEntry
}

type cacheEntry struct {
	key   string
	value string
}

func newPromptCache(capacity int) *promptCache {
	return &promptCache{
		capacity: capacity,
		order:    list.New(),
		entries:  make(map[string]*list.Element, capacity),
	}
}

func cacheKey(prompt string, opts Options) string {
	t := float64(-1)
	if opts.Temperature != nil {
		t = *opts.Temperature
	}
	mt := -1
	if opts.MaxTokens != nil {
		mt = *opts.MaxTokens
	}
	return fmt.Sprintf("%.3f|%d|%d|%.3f|%s", t, mt, opts.ContextWindow, opts.RepeatPenalty, prompt)
}

func (pc *promptCache) get(key string) (string, bool) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	elem, ok := pc.entries[key]
	if !ok {
		return "", false
	}
	pc.order.MoveToFront(elem)
	return elem.Value.(cacheEntry).value, true
}

func (pc *promptCache) put(key, value string) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if elem, ok := pc.entries[key]; ok {
		elem.Value = cacheEntry{key: key, value: value}
		pc.order.MoveToFront(elem)
		return
	}

	pc.entries[key] = pc.order.PushFront(cacheEntry{key: key, value: value})

	for pc.order.Len() > pc.capacity {
		oldest := pc.order.Back()
		pc.order.Remove(oldest)
		delete(pc.entries, oldest.Value.(cacheEntry).key)
	}
}

func (pc *promptCache) len() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.order.Len()
}
