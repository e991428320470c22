package runner

import (
	"sync"
	"time"
)

// DedupWindow — кулдаун на ключ (символ или базовый актив).
// Проверка и запись атомарны под одним мьютексом: два конкурентных
// события по одному символу не должны оба пройти.
type DedupWindow struct {
	cooldown time.Duration

	mu      sync.Mutex
	entries map[string]time.Time
}

func NewDedupWindow(cooldown time.Duration) *DedupWindow {
	return &DedupWindow{
		cooldown: cooldown,
		entries:  make(map[string]time.Time),
	}
}

// TryAcquire: true — ключ свободен и теперь занят до истечения
// кулдауна. Заодно выметает протухшие записи, чтобы ключ не завис
// навсегда и карта не росла.
func (d *DedupWindow) TryAcquire(key string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	for k, at := range d.entries {
		if now.Sub(at) > d.cooldown {
			delete(d.entries, k)
		}
	}

	if at, ok := d.entries[key]; ok && now.Sub(at) <= d.cooldown {
		return false
	}
	d.entries[key] = now
	return true
}

func (d *DedupWindow) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
