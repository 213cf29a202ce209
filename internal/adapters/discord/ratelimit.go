package discord

import (
	"sync"
	"time"
)

// clickLimiter amortigua doble click: una acción por clave dentro de la ventana.
type clickLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func newClickLimiter(window time.Duration) *clickLimiter {
	return &clickLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

// clickKey separa por acción: votar y llamar al staff no se bloquean entre sí.
func clickKey(action, userID, matchID string) string {
	return action + "/" + userID + "/" + matchID
}

func (l *clickLimiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[key]; ok && now.Before(until) {
		return false
	}
	// las entradas vencidas no sirven para nada
	if len(l.next) > 256 {
		for k, until := range l.next {
			if !now.Before(until) {
				delete(l.next, k)
			}
		}
	}
	l.next[key] = now.Add(l.win)
	return true
}
