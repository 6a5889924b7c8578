package boltdb

import (
	"github.com/iudanet/zennotes/internal/client/storage"
)

const subscriberBuffer = 64

// Subscribe returns the change stream of this storage instance
func (s *Storage) Subscribe() (<-chan storage.ChangeEvent, func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ch := make(chan storage.ChangeEvent, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch

	return ch, func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		if c, ok := s.subs[id]; ok {
			close(c)
			delete(s.subs, id)
		}
	}
}

// publish рассылает событие после коммита транзакции
func (s *Storage) publish(id string, kind storage.ChangeKind) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	ev := storage.ChangeEvent{ID: id, Kind: kind}
	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
			// Медленный подписчик теряет событие
		}
	}
}
