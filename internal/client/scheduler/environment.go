package scheduler

import (
	"sync"
)

// Connectivity reports whether the device can reach the server
type Connectivity interface {
	Online() bool
	// Subscribe delivers state transitions until cancel is called
	Subscribe() (<-chan bool, func())
}

// Visibility reports whether the user is actively looking at the app.
// Видимое приложение синхронизируется чаще.
type Visibility interface {
	Visible() bool
	Subscribe() (<-chan bool, func())
}

// stateFeed хранит булево состояние и рассылает переходы подписчикам
type stateFeed struct {
	subs   map[int]chan bool
	mu     sync.Mutex
	nextID int
	value  bool
}

func newStateFeed(initial bool) *stateFeed {
	return &stateFeed{value: initial, subs: make(map[int]chan bool)}
}

func (f *stateFeed) get() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// set меняет значение; подписчики получают только реальные переходы
func (f *stateFeed) set(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.value == v {
		return
	}
	f.value = v

	for _, ch := range f.subs {
		select {
		case ch <- v:
		default:
			// Подписчик не успевает: вытесняем устаревшее значение
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

func (f *stateFeed) subscribe() (<-chan bool, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()

	ch := make(chan bool, 1)
	id := f.nextID
	f.nextID++
	f.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			delete(f.subs, id)
			close(ch)
		})
	}
}

// ManualState is a Connectivity and Visibility driven by explicit Set calls
type ManualState struct {
	feed *stateFeed
}

// NewManualState creates a state with the given initial value
func NewManualState(initial bool) *ManualState {
	return &ManualState{feed: newStateFeed(initial)}
}

// Set changes the state
func (m *ManualState) Set(v bool) {
	m.feed.set(v)
}

// Online implements Connectivity
func (m *ManualState) Online() bool {
	return m.feed.get()
}

// Visible implements Visibility
func (m *ManualState) Visible() bool {
	return m.feed.get()
}

// Subscribe implements Connectivity and Visibility
func (m *ManualState) Subscribe() (<-chan bool, func()) {
	return m.feed.subscribe()
}

// StaticVisibility is always visible. Используется демоном без UI.
type StaticVisibility struct{}

// Visible always returns true
func (StaticVisibility) Visible() bool {
	return true
}

// Subscribe never delivers transitions
func (StaticVisibility) Subscribe() (<-chan bool, func()) {
	ch := make(chan bool)
	var once sync.Once
	return ch, func() { once.Do(func() { close(ch) }) }
}
