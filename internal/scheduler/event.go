package scheduler

import "sync"

// Event именованный токен, запускающий группу систем
type Event string

// Зарезервированные события движка
const (
	EventStart   Event = "START"
	EventPoll    Event = "POLL"
	EventUpdate  Event = "UPDATE"
	EventRender  Event = "RENDER"
	EventQuit    Event = "QUIT"
	EventResized Event = "RESIZED"
	EventCreated Event = "CREATED"
	EventReady   Event = "READY"
)

// Queue потокобезопасная FIFO-очередь событий (много писателей, один читатель)
type Queue struct {
	mu     sync.Mutex
	events []Event
}

// NewQueue создаёт пустую очередь
func NewQueue() *Queue {
	return &Queue{}
}

// Push добавляет событие в конец очереди
func (q *Queue) Push(e Event) {
	q.mu.Lock()
	q.events = append(q.events, e)
	q.mu.Unlock()
}

// Swap атомарно забирает накопленные события, оставляя пустую очередь
func (q *Queue) Swap() []Event {
	q.mu.Lock()
	out := q.events
	q.events = nil
	q.mu.Unlock()
	return out
}

// Len число ожидающих событий
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
