package game

import (
	"sync"
	"time"

	"github.com/lox/llmholdem/poker"
)

// EventType identifies a game event
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeForcedBet    EventType = "forced_bet"
	EventTypePlayerAction EventType = "player_action"
	EventTypeMoveRejected EventType = "move_rejected"
	EventTypeStreetChange EventType = "street_change"
	EventTypeRoundEnd     EventType = "round_end"
	EventTypeMatchEnd     EventType = "match_end"
)

func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a match
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published after the table is reset for a new round
type RoundStartEvent struct {
	Round          int           `json:"round"`
	Players        []PlayerState `json:"players"`
	Eliminations   int           `json:"eliminations"`
	SmallBlindSeat int           `json:"small_blind_seat"`
	BigBlindSeat   int           `json:"big_blind_seat"`
	timestamp      time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }

// ForcedBetEvent is published when a blind is posted
type ForcedBetEvent struct {
	Round     int    `json:"round"`
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Blind     string `json:"blind"`
	Amount    int    `json:"amount"`
	AllIn     bool   `json:"all_in"`
	PotAfter  int    `json:"pot_after"`
	timestamp time.Time
}

func (e ForcedBetEvent) EventType() EventType { return EventTypeForcedBet }
func (e ForcedBetEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published when a move is applied
type PlayerActionEvent struct {
	Round      int    `json:"round"`
	Street     Street `json:"street"`
	Seat       int    `json:"seat"`
	Name       string `json:"name"`
	Move       Move   `json:"move"`
	Paid       int    `json:"paid"`
	AllIn      bool   `json:"all_in"`
	PotAfter   int    `json:"pot_after"`
	CallAmount int    `json:"call_amount"`
	Attempts   int    `json:"attempts"`
	Forced     bool   `json:"forced"` // fold imposed after the retry budget ran out
	timestamp  time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// MoveRejectedEvent is published for every failed attempt
type MoveRejectedEvent struct {
	Round     int    `json:"round"`
	Street    Street `json:"street"`
	Seat      int    `json:"seat"`
	Name      string `json:"name"`
	Attempt   int    `json:"attempt"`
	Reason    string `json:"reason"`
	timestamp time.Time
}

func (e MoveRejectedEvent) EventType() EventType { return EventTypeMoveRejected }
func (e MoveRejectedEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published when a betting street begins
type StreetChangeEvent struct {
	Round          int          `json:"round"`
	Street         Street       `json:"street"`
	CommunityCards []poker.Card `json:"community_cards"`
	Pot            int          `json:"pot"`
	timestamp      time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// RoundEndEvent is published once the pot has been awarded
type RoundEndEvent struct {
	Result    RoundResult `json:"result"`
	timestamp time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.timestamp }

// MatchEndEvent is published when Play stops
type MatchEndEvent struct {
	MatchID      string `json:"match_id"`
	Rounds       int    `json:"rounds"`
	Eliminations int    `json:"eliminations"`
	Error        string `json:"error,omitempty"`
	timestamp    time.Time
}

func (e MatchEndEvent) EventType() EventType { return EventTypeMatchEnd }
func (e MatchEndEvent) Timestamp() time.Time { return e.timestamp }

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(event GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber) (unsubscribe func())
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	mu          sync.RWMutex
	nextID      int
	subscribers map[int]EventSubscriber
	order       []int
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{subscribers: make(map[int]EventSubscriber)}
}

// Subscribe adds a subscriber and returns a function that removes it
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) func() {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	id := bus.nextID
	bus.nextID++
	bus.subscribers[id] = subscriber
	bus.order = append(bus.order, id)
	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		delete(bus.subscribers, id)
		for i, v := range bus.order {
			if v == id {
				bus.order = append(bus.order[:i], bus.order[i+1:]...)
				break
			}
		}
	}
}

// Publish sends an event to all subscribers. Subscribers must not block.
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := make([]EventSubscriber, 0, len(bus.order))
	for _, id := range bus.order {
		subs = append(subs, bus.subscribers[id])
	}
	bus.mu.RUnlock()
	for _, sub := range subs {
		sub.OnEvent(event)
	}
}
