// Package engine implements the dialogue logic of the neighborhood
// mutual-aid bot. It is transport-free: one inbound Event produces a
// list of Reply values, and the caller decides how to deliver them.
package engine

import (
	"context"
	"sync"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/bot/storage"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/state"
)

// Store is the persistence surface the engine needs. *storage.Store
// satisfies it.
type Store interface {
	UpsertUser(ctx context.Context, id int64, username, firstName, lastName, phone string) error
	UpdateUserLocation(ctx context.Context, id int64, lat, lon float64) error
	CreateHelpRequest(ctx context.Context, userID int64, category model.Category, description, details string) (int64, error)
	CreateHelpOffer(ctx context.Context, userID int64, category model.Category, description, details string) (int64, error)
	FindRequestsByCategory(ctx context.Context, category model.Category) ([]model.Match, error)
	FindOffersByCategory(ctx context.Context, category model.Category) ([]model.Match, error)
	GetRequestsByUser(ctx context.Context, userID int64) ([]model.HelpRequest, error)
	GetOffersByUser(ctx context.Context, userID int64) ([]model.HelpOffer, error)
	CountActivity(ctx context.Context) (storage.Counts, error)
}

// Profile carries the sender fields the platform attaches to an update.
type Profile struct {
	Username  string
	FirstName string
	LastName  string
}

// Location is a shared-coordinates payload.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Event is one inbound update, already stripped of transport detail.
type Event struct {
	SenderID int64
	Text     string
	Location *Location
	Profile  Profile
}

// Button is one reply-keyboard button spec.
type Button struct {
	Label           string
	RequestLocation bool
}

// Keyboard is an ordered grid of buttons.
type Keyboard struct {
	OneTime bool
	Rows    [][]Button
}

// Reply is one outbound message. A nil Keyboard means plain text.
type Reply struct {
	Text     string
	Keyboard *Keyboard
}

// HandlerFunc is the shape of every engine entry point.
type HandlerFunc func(ctx context.Context, ev Event) ([]Reply, error)

// Engine drives the conversation state machine. All durable state lives
// in the store; dialogue progress lives in the session manager.
type Engine struct {
	store    Store
	sessions state.Manager

	locks sync.Map // int64 -> *sync.Mutex
}

// New builds an engine over the given store and session manager.
func New(store Store, sessions state.Manager) *Engine {
	return &Engine{store: store, sessions: sessions}
}

// lockUser serializes all handling for one sender. Cross-user ordering
// is deliberately unconstrained.
func (e *Engine) lockUser(id int64) func() {
	v, _ := e.locks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// Handle dispatches one event through the full priority order:
// start command, location payload, exact menu labels, then the
// session-step fallback. Events without a sender are ignored.
func (e *Engine) Handle(ctx context.Context, ev Event) ([]Reply, error) {
	if ev.SenderID == 0 {
		return nil, nil
	}
	switch {
	case ev.Text == "/start":
		return e.Start(ctx, ev)
	case ev.Location != nil:
		return e.SaveLocation(ctx, ev)
	}
	if h, ok := e.menuHandler(ev.Text); ok {
		return h(ctx, ev)
	}
	return e.FreeText(ctx, ev)
}

func (e *Engine) menuHandler(label string) (HandlerFunc, bool) {
	h, ok := e.MenuHandlers()[label]
	return h, ok
}

// MenuHandlers maps exact button labels to their handlers. The main
// menu escape restarts registration, same as /start.
func (e *Engine) MenuHandlers() map[string]HandlerFunc {
	return map[string]HandlerFunc{
		LabelNeedHelp:   e.NeedHelp,
		LabelCanHelp:    e.CanHelp,
		LabelMyActivity: e.MyActivity,
		LabelDelete:     e.DeleteList,
		LabelFindHelp:   e.FindNearby,
		LabelMainMenu:   e.Start,
	}
}
