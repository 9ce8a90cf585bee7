package telegram

import (
	"context"
	"sort"
	"sync"

	"github.com/sosedi-ryadom/sosedibot/core/logger"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/commands"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Registry holds bot commands, menu label handlers, and the text fallback.
type Registry struct {
	commands     map[string]commands.Command
	menus        map[string]tele.HandlerFunc
	menusMu      sync.RWMutex
	textFallback tele.HandlerFunc
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]commands.Command),
		menus:    make(map[string]tele.HandlerFunc),
	}
}

// RegisterCommand adds a new command.
func (r *Registry) RegisterCommand(name string, cmd commands.Command) {
	if r == nil || name == "" || cmd.Handler == nil || cmd.Description == "" {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "invalid"),
		)
		return
	}
	if name[0] != '/' {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.skip",
			slog.String("name", name),
			slog.String("reason", "no_slash_prefix"),
		)
		return
	}
	if _, exists := r.commands[name]; exists {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.command.duplicate",
			slog.String("name", name),
		)
		return
	}
	r.commands[name] = cmd
}

// ListCommands returns a slice of tele.Command, optionally filtering out hidden and admin-only commands.
func (r *Registry) ListCommands(visibleOnly bool) []tele.Command {
	var list []tele.Command
	for cmd, meta := range r.commands {
		if visibleOnly && (meta.Hidden || meta.AdminOnly) {
			continue
		}
		list = append(list, tele.Command{Text: cmd, Description: meta.Description})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Text < list[j].Text })
	return list
}

// Commands returns all registered commands.
func (r *Registry) Commands() map[string]commands.Command {
	return r.commands
}

// RegisterMenu maps an exact reply-keyboard label to its handler.
// Labels are matched by literal string equality against incoming text.
func (r *Registry) RegisterMenu(label string, handler tele.HandlerFunc) {
	if r == nil || label == "" || handler == nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.menu.skip",
			slog.String("label", label),
			slog.Bool("handler_nil", handler == nil),
		)
		return
	}
	r.menusMu.Lock()
	defer r.menusMu.Unlock()
	if _, exists := r.menus[label]; exists {
		logger.TWire.LogAttrs(context.Background(), slog.LevelWarn, "register.menu.duplicate",
			slog.String("label", label),
		)
		return
	}
	r.menus[label] = handler
}

// GetMenu returns the handler registered for a menu label.
func (r *Registry) GetMenu(label string) (tele.HandlerFunc, bool) {
	r.menusMu.RLock()
	defer r.menusMu.RUnlock()
	h, ok := r.menus[label]
	return h, ok
}

// ListMenus returns sorted menu labels (for diagnostics).
func (r *Registry) ListMenus() []string {
	r.menusMu.RLock()
	defer r.menusMu.RUnlock()
	labels := make([]string, 0, len(r.menus))
	for l := range r.menus {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// SetTextFallback sets a global fallback handler for unmatched text messages.
func (r *Registry) SetTextFallback(h tele.HandlerFunc) {
	r.textFallback = h
}

// TextFallback returns the current text fallback handler.
func (r *Registry) TextFallback() tele.HandlerFunc {
	return r.textFallback
}

// InitBotCommands sets the Telegram bot commands shown in the command menu.
func InitBotCommands(bot *tele.Bot, reg *Registry) {
	commands := reg.ListCommands(true)
	if err := bot.SetCommands(commands); err != nil {
		logger.TWire.LogAttrs(context.Background(), slog.LevelError, "register.commands.set_failed",
			slog.String("err", err.Error()),
		)
	}
}
