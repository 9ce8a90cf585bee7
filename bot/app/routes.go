package app

import (
	tele "gopkg.in/telebot.v4"

	"github.com/sosedi-ryadom/sosedibot/bot/engine"
	coretelegram "github.com/sosedi-ryadom/sosedibot/core/telegram"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/commands"
	tghelpers "github.com/sosedi-ryadom/sosedibot/core/telegram/helpers"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/keyboard"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/router"
)

// buildRoutes registers commands, menu labels, and the text fallback,
// then returns the complete route set for the bot.
func (a *App) buildRoutes(reg *coretelegram.Registry) []coretelegram.Route {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleWith(a.engine.Start),
		Description: "Регистрация и главное меню",
	})
	reg.RegisterCommand("/stats", commands.Command{
		Handler:     a.handleWith(a.engine.Stats),
		Description: "Служебная статистика",
		AdminOnly:   true,
		Hidden:      true,
	})

	for label, h := range a.engine.MenuHandlers() {
		reg.RegisterMenu(label, a.handleWith(h))
	}
	reg.SetTextFallback(a.handleWith(a.engine.FreeText))

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: a.cfg.Core.Telegram.AdminID,
	})
	routes = append(routes,
		router.TextRoute(reg),
		router.LocationRoute(a.handleWith(a.engine.SaveLocation)),
	)
	return routes
}

// handleWith adapts an engine entry point to a telebot handler: build
// the transport-free event, run the engine, deliver the replies. The
// engine error is returned after delivery so the router logs it while
// the user still gets the failure message.
func (a *App) handleWith(h engine.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		replies, err := h(ctx, buildEvent(c))
		for _, r := range replies {
			if sendErr := sendReply(c, r); sendErr != nil && err == nil {
				err = sendErr
			}
		}
		return err
	}
}

func buildEvent(c tele.Context) engine.Event {
	username, firstName, lastName := tghelpers.SenderNames(c)
	ev := engine.Event{
		SenderID: tghelpers.SenderID(c),
		Text:     c.Text(),
		Profile: engine.Profile{
			Username:  username,
			FirstName: firstName,
			LastName:  lastName,
		},
	}
	if msg := c.Message(); msg != nil && msg.Location != nil {
		ev.Location = &engine.Location{
			Latitude:  float64(msg.Location.Lat),
			Longitude: float64(msg.Location.Lng),
		}
	}
	return ev
}

func sendReply(c tele.Context, r engine.Reply) error {
	if r.Keyboard == nil {
		return tghelpers.SendText(c, r.Text)
	}
	return tghelpers.SendText(c, r.Text, &tele.SendOptions{ReplyMarkup: toMarkup(r.Keyboard)})
}

func toMarkup(k *engine.Keyboard) *tele.ReplyMarkup {
	rows := make([][]keyboard.Button, 0, len(k.Rows))
	for _, row := range k.Rows {
		buttons := make([]keyboard.Button, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, keyboard.Button{
				Label:           b.Label,
				RequestLocation: b.RequestLocation,
			})
		}
		rows = append(rows, buttons)
	}
	return keyboard.Reply(k.OneTime, rows...)
}
