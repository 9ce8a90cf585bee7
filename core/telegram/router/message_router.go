package router

import (
	"time"

	tg "github.com/sosedi-ryadom/sosedibot/core/telegram"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// TextRoute builds the handler for plain text updates.
//
// Menu labels are matched first so navigation buttons always win over an
// in-progress dialogue step; everything else goes to the registry text
// fallback, which is expected to consult the session registry itself.
func TextRoute(reg *tg.Registry) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if reg != nil {
			if menu, ok := reg.GetMenu(text); ok && menu != nil {
				return handleWithSummary(c, "menu."+normalizeHandlerName(text), start, "", "", func() error {
					return menu(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	return tg.Route{
		Endpoint: tele.OnText,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}

// LocationRoute wires the location payload handler with shared middleware.
func LocationRoute(h tele.HandlerFunc) tg.Route {
	handler := func(c tele.Context) error {
		start := time.Now()
		if c.Message() == nil || c.Message().Location == nil {
			logHandlerSummary(c, "location", start, "skip", "ok", nil)
			return nil
		}
		return handleWithSummary(c, "location", start, "", "", func() error {
			return h(c)
		})
	}

	return tg.Route{
		Endpoint: tele.OnLocation,
		Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(handler)),
	}
}
