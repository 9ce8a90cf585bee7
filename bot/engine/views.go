package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/format"
)

const nearbyDisplayLimit = 5

const deletePrefixRunes = 30

// MyActivity lists everything the sender has filed, requests first,
// with a status glyph per line. Read-only.
func (e *Engine) MyActivity(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	requests, err := e.store.GetRequestsByUser(ctx, ev.SenderID)
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}
	offers, err := e.store.GetOffersByUser(ctx, ev.SenderID)
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}

	var b strings.Builder
	b.WriteString(textActivityHeader)

	if len(requests) > 0 {
		b.WriteString(textActivityReqHdr)
		for _, r := range requests {
			writeActivityLine(&b, r.Status, r.Description, r.Details)
		}
	}
	if len(offers) > 0 {
		b.WriteString(textActivityOffHdr)
		for _, o := range offers {
			writeActivityLine(&b, o.Status, o.Description, o.Details)
		}
	}
	if len(requests) == 0 && len(offers) == 0 {
		b.WriteString(textActivityEmpty)
	}

	return []Reply{{Text: b.String()}}, nil
}

func writeActivityLine(b *strings.Builder, status, description, details string) {
	glyph := "🟡"
	if status == model.StatusCompleted {
		glyph = "✅"
	}
	fmt.Fprintf(b, "%s %s\n", glyph, description)
	if details != "" {
		fmt.Fprintf(b, "   📝 %s\n", details)
	}
}

// FindNearby shows active help requests across all categories. The
// headline reports the full count while at most five entries are
// rendered. Despite the name, distance plays no part here.
func (e *Engine) FindNearby(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	requests, err := e.store.FindRequestsByCategory(ctx, "")
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}
	if len(requests) == 0 {
		return []Reply{{Text: textNearbyEmpty}}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, textNearbyHeader, len(requests))

	shown := requests
	if len(shown) > nearbyDisplayLimit {
		shown = shown[:nearbyDisplayLimit]
	}
	for _, r := range shown {
		fmt.Fprintf(&b, "🙋 %s\n👤 %s\n💬 %s\n\n", r.Description, format.DerefString(r.FirstName, ""), r.Details)
	}
	b.WriteString(textNearbyFooter)

	return []Reply{{Text: b.String()}}, nil
}

// DeleteList offers the sender's active items as keyboard choices.
// Selecting one currently does nothing beyond the regular fallback;
// the actual deletion handler is a future extension.
func (e *Engine) DeleteList(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	requests, err := e.store.GetRequestsByUser(ctx, ev.SenderID)
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}
	offers, err := e.store.GetOffersByUser(ctx, ev.SenderID)
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}

	var rows [][]Button
	for _, r := range requests {
		if r.Status != model.StatusActive {
			continue
		}
		rows = append(rows, []Button{{Label: "🗑️ Запрос: " + truncateRunes(r.Description, deletePrefixRunes) + "..."}})
	}
	for _, o := range offers {
		if o.Status != model.StatusActive {
			continue
		}
		rows = append(rows, []Button{{Label: "🗑️ Предложение: " + truncateRunes(o.Description, deletePrefixRunes) + "..."}})
	}
	if len(rows) == 0 {
		return []Reply{{Text: textDeleteEmpty}}, nil
	}

	return []Reply{{Text: textDeletePrompt, Keyboard: &Keyboard{OneTime: true, Rows: rows}}}, nil
}

// Stats summarizes table sizes for operators.
func (e *Engine) Stats(ctx context.Context, ev Event) ([]Reply, error) {
	c, err := e.store.CountActivity(ctx)
	if err != nil {
		return []Reply{{Text: textLookupFailed}}, err
	}
	text := fmt.Sprintf("👥 Пользователей: %d\n🙋 Запросов помощи: %d\n🤝 Предложений помощи: %d",
		c.Users, c.Requests, c.Offers)
	return []Reply{{Text: text}}, nil
}

// truncateRunes cuts by runes, not bytes, so Cyrillic text is never
// split mid-character.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
