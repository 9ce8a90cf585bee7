package keyboard

import tele "gopkg.in/telebot.v4"

// Button describes a single reply-keyboard button spec.
type Button struct {
	Label           string
	RequestLocation bool
}

// Row is a convenience constructor for one keyboard row of plain labels.
func Row(labels ...string) []Button {
	row := make([]Button, 0, len(labels))
	for _, l := range labels {
		row = append(row, Button{Label: l})
	}
	return row
}

// Reply builds a reply keyboard from rows of button specs.
// When oneTime is set the keyboard is dismissed after a single use.
func Reply(oneTime bool, rows ...[]Button) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: oneTime}
	var kb []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, b := range row {
			if b.RequestLocation {
				buttons = append(buttons, markup.Location(b.Label))
			} else {
				buttons = append(buttons, markup.Text(b.Label))
			}
		}
		kb = append(kb, markup.Row(buttons...))
	}
	markup.Reply(kb...)
	return markup
}
