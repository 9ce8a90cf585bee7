package helpers

import tele "gopkg.in/telebot.v4"

// SenderID returns the Telegram user id of the update sender, or 0 when
// the update carries no resolvable sender.
func SenderID(c tele.Context) int64 {
	if c == nil || c.Sender() == nil {
		return 0
	}
	return c.Sender().ID
}

// SenderNames returns the username and name fields of the update sender.
// Missing fields come back empty.
func SenderNames(c tele.Context) (username, firstName, lastName string) {
	if c == nil || c.Sender() == nil {
		return "", "", ""
	}
	u := c.Sender()
	return u.Username, u.FirstName, u.LastName
}
