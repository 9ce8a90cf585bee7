// Package state provides a lightweight per-user session registry for
// multi-step Telegram dialogues. It is kept in memory only.
package state
