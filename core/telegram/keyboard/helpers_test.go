package keyboard

import "testing"

func TestReplyBuildsRowsInOrder(t *testing.T) {
	markup := Reply(true,
		Row("a", "b"),
		Row("c"),
	)

	if !markup.OneTimeKeyboard {
		t.Fatal("expected one-time keyboard")
	}
	if !markup.ResizeKeyboard {
		t.Fatal("expected resize keyboard")
	}
	if len(markup.ReplyKeyboard) != 2 {
		t.Fatalf("rows = %d, want 2", len(markup.ReplyKeyboard))
	}
	if got := markup.ReplyKeyboard[0][1].Text; got != "b" {
		t.Fatalf("button text = %q, want %q", got, "b")
	}
}

func TestReplyLocationButton(t *testing.T) {
	markup := Reply(true, []Button{{Label: "where", RequestLocation: true}})

	btn := markup.ReplyKeyboard[0][0]
	if !btn.Location {
		t.Fatal("expected location request flag on button")
	}
	if btn.Text != "where" {
		t.Fatalf("button text = %q, want %q", btn.Text, "where")
	}
}
