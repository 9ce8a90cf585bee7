package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sosedi-ryadom/sosedibot/bot/model"
	"github.com/sosedi-ryadom/sosedibot/core/logger"
	"github.com/sosedi-ryadom/sosedibot/core/telegram/state"
)

func categoryOf(s state.Session) model.Category {
	return model.Category(s.Category)
}

// Start registers (or re-registers) the sender and shows the main menu.
// The profile write is a full overwrite, so any dialogue in progress and
// any stored coordinates are discarded. The session resets only after
// the write succeeds.
func (e *Engine) Start(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	p := ev.Profile
	if err := e.store.UpsertUser(ctx, ev.SenderID, p.Username, p.FirstName, p.LastName, ""); err != nil {
		return []Reply{{Text: textPersistFailed}}, err
	}
	e.sessions.Clear(ev.SenderID)

	return []Reply{{Text: textWelcome, Keyboard: mainMenuKeyboard()}}, nil
}

// SaveLocation stores the shared coordinates and acknowledges. The
// dialogue session is left untouched.
func (e *Engine) SaveLocation(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	if ev.Location == nil {
		return []Reply{{Text: textNavigationHint}}, nil
	}
	if err := e.store.UpdateUserLocation(ctx, ev.SenderID, ev.Location.Latitude, ev.Location.Longitude); err != nil {
		return []Reply{{Text: textPersistFailed}}, err
	}
	return []Reply{{Text: textLocationSaved}}, nil
}

// NeedHelp opens the request flow and asks for a category.
func (e *Engine) NeedHelp(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	e.sessions.Set(ev.SenderID, state.Session{Flow: state.FlowNeedHelp, Step: state.StepCategory})
	return []Reply{{Text: textPickCategoryNeed, Keyboard: categoryKeyboard()}}, nil
}

// CanHelp opens the volunteer flow and asks for a category.
func (e *Engine) CanHelp(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	e.sessions.Set(ev.SenderID, state.Session{Flow: state.FlowCanHelp, Step: state.StepCategory})
	return []Reply{{Text: textPickCategoryCan, Keyboard: categoryKeyboard()}}, nil
}

// FreeText handles text that matched no command and no menu label. It
// advances whatever flow step the sender is on, or nudges them back to
// the buttons.
func (e *Engine) FreeText(ctx context.Context, ev Event) ([]Reply, error) {
	defer e.lockUser(ev.SenderID)()

	s := e.sessions.Get(ev.SenderID)
	switch s.Step {
	case state.StepCategory:
		return e.selectCategory(ctx, ev, s)
	case state.StepDetails:
		return e.submitDetails(ctx, ev, s)
	default:
		return []Reply{{Text: textNavigationHint}}, nil
	}
}

// selectCategory resolves the tapped label. Unrecognized input leaves
// the session as is and stays silent, so a stray message cannot derail
// the flow.
func (e *Engine) selectCategory(ctx context.Context, ev Event, s state.Session) ([]Reply, error) {
	category, ok := categoryByLabel[ev.Text]
	if !ok {
		logger.Debug(ctx, "engine", "flow.category.unknown",
			slog.Int64("user_id", ev.SenderID),
			slog.String("flow", string(s.Flow)),
		)
		return nil, nil
	}

	s.Step = state.StepDetails
	s.Category = string(category)
	e.sessions.Set(ev.SenderID, s)

	prompt := textAskDetailsNeed
	if s.Flow == state.FlowCanHelp {
		prompt = textAskDetailsCan
	}
	return []Reply{{Text: prompt, Keyboard: backToMenuKeyboard()}}, nil
}

// submitDetails persists the request or offer, reports how many
// counterparts exist in the same category, and closes the flow. On a
// failed write the session stays on the details step so the sender can
// simply resend the text.
func (e *Engine) submitDetails(ctx context.Context, ev Event, s state.Session) ([]Reply, error) {
	category := categoryOf(s)
	details := ev.Text

	var text string
	switch s.Flow {
	case state.FlowNeedHelp:
		if _, err := e.store.CreateHelpRequest(ctx, ev.SenderID, category, details, details); err != nil {
			return []Reply{{Text: textPersistFailed}}, err
		}
		text = fmt.Sprintf(textRequestSaved, details)
		if volunteers, err := e.store.FindOffersByCategory(ctx, category); err == nil && len(volunteers) > 0 {
			text += fmt.Sprintf(textVolunteersFound, len(volunteers))
		} else {
			text += textNoVolunteersYet
		}
	case state.FlowCanHelp:
		if _, err := e.store.CreateHelpOffer(ctx, ev.SenderID, category, details, details); err != nil {
			return []Reply{{Text: textPersistFailed}}, err
		}
		text = fmt.Sprintf(textOfferSaved, details)
		if requests, err := e.store.FindRequestsByCategory(ctx, category); err == nil && len(requests) > 0 {
			text += fmt.Sprintf(textRequestsFound, len(requests))
		} else {
			text += textThanksForHelping
		}
	default:
		e.sessions.Clear(ev.SenderID)
		return []Reply{{Text: textNavigationHint}}, nil
	}

	e.sessions.Clear(ev.SenderID)
	return []Reply{{Text: text}}, nil
}
