package board

import (
	"context"
	"fmt"

	"github.com/idilsaglam/toyboard/internal/model"
)

// Action is a user intent on the board.
type Action interface {
	action()
}

type (
	// ToggleForm shows or hides the create form.
	ToggleForm struct{}
	// Refresh reloads every card.
	Refresh struct{}
	// Submit creates a toy from the form fields.
	Submit struct {
		Name  string
		Image string
	}
	// LikeCard likes the toy behind a card.
	LikeCard struct {
		ID model.ID
	}
)

func (ToggleForm) action() {}
func (Refresh) action()    {}
func (Submit) action()     {}
func (LikeCard) action()   {}

// Dispatch runs a in line and returns the operation's error.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	switch a := a.(type) {
	case ToggleForm:
		c.ToggleForm()
		return nil
	case Refresh:
		return c.LoadAll(ctx)
	case Submit:
		return c.Create(ctx, a.Name, a.Image)
	case LikeCard:
		return c.Like(ctx, a.ID)
	default:
		return fmt.Errorf("unknown action %T", a)
	}
}
