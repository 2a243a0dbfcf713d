package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/idilsaglam/toyboard/internal/model"
)

// ErrInvalidToy is returned by Create when the name or image is blank.
var ErrInvalidToy = errors.New("toy needs a name and an image")

// ToyService is the remote side of the board.
type ToyService interface {
	List(ctx context.Context) ([]model.Toy, error)
	Create(ctx context.Context, nt model.NewToy) (model.Toy, error)
	Like(ctx context.Context, id model.ID, likes int) (model.Toy, error)
}

// Controller wires user intents to the ToyService and patches the Board
// with the responses. The board is only touched after a successful
// response, so a failure leaves it as it was.
//
// Each network operation comes as a Prepare/Apply pair for front ends
// that run the request asynchronously, and as a one-shot method that
// does both in line.
type Controller struct {
	svc   ToyService
	board *Board
	alert Alerter
	log   *slog.Logger
}

func NewController(svc ToyService, b *Board, alert Alerter, log *slog.Logger) *Controller {
	if b == nil {
		b = New()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Controller{svc: svc, board: b, alert: alert, log: log}
}

func (c *Controller) Board() *Board { return c.board }

func (c *Controller) Service() ToyService { return c.svc }

// ToggleForm shows or hides the create form.
func (c *Controller) ToggleForm() {
	c.board.toggleForm()
}

// LoadAll fetches every toy and rebuilds the cards in server order.
func (c *Controller) LoadAll(ctx context.Context) error {
	toys, err := c.svc.List(ctx)
	return c.ApplyList(toys, err)
}

// ApplyList finishes a LoadAll.
func (c *Controller) ApplyList(toys []model.Toy, err error) error {
	if err != nil {
		return c.fail("list", err)
	}
	c.board.replace(toys)
	c.log.Debug("toys loaded", slog.Int("count", len(toys)))
	return nil
}

// Create validates name and image and, if both are present, posts a new
// toy with zero likes.
func (c *Controller) Create(ctx context.Context, name, image string) error {
	nt, err := c.PrepareCreate(name, image)
	if err != nil {
		return err
	}
	toy, err := c.svc.Create(ctx, nt)
	return c.ApplyCreate(toy, err)
}

// PrepareCreate runs the presence checks. On failure it raises the
// missing-fields alert and no request must be sent.
func (c *Controller) PrepareCreate(name, image string) (model.NewToy, error) {
	nt, err := model.Draft(name, image)
	if err != nil {
		c.log.Debug("toy rejected", slog.String("reason", err.Error()))
		c.alert.Alert(MsgMissingFields)
		return model.NewToy{}, fmt.Errorf("%w: %v", ErrInvalidToy, err)
	}
	return nt, nil
}

// ApplyCreate finishes a Create: one new card, form hidden. On failure
// the form stays open so the user can resubmit.
func (c *Controller) ApplyCreate(toy model.Toy, err error) error {
	if err != nil {
		return c.fail("create", err)
	}
	c.board.append(toy)
	c.board.hideForm()
	c.log.Info("toy created", slog.String("id", toy.ID.String()), slog.String("name", toy.Name))
	return nil
}

// Like proposes the card's current likes plus one and shows whatever the
// server answers.
func (c *Controller) Like(ctx context.Context, id model.ID) error {
	proposal := c.PrepareLike(id)
	toy, err := c.svc.Like(ctx, id, proposal)
	return c.ApplyLike(id, toy, err)
}

// PrepareLike returns the likes count to propose for id. A card the board
// does not know counts as zero.
func (c *Controller) PrepareLike(id model.ID) int {
	card, _ := c.board.Card(id)
	return card.Likes + 1
}

// ApplyLike finishes a Like. Responses are applied in arrival order, so
// when likes race the last one to land wins.
func (c *Controller) ApplyLike(id model.ID, toy model.Toy, err error) error {
	if err != nil {
		return c.fail("like", err)
	}
	if !c.board.setLikes(id, toy.Likes) {
		c.log.Debug("like for a card no longer shown", slog.String("id", id.String()))
		return nil
	}
	c.log.Debug("toy liked", slog.String("id", id.String()), slog.Int("likes", toy.Likes))
	return nil
}

func (c *Controller) fail(op string, err error) error {
	c.log.Error("toy request failed", slog.String("op", op), slog.Any("err", err))
	c.alert.Alert(MsgFailure)
	return fmt.Errorf("%s: %w", op, err)
}
