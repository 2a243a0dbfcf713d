// Package board holds the state of a toy board and the controller that
// keeps it in step with the /toys endpoint.
package board

import (
	"fmt"

	"github.com/idilsaglam/toyboard/internal/model"
)

// Card is the rendered view of one toy. Likes are kept as typed state and
// only ever overwritten with a server response.
type Card struct {
	model.Toy
}

// LikesLabel renders the counter the way the board shows it.
func (c Card) LikesLabel() string {
	return fmt.Sprintf("%d Likes", c.Likes)
}

// Board is the client-side view: ordered cards plus the form flag.
// It is not safe for concurrent use; front ends mutate it from one loop.
type Board struct {
	cards    []Card
	formOpen bool
}

func New() *Board { return &Board{} }

// Cards returns a copy of the cards in display order.
func (b *Board) Cards() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

func (b *Board) Len() int { return len(b.cards) }

// Card looks a card up by toy id.
func (b *Board) Card(id model.ID) (Card, bool) {
	if i := b.index(id); i >= 0 {
		return b.cards[i], true
	}
	return Card{}, false
}

func (b *Board) FormOpen() bool { return b.formOpen }

func (b *Board) toggleForm() { b.formOpen = !b.formOpen }

func (b *Board) hideForm() { b.formOpen = false }

// replace drops every card and rebuilds from toys, keeping their order.
func (b *Board) replace(toys []model.Toy) {
	b.cards = make([]Card, 0, len(toys))
	for _, t := range toys {
		b.cards = append(b.cards, Card{Toy: t})
	}
}

func (b *Board) append(t model.Toy) {
	b.cards = append(b.cards, Card{Toy: t})
}

// setLikes overwrites the counter of the card for id. Reports false when
// the card is gone, e.g. after a reload removed it.
func (b *Board) setLikes(id model.ID, likes int) bool {
	i := b.index(id)
	if i < 0 {
		return false
	}
	b.cards[i].Likes = likes
	return true
}

func (b *Board) index(id model.ID) int {
	for i := range b.cards {
		if b.cards[i].ID == id {
			return i
		}
	}
	return -1
}
