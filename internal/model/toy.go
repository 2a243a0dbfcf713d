package model

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Toy is the record served by the /toys endpoint.
type Toy struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
	Likes int    `json:"likes"`
}

// NewToy is the body of a create request. The server assigns the id.
type NewToy struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image" validate:"required"`
	Likes int    `json:"likes" validate:"min=0"`
}

// ToyPatch is a partial update. Nil fields are left untouched.
type ToyPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Image *string `json:"image,omitempty" validate:"omitempty,min=1"`
	Likes *int    `json:"likes,omitempty" validate:"omitempty,min=0"`
}

// Apply returns t with the non-nil fields of p copied over.
func (p ToyPatch) Apply(t Toy) Toy {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Image != nil {
		t.Image = *p.Image
	}
	if p.Likes != nil {
		t.Likes = *p.Likes
	}
	return t
}

// LikesPatch builds the body the board sends for a like.
func LikesPatch(likes int) ToyPatch {
	return ToyPatch{Likes: &likes}
}

var validate = validator.New()

// Draft trims name and image and checks both are present.
// The returned NewToy always starts with zero likes.
func Draft(name, image string) (NewToy, error) {
	nt := NewToy{
		Name:  strings.TrimSpace(name),
		Image: strings.TrimSpace(image),
	}
	if err := nt.Validate(); err != nil {
		return NewToy{}, err
	}
	return nt, nil
}

// Validate reports the missing fields of nt, if any.
func (nt NewToy) Validate() error {
	return describe(validate.Struct(nt))
}

func (p ToyPatch) Validate() error {
	return describe(validate.Struct(p))
}

func describe(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.ActualTag() {
		case "required":
			msgs = append(msgs, fmt.Sprintf("field %s is required", strings.ToLower(e.Field())))
		case "min":
			msgs = append(msgs, fmt.Sprintf("field %s must be at least %s", strings.ToLower(e.Field()), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("field %s is invalid", strings.ToLower(e.Field())))
		}
	}
	return &ValidationError{Fields: msgs}
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Fields, ", ")
}
