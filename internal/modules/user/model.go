// README: User account model and the inputs accepted by the user service.
package user

import "time"

type User struct {
	ID           int64     `json:"id"`
	Fullname     string    `json:"fullname"`
	Address      string    `json:"address"`
	PhoneNumber  string    `json:"phone_number"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Field order is the order errors are reported in.
type RegisterInput struct {
	Fullname    string `json:"fullname" validate:"notblank"`
	Address     string `json:"address" validate:"notblank"`
	PhoneNumber string `json:"phone_number" validate:"notblank,phone"`
	Email       string `json:"email" validate:"notblank,email"`
	Password    string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// ProfilePatch edits contact details; email and password are not editable here.
type ProfilePatch struct {
	Fullname    *string `json:"fullname" validate:"omitempty,notblank"`
	Address     *string `json:"address" validate:"omitempty,notblank"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,notblank,phone"`
}
