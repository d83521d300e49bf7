// README: Contact-form message model.
package contact

import "time"

type Message struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type Input struct {
	Name    string `json:"name" validate:"notblank,max=200"`
	Email   string `json:"email" validate:"notblank,email"`
	Message string `json:"message" validate:"notblank,max=5000"`
}
