package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/todo-api/internal/user/domain"
)

type ID string

type Todo struct {
	ID        ID            `json:"id"`
	Text      string        `json:"text"`
	Completed bool          `json:"completed"`
	OwnerID   userdomain.ID `json:"ownerId"`
	CreatedAt time.Time     `json:"createdAt"`
}
