package auth

import (
	"time"

	"github.com/tahweela/tahweela-backend/pkg/enums"
)

// User is the marketplace account exposed to the rest of the app.
type User struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	DisplayName string         `json:"display_name,omitempty"`
	Phone       string         `json:"phone,omitempty"`
	CompanyName string         `json:"company_name,omitempty"`
	UserType    enums.UserType `json:"user_type"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// State is what subscribers observe.
type State struct {
	User            *User `json:"user"`
	IsLoading       bool  `json:"is_loading"`
	IsAuthenticated bool  `json:"is_authenticated"`
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as is.
type ProfileUpdate struct {
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=120"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,e164"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,max=200"`
}

// Result reports the outcome of a profile update without failing the caller.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	User    *User  `json:"user,omitempty"`
}

func (u User) apply(upd ProfileUpdate, at time.Time) User {
	if upd.DisplayName != nil {
		u.DisplayName = *upd.DisplayName
	}
	if upd.Phone != nil {
		u.Phone = *upd.Phone
	}
	if upd.CompanyName != nil {
		u.CompanyName = *upd.CompanyName
	}
	u.UpdatedAt = at
	return u
}
