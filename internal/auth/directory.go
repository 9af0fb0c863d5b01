package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/tahweela/tahweela-backend/pkg/enums"
	pkgerrors "github.com/tahweela/tahweela-backend/pkg/errors"
)

var validate = validator.New()

// Directory is the in-process account store standing in for the identity provider.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
	now     func() time.Time
	newID   func() string
}

func NewDirectory() *Directory {
	return &Directory{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// FindOrCreate returns the account registered under email, creating it on first login.
func (d *Directory) FindOrCreate(ctx context.Context, in LoginInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := validate.Var(email, "required,email"); err != nil {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, "a valid email is required")
	}
	userType := in.UserType
	if userType == "" {
		userType = enums.UserTypeBuyer
	}
	if !userType.IsValid() {
		return User{}, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid user type %q", userType))
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.byEmail[email]; ok {
		return d.byID[id], nil
	}
	now := d.now().UTC()
	user := User{
		ID:          d.newID(),
		Email:       email,
		DisplayName: strings.TrimSpace(in.DisplayName),
		CompanyName: strings.TrimSpace(in.CompanyName),
		UserType:    userType,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	d.byID[user.ID] = user
	d.byEmail[email] = user.ID
	return user, nil
}

func (d *Directory) Get(ctx context.Context, id string) (User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	user, ok := d.byID[id]
	if !ok {
		return User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

// Update validates and applies a profile change.
func (d *Directory) Update(ctx context.Context, id string, upd ProfileUpdate) (User, error) {
	if err := validate.Struct(upd); err != nil {
		return User{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid profile update")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	user, ok := d.byID[id]
	if !ok {
		return User{}, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	user = user.apply(upd, d.now().UTC())
	d.byID[id] = user
	return user, nil
}
