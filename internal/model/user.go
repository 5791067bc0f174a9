package model

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"not null"`
	Username  string    `gorm:"uniqueIndex;not null"`
	Password  string    `gorm:"not null"`
	Avatar    string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// PublicUser is a user record with the credential stripped.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID.String(),
		Name:     u.Name,
		Username: u.Username,
		Avatar:   u.Avatar,
	}
}

func (u *User) Summary() *UserRef {
	return &UserRef{ID: u.ID.String(), Name: u.Name, Avatar: u.Avatar}
}

// Initials returns the uppercased first letter of every whitespace separated
// word in name.
func Initials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}
