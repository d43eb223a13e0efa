package domain

import (
	"time"

	"github.com/google/uuid"
)

type EPerson struct {
	DSO
	Email          string
	NetID          string
	FirstName      string
	LastName       string
	PasswordHash   string
	Salt           string
	CanLogIn       bool
	SelfRegistered bool
	LastActive     *time.Time
}

func (e EPerson) FullName() string {
	switch {
	case e.FirstName == "" && e.LastName == "":
		return e.Email
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// Names of the groups that always exist.
const (
	GroupAdministrator string = "Administrator"
	GroupAnonymous     string = "Anonymous"
)

type Group struct {
	ID        uuid.UUID
	Name      string
	Permanent bool
}
