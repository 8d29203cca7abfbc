package dto

import (
	"errors"
	"fmt"
	"strings"
)

type Register struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	InvitationCode string `json:"invitationCode,omitempty"`
}

func (r Register) IsValid() error {
	var nameErr, emailErr, passwordErr error

	if strings.TrimSpace(r.Name) == "" {
		nameErr = fmt.Errorf("name is required")
	}

	if strings.TrimSpace(r.Email) == "" || !strings.Contains(r.Email, "@") {
		emailErr = fmt.Errorf("a valid email is required")
	}

	if len(r.Password) < 8 {
		passwordErr = fmt.Errorf("password must be at least 8 characters")
	}

	return errors.Join(nameErr, emailErr, passwordErr)
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (l Login) IsValid() error {
	var emailErr, passwordErr error

	if strings.TrimSpace(l.Email) == "" {
		emailErr = fmt.Errorf("email is required")
	}

	if strings.TrimSpace(l.Password) == "" {
		passwordErr = fmt.Errorf("password is required")
	}

	return errors.Join(emailErr, passwordErr)
}

type Token struct {
	Token string `json:"token"`
}
