package auth

import (
	"fmt"

	"hostwatch/internal/conf"

	"golang.org/x/crypto/bcrypt"
)

// Users checks credentials against the hashes stored in the config file.
// The file is read on every check so users added while the agent runs can
// log in without a restart.
type Users struct {
	file *conf.File
}

func NewUsers(file *conf.File) *Users {
	return &Users{file: file}
}

// NewUser creates a new user with hashed password and saves it to the config file
func (u *Users) NewUser(name string, password string) error {
	if name == "" || password == "" {
		return fmt.Errorf("user name and password must not be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = u.file.Update(func(cfg *conf.Config) {
		if cfg.Auth.Users == nil {
			cfg.Auth.Users = make(map[string]string)
		}
		cfg.Auth.Users[name] = string(hash)
	})
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// VerifyPassword verifies a user's password against the stored hash
func (u *Users) VerifyPassword(name string, password string) bool {
	hashedPassword, exists := u.file.Read().Auth.Users[name]
	if !exists {
		return false
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}
