package cli

import (
	"context"
	"os"

	"github.com/SidddhantJain/QuietQuill/internal/common"
	"github.com/SidddhantJain/QuietQuill/internal/keyring"
	"github.com/SidddhantJain/QuietQuill/internal/session"
	"github.com/fatih/color"
)

// Input indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Register prompts for a username and password and creates a new account.
// The password byte slices are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Choose a username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Choose a password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		printlnFn(color.RedString("Passwords do not match."))
		return common.ErrValidation
	}

	if _, err := a.accounts.Register(ctx, username, string(password)); err != nil {
		printlnFn(color.RedString("Registration failed: %v", err))
		return err
	}

	printlnFn(color.GreenString("Account created. You can log in now."))
	return nil
}

// Login authenticates the user and derives the session key from the stored
// credential material, so every entry written in any previous session stays
// decryptable.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	acct, err := a.accounts.Authenticate(ctx, username, string(password))
	if err != nil {
		printlnFn(color.RedString("Login failed: %v", err))
		return err
	}

	a.session = &session.Session{
		Username: acct.Username,
		Key:      keyring.DeriveKey(acct.PasswordHash, acct.Salt),
	}
	a.log.Info(ctx, "user logged in", "user", acct.Username)
	printlnFn(color.GreenString("Welcome back, %s!", acct.Username))
	return nil
}

// Logout wipes the session key.
func (a *App) Logout(ctx context.Context) error {
	if a.isLoggedIn() {
		a.log.Info(ctx, "user logged out", "user", a.session.Username)
	}
	a.session.Close()
	a.session = nil
	printlnFn("Logged out.")
	return nil
}

// ChangePassword verifies the current password, re-encrypts every entry
// under the key derived from the new credentials, and only then persists
// the new hash and salt. Requires an active session.
func (a *App) ChangePassword(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Log in first.")
		return common.ErrUnauthorized
	}

	oldPassword, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(oldPassword)

	newPassword, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(newPassword)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(newPassword) != string(confirm) {
		printlnFn(color.RedString("New passwords do not match."))
		return common.ErrValidation
	}

	username := a.session.Username
	err = a.accounts.ChangePassword(ctx, username, string(oldPassword), string(newPassword),
		func(oldKey, newKey keyring.Key) error {
			return a.repo.Rekey(ctx, username, oldKey, newKey)
		})
	if err != nil {
		printlnFn(color.RedString("Password change failed: %v", err))
		return err
	}

	// Refresh the session key so the current session keeps working.
	creds, err := a.accounts.Credentials(ctx, username)
	if err != nil {
		return err
	}
	a.session.Close()
	a.session = &session.Session{Username: username, Key: keyring.DeriveKey(creds.PasswordHash, creds.Salt)}

	printlnFn(color.GreenString("Password updated; all entries re-encrypted."))
	return nil
}

func (a *App) requireLogin() error {
	if !a.isLoggedIn() {
		printlnFn("Log in first.")
		return common.ErrUnauthorized
	}
	return nil
}
