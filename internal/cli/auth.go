package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getMultiline are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getMultiline = GetMultiline

// Register prompts for a user ID and creates a new identity. A taken ID is
// reported to the user, not returned as an error.
func (a *App) Register(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user ID", a.out)
	if err != nil {
		return err
	}
	if id == "" {
		fmt.Fprintln(a.out, "User ID must not be empty")
		return nil
	}

	ok, err := a.ids.Register(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "User ID already exists")
		return nil
	}

	fmt.Fprintf(a.out, "Welcome, %s!\n", id)
	return nil
}

// Login prompts for a user ID and signs it in.
func (a *App) Login(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter user ID", a.out)
	if err != nil {
		return err
	}

	ok, err := a.ids.Login(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "User not found")
		return nil
	}

	fmt.Fprintf(a.out, "Signed in as %s\n", id)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.ids.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

// Whoami prints the signed-in identity and its registration time.
func (a *App) Whoami(ctx context.Context) error {
	cur := a.ids.Current()
	if cur == nil {
		fmt.Fprintln(a.out, "Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (registered %s)\n", cur.ID, cur.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}
