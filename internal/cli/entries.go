package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/Efrem-Yohanis/playwright-playground/internal/common"
)

// requireLogin is the UI guard in front of snippet commands; the store
// would reject the call anyway, but with a programmer-facing error.
func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		fmt.Fprintln(a.out, "Please login first")
		return false
	}
	return true
}

// List prints the current user's snippets, most recently updated first.
func (a *App) List(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	if err := a.codes.Reload(ctx); err != nil {
		return err
	}

	entries := a.codes.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No snippets yet. Use 'new' to create one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(a.out, "%s  %-30s  %s\n", e.ID, e.Title, e.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// Add creates a new snippet from a title and a multiline body.
func (a *App) Add(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	if title == "" {
		fmt.Fprintln(a.out, "Title must not be empty")
		return nil
	}

	body, err := getMultiline(a.reader, "Code", a.out)
	if err != nil {
		return err
	}

	e, err := a.codes.Save(ctx, title, body)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %s\n", e.ID)
	return nil
}

// Show prints a single snippet by id.
func (a *App) Show(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Snippet ID", a.out)
	if err != nil {
		return err
	}

	e, err := a.codes.GetByID(id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Snippet not found")
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "Title: %s\nCreated: %s\nUpdated: %s\n\n%s\n",
		e.Title,
		e.CreatedAt.Format("2006-01-02 15:04"),
		e.UpdatedAt.Format("2006-01-02 15:04"),
		e.Code)
	return nil
}

// Edit rewrites a snippet's title and body. Empty input keeps the current
// value.
func (a *App) Edit(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Snippet ID", a.out)
	if err != nil {
		return err
	}

	cur, err := a.codes.GetByID(id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Snippet not found")
			return nil
		}
		return err
	}

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", cur.Title), a.out)
	if err != nil {
		return err
	}
	if title == "" {
		title = cur.Title
	}

	body, err := getMultiline(a.reader, "Code (empty keeps current)", a.out)
	if err != nil {
		return err
	}
	if body == "" {
		body = cur.Code
	}

	if _, err := a.codes.Update(ctx, id, title, body); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			fmt.Fprintln(a.out, "Snippet not found")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Updated")
	return nil
}

// Delete removes a snippet by id.
func (a *App) Delete(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	id, err := getSimpleText(a.reader, "Snippet ID", a.out)
	if err != nil {
		return err
	}

	ok, err := a.codes.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Snippet not found")
		return nil
	}

	fmt.Fprintln(a.out, "Deleted")
	return nil
}
