package menu

import (
	"context"
	"errors"
	"strings"

	"github.com/aanand-mishra/mahasiswa/internal/client"
	"github.com/aanand-mishra/mahasiswa/internal/messages"
	"github.com/aanand-mishra/mahasiswa/internal/types"
	"github.com/aanand-mishra/mahasiswa/internal/validate"
)

// addStudent prompts until every field is valid, then creates the record.
func (a *App) addStudent(ctx context.Context) error {
	a.title(messages.AddOption)

	id, err := a.promptUntil(messages.InputNIM, messages.InvalidNIM, validate.IsValidID)
	if err != nil {
		return err
	}
	name, err := a.promptUntil(messages.InputName, messages.EmptyName, validate.IsNonEmpty)
	if err != nil {
		return err
	}

	majorIn, err := a.con.Prompt(a.msg.T(messages.InputMajor))
	if err != nil {
		return err
	}
	var major *string
	if validate.IsNonEmpty(majorIn) {
		major = types.StringPtr(strings.TrimSpace(majorIn))
	}

	gpaIn, err := a.promptUntil(messages.InputGPA, messages.InvalidGPA, func(s string) bool {
		ok, _ := validate.IsValidGPA(s)
		return ok
	})
	if err != nil {
		return err
	}
	_, gpa := validate.IsValidGPA(gpaIn)

	m := types.Mahasiswa{ID: id, Name: strings.TrimSpace(name), Major: major, GPA: gpa}

	a.con.Muted(a.msg.T(messages.Adding))
	created, err := a.store.Create(ctx, m)
	switch {
	case err == nil:
		a.con.Success(a.msg.T(messages.SuccessAdd))
		a.con.Println(a.msg.Record(created))
	case errors.Is(err, client.ErrConflict):
		a.con.Failure(a.msg.T(messages.AlreadyExists, id))
	default:
		a.apiError(messages.FailAdd, err)
	}

	return a.con.Wait(a.msg.T(messages.PressEnter))
}

// viewAll lists every record.
func (a *App) viewAll(ctx context.Context) error {
	a.title(messages.ViewAllOption)
	a.con.Muted(a.msg.T(messages.Searching))

	list, err := a.store.List(ctx, client.Filter{})
	switch {
	case err != nil:
		a.apiError(messages.FailFetch, err)
	case len(list) == 0:
		a.con.Println(a.msg.T(messages.EmptyList))
	default:
		a.renderList(messages.ListHeader, list)
	}
	return nil
}

// search filters by NIM ("n") or by name ("m").
func (a *App) search(ctx context.Context) error {
	a.title(messages.SearchOption)

	by, err := a.con.Prompt(a.msg.T(messages.SearchBy))
	if err != nil {
		return err
	}

	var f client.Filter
	switch strings.ToLower(strings.TrimSpace(by)) {
	case "n":
		if f.ID, err = a.con.Prompt(a.msg.T(messages.InputNIM)); err != nil {
			return err
		}
	case "m":
		if f.Name, err = a.con.Prompt(a.msg.T(messages.InputName)); err != nil {
			return err
		}
	default:
		a.con.Failure(a.msg.T(messages.InvalidOption))
		return nil
	}

	// A blank term would turn the search into a full listing.
	if !validate.IsNonEmpty(f.ID) && !validate.IsNonEmpty(f.Name) {
		a.invalidInput(messages.EmptySearch)
		return nil
	}

	a.con.Muted(a.msg.T(messages.Searching))
	list, err := a.store.List(ctx, f)
	switch {
	case err != nil:
		a.apiError(messages.FailSearch, err)
	case len(list) == 0:
		a.con.Failure(a.msg.T(messages.NotFound))
	default:
		a.renderList(messages.SearchHeader, list)
	}
	return nil
}

// edit fetches a record, collects changes, and saves them after confirmation.
func (a *App) edit(ctx context.Context) error {
	a.title(messages.EditOption)

	id, found, err := a.locate(ctx, messages.InputNIMEdit)
	if err != nil || !found.ok {
		return err
	}
	old := found.m

	a.con.Println()
	a.con.Println(a.msg.T(messages.OldData))
	a.con.Println(a.msg.Record(old))
	a.con.Println()
	a.con.Muted(a.msg.T(messages.EditHint))

	nameIn, err := a.con.Prompt(a.msg.T(messages.EditName, old.Name))
	if err != nil {
		return err
	}
	majorIn, err := a.con.Prompt(a.msg.T(messages.EditMajor, old.MajorOr("-")))
	if err != nil {
		return err
	}
	gpaIn, err := a.con.Prompt(a.msg.T(messages.EditGPA, a.msg.GPA(old.GPA)))
	if err != nil {
		return err
	}

	updated, ok := applyEdit(old, nameIn, majorIn, gpaIn)
	if !ok {
		a.invalidInput(messages.InvalidGPA)
		return nil
	}
	updated.ID = id

	a.con.Println()
	a.con.Println(a.msg.T(messages.NewData))
	a.con.Println(a.msg.Record(updated))

	confirmed, err := a.con.Confirm(a.msg.T(messages.ConfirmEdit, id))
	if err != nil {
		return err
	}
	if !confirmed {
		a.con.Muted(a.msg.T(messages.Cancelled))
		return nil
	}

	a.con.Muted(a.msg.T(messages.Updating))
	err = a.store.Update(ctx, id, updated)
	switch {
	case err == nil:
		a.con.Success(a.msg.T(messages.SuccessUpdate))
	case errors.Is(err, client.ErrNotFound):
		a.con.Failure(a.msg.T(messages.NotFoundGone))
	default:
		a.apiError(messages.FailUpdate, err)
	}
	return nil
}

// deleteStudent fetches a record, shows it, and removes it after confirmation.
func (a *App) deleteStudent(ctx context.Context) error {
	a.title(messages.DeleteOption)

	id, found, err := a.locate(ctx, messages.InputNIMDelete)
	if err != nil || !found.ok {
		return err
	}

	a.con.Println(a.msg.T(messages.Found, a.msg.Record(found.m)))

	confirmed, err := a.con.Confirm(a.msg.T(messages.ConfirmDelete, found.m.Name, id))
	if err != nil {
		return err
	}
	if !confirmed {
		a.con.Muted(a.msg.T(messages.Cancelled))
		return nil
	}

	a.con.Muted(a.msg.T(messages.Deleting))
	err = a.store.Delete(ctx, id)
	switch {
	case err == nil:
		a.con.Success(a.msg.T(messages.SuccessDelete))
	case errors.Is(err, client.ErrNotFound):
		a.con.Failure(a.msg.T(messages.NotFoundGone))
	default:
		a.apiError(messages.FailDelete, err)
	}
	return nil
}

// lookup is the outcome of locate.
type lookup struct {
	m  types.Mahasiswa
	ok bool
}

// locate reads one id (no retry) and fetches its record. Invalid ids,
// missing records and API failures are rendered here and reported as
// !ok; only input errors are returned.
func (a *App) locate(ctx context.Context, promptKey string) (string, lookup, error) {
	id, err := a.con.Prompt(a.msg.T(promptKey))
	if err != nil {
		return "", lookup{}, err
	}
	if !validate.IsValidID(id) {
		a.invalidInput(messages.InvalidNIM)
		return id, lookup{}, nil
	}

	a.con.Muted(a.msg.T(messages.Searching))
	m, err := a.store.Get(ctx, id)
	switch {
	case err == nil:
		return id, lookup{m: m, ok: true}, nil
	case errors.Is(err, client.ErrNotFound):
		a.con.Failure(a.msg.T(messages.NotFound))
	default:
		a.apiError(messages.FailFetch, err)
	}
	return id, lookup{}, nil
}

// promptUntil re-prompts until valid accepts the answer.
func (a *App) promptUntil(promptKey, reasonKey string, valid func(string) bool) (string, error) {
	for {
		in, err := a.con.Prompt(a.msg.T(promptKey))
		if err != nil {
			return "", err
		}
		if valid(in) {
			return in, nil
		}
		a.invalidInput(reasonKey)
	}
}

// applyEdit merges edit answers into old. The id is never touched.
//
//	name:  blank keeps the old value.
//	major: "" clears it, whitespace-only keeps it, anything else replaces it.
//	gpa:   blank keeps the old value, anything else must be a valid GPA;
//	       ok is false when it is not.
func applyEdit(old types.Mahasiswa, nameIn, majorIn, gpaIn string) (types.Mahasiswa, bool) {
	updated := old

	if validate.IsNonEmpty(nameIn) {
		updated.Name = strings.TrimSpace(nameIn)
	}

	switch {
	case majorIn == "":
		updated.Major = nil
	case validate.IsNonEmpty(majorIn):
		updated.Major = types.StringPtr(strings.TrimSpace(majorIn))
	}

	if validate.IsNonEmpty(gpaIn) {
		ok, v := validate.IsValidGPA(gpaIn)
		if !ok {
			return old, false
		}
		updated.GPA = v
	}

	return updated, true
}
