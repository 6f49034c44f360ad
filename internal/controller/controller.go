// Package controller turns console actions into upstream requests and, after
// a successful response, mirrors the result into the local listings.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"internship_admin/internal/apiclient"
	"internship_admin/internal/logger"
	"internship_admin/internal/models"
	"internship_admin/internal/notify"
	"internship_admin/internal/store"
)

var (
	// ErrCancelled is returned when the user declines a delete confirmation.
	ErrCancelled      = errors.New("action cancelled")
	ErrUnknownEntity  = errors.New("unknown entity")
	ErrUnknownAction  = errors.New("unknown action")
	ErrNotApplication = errors.New("application not found")
)

// Upstream is the part of apiclient.Client the controller needs.
type Upstream interface {
	Create(ctx context.Context, collection string, body any) (json.RawMessage, error)
	Update(ctx context.Context, collection string, id int64, body any) (json.RawMessage, error)
	Delete(ctx context.Context, collection string, id int64) error
	List(ctx context.Context, collection string, out any) error
}

// Notifier shows a transient message to the user.
type Notifier interface {
	Notify(level notify.Level, message string) notify.Notification
}

type Outcome string

const (
	OutcomeApplied   Outcome = "applied"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeFailed    Outcome = "failed"
)

// Result reports what an action did to the console state.
type Result struct {
	Action  ActionKind        `json:"action"`
	Entity  models.EntityKind `json:"entity"`
	ID      int64             `json:"id,omitempty"`
	Outcome Outcome           `json:"outcome"`
	Message string            `json:"message,omitempty"`
	Row     any               `json:"row,omitempty"`
	// FormCleared and ModalDismissed tell the client to reset the form it
	// submitted and hide the dialog it came from.
	FormCleared    bool                 `json:"form_cleared,omitempty"`
	ModalDismissed bool                 `json:"modal_dismissed,omitempty"`
	Notification   *notify.Notification `json:"notification,omitempty"`
}

type Controller struct {
	up        Upstream
	listings  *store.Listings
	resources map[models.EntityKind]resource
	notifier  Notifier
	confirmer Confirmer
	now       func() time.Time
}

// New wires a controller. A nil notifier gets a private notify.Center, a nil
// confirmer reads the answer from the request context.
func New(up Upstream, listings *store.Listings, notifier Notifier, confirmer Confirmer) *Controller {
	if notifier == nil {
		notifier = notify.NewCenter(notify.DefaultTTL)
	}
	if confirmer == nil {
		confirmer = ContextConfirmer{}
	}
	return &Controller{
		up:        up,
		listings:  listings,
		resources: newResources(listings),
		notifier:  notifier,
		confirmer: confirmer,
		now:       time.Now,
	}
}

// SetClock заменяет источник времени для applied_at (для тестов).
func (c *Controller) SetClock(now func() time.Time) { c.now = now }

func (c *Controller) Listings() *store.Listings { return c.listings }

// Dispatch handles one action. It issues at most one upstream request and
// changes local state only after a 2xx answer. The returned error is
// ErrCancelled for a declined delete and wraps the upstream failure otherwise.
func (c *Controller) Dispatch(ctx context.Context, action Action) (Result, error) {
	ctx = logger.WithAction(ctx, string(action.Kind()))
	switch a := action.(type) {
	case CreateAction:
		return c.create(ctx, a)
	case UpdateAction:
		return c.update(ctx, a)
	case DeleteAction:
		return c.delete(ctx, a)
	case StatusUpdateAction:
		return c.updateStatus(ctx, a)
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownAction, action)
	}
}

func (c *Controller) resource(kind models.EntityKind) (resource, Messages, error) {
	res, ok := c.resources[kind]
	if !ok {
		return nil, Messages{}, fmt.Errorf("%w: %q", ErrUnknownEntity, kind)
	}
	msgs, _ := MessagesFor(kind)
	return res, msgs, nil
}

func (c *Controller) create(ctx context.Context, a CreateAction) (Result, error) {
	res := Result{Action: ActionCreate, Entity: a.Entity}
	r, msgs, err := c.resource(a.Entity)
	if err != nil {
		return res, err
	}

	reply, err := c.up.Create(ctx, r.collection(), a.Form)
	if err != nil {
		return c.fail(ctx, res, err, msgs.CreateFailed)
	}
	row, id, err := r.insert(a.Form, reply, c.now())
	if err != nil {
		return c.fail(ctx, res, fmt.Errorf("parse create reply: %w", err), msgs.CreateFailed)
	}

	res.ID = id
	res.Row = row
	res.FormCleared = true
	res.ModalDismissed = true
	return c.succeed(ctx, res, msgs.Created), nil
}

func (c *Controller) update(ctx context.Context, a UpdateAction) (Result, error) {
	res := Result{Action: ActionUpdate, Entity: a.Entity, ID: a.ID}
	r, msgs, err := c.resource(a.Entity)
	if err != nil {
		return res, err
	}

	if _, err := c.up.Update(ctx, r.collection(), a.ID, a.Form); err != nil {
		return c.fail(ctx, res, err, msgs.UpdateFailed)
	}
	row, err := r.apply(a.ID, a.Form)
	if err != nil {
		// The server accepted the change but the row is not in the local listing.
		logger.CtxWarn(ctx, "updated row not applied locally", "entity", a.Entity, "id", a.ID, "error", err)
	}

	res.Row = row
	res.ModalDismissed = true
	return c.succeed(ctx, res, msgs.Updated), nil
}

func (c *Controller) delete(ctx context.Context, a DeleteAction) (Result, error) {
	res := Result{Action: ActionDelete, Entity: a.Entity, ID: a.ID}
	r, msgs, err := c.resource(a.Entity)
	if err != nil {
		return res, err
	}

	if !c.confirmer.Confirm(ctx, msgs.ConfirmDelete) {
		res.Outcome = OutcomeCancelled
		logger.CtxDebug(ctx, "delete declined", "entity", a.Entity, "id", a.ID)
		return res, ErrCancelled
	}

	if err := c.up.Delete(ctx, r.collection(), a.ID); err != nil {
		return c.fail(ctx, res, err, msgs.DeleteFailed)
	}
	if row, ok := r.remove(a.ID); ok {
		res.Row = row
	}
	if a.Entity == models.KindApplication {
		c.listings.Detail.CloseIf(a.ID)
	}
	return c.succeed(ctx, res, msgs.Deleted), nil
}

func (c *Controller) updateStatus(ctx context.Context, a StatusUpdateAction) (Result, error) {
	res := Result{Action: ActionStatusUpdate, Entity: models.KindApplication, ID: a.ID}

	body := map[string]string{"status": a.Status}
	if _, err := c.up.Update(ctx, apiclient.PathApplications, a.ID, body); err != nil {
		return c.fail(ctx, res, err, MsgStatusUpdateFailed)
	}

	row, err := c.listings.Applications.Update(a.ID, func(app *models.Application) {
		app.Status = a.Status
	})
	if err != nil {
		logger.CtxWarn(ctx, "status row not in listing", "id", a.ID)
	} else {
		res.Row = row
	}
	c.listings.Detail.SetStatus(a.ID, a.Status)

	res.ModalDismissed = true
	return c.succeed(ctx, res, MsgStatusUpdated), nil
}

func (c *Controller) succeed(ctx context.Context, res Result, message string) Result {
	res.Outcome = OutcomeApplied
	res.Message = message
	n := c.notifier.Notify(notify.LevelSuccess, message)
	res.Notification = &n
	logger.CtxInfo(ctx, "action applied", "entity", res.Entity, "id", res.ID)
	return res
}

func (c *Controller) fail(ctx context.Context, res Result, err error, fallback string) (Result, error) {
	res.Outcome = OutcomeFailed
	res.Message = apiclient.MessageOr(err, fallback)
	n := c.notifier.Notify(notify.LevelError, res.Message)
	res.Notification = &n
	logger.CtxWarn(ctx, "action failed", "entity", res.Entity, "id", res.ID, "error", err)
	return res, fmt.Errorf("%s %s: %w", res.Action, res.Entity, err)
}

// OpenDetail opens the detail panel on an application of the listing.
func (c *Controller) OpenDetail(id int64) (store.DetailState, error) {
	app, ok := c.listings.Applications.Get(id)
	if !ok {
		return store.DetailState{}, ErrNotApplication
	}
	return c.listings.Detail.Open(app), nil
}

// loadOrder is the order listings are committed in, so that display names
// of internships and applications resolve against fresh companies and students.
var loadOrder = []models.EntityKind{
	models.KindStudent,
	models.KindCompany,
	models.KindInternship,
	models.KindApplication,
}

// Load fetches the four listings concurrently and replaces local contents.
// Nothing is replaced unless every fetch succeeds.
func (c *Controller) Load(ctx context.Context) error {
	commits := make([]func(), len(loadOrder))
	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range loadOrder {
		i, kind := i, kind // per-iteration copies for the goroutine (go 1.21 loop semantics)
		r := c.resources[kind]
		g.Go(func() error {
			commit, err := r.fetch(gctx, c.up)
			if err != nil {
				return fmt.Errorf("%s: %w", kind, err)
			}
			commits[i] = commit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("load listings: %w", err)
	}

	for _, commit := range commits {
		commit()
	}
	logger.CtxInfo(ctx, "listings loaded", "counts", c.listings.Counts())
	return nil
}
