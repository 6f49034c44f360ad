package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"internship_admin/internal/apiclient"
	"internship_admin/internal/models"
	"internship_admin/internal/store"
)

var (
	errMissingID = errors.New("response has no id")
	errBadReply  = errors.New("response is not a JSON object")
)

// resource binds one entity to its upstream collection and local listing.
type resource interface {
	collection() string
	// insert builds the new row from the submitted form and the creation
	// reply, then puts it at the head of the listing.
	insert(form Form, reply json.RawMessage, now time.Time) (any, int64, error)
	// apply mutates the row in place to the submitted values.
	apply(id int64, form Form) (any, error)
	remove(id int64) (any, bool)
	// fetch lists the collection; the returned commit replaces the listing.
	fetch(ctx context.Context, up Upstream) (commit func(), err error)
}

type entityResource[T models.Entity] struct {
	path string
	// envelope is the reply key that may wrap the created row.
	envelope string
	rows *store.Store[T]
	// prepare fills defaults of a freshly created row.
	prepare func(row *T, now time.Time)
	// resolve fills display fields from the other listings.
	resolve func(row *T)
}

func (r *entityResource[T]) collection() string { return r.path }

func (r *entityResource[T]) insert(form Form, reply json.RawMessage, now time.Time) (any, int64, error) {
	fields := formFields(form)
	if err := overlayReply(fields, reply, r.envelope); err != nil {
		return nil, 0, err
	}
	var row T
	if err := decodeFields(fields, &row); err != nil {
		return nil, 0, err
	}
	if row.GetID() == 0 {
		return nil, 0, errMissingID
	}
	if r.prepare != nil {
		r.prepare(&row, now)
	}
	if r.resolve != nil {
		r.resolve(&row)
	}
	r.rows.Prepend(row)
	return row, row.GetID(), nil
}

func (r *entityResource[T]) apply(id int64, form Form) (any, error) {
	current, ok := r.rows.Get(id)
	if !ok {
		return nil, store.ErrRowNotFound
	}
	next, err := mergeForm(current, form)
	if err != nil {
		return nil, err
	}
	if r.resolve != nil {
		r.resolve(&next)
	}
	row, err := r.rows.Update(id, func(row *T) { *row = next })
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *entityResource[T]) remove(id int64) (any, bool) {
	row, err := r.rows.Remove(id)
	if err != nil {
		return nil, false
	}
	return row, true
}

func (r *entityResource[T]) fetch(ctx context.Context, up Upstream) (func(), error) {
	var rows []T
	if err := up.List(ctx, r.path, &rows); err != nil {
		return nil, err
	}
	return func() {
		if r.resolve != nil {
			for i := range rows {
				r.resolve(&rows[i])
			}
		}
		r.rows.Replace(rows)
	}, nil
}

func newResources(l *store.Listings) map[models.EntityKind]resource {
	companyName := func(id models.ID) (models.Text, bool) {
		if c, ok := l.Companies.Get(int64(id)); ok {
			return models.Text(c.Name), true
		}
		return "", false
	}

	return map[models.EntityKind]resource{
		models.KindStudent: &entityResource[models.Student]{
			envelope: string(models.KindStudent),
			path:     apiclient.PathStudents,
			rows:     l.Students,
		},
		models.KindCompany: &entityResource[models.Company]{
			envelope: string(models.KindCompany),
			path:     apiclient.PathCompanies,
			rows:     l.Companies,
		},
		models.KindInternship: &entityResource[models.Internship]{
			envelope: string(models.KindInternship),
			path:     apiclient.PathInternships,
			rows:     l.Internships,
			resolve: func(in *models.Internship) {
				if name, ok := companyName(in.CompanyID); ok {
					in.CompanyName = name
				}
			},
		},
		models.KindApplication: &entityResource[models.Application]{
			envelope: string(models.KindApplication),
			path:     apiclient.PathApplications,
			rows:     l.Applications,
			prepare: func(a *models.Application, now time.Time) {
				if a.Status == "" {
					a.Status = string(models.StatusApplied)
				}
				if a.AppliedAt.IsZero() {
					a.AppliedAt = models.NewTimestamp(now)
				}
			},
			resolve: func(a *models.Application) {
				if s, ok := l.Students.Get(int64(a.StudentID)); ok {
					a.StudentName = models.Text(s.Name)
					a.StudentEmail = s.Email
				}
				if in, ok := l.Internships.Get(int64(a.InternshipID)); ok {
					a.InternshipTitle = models.Text(in.Title)
					a.CompanyName = in.CompanyName
					if name, ok := companyName(in.CompanyID); ok {
						a.CompanyName = name
					}
				}
			},
		},
	}
}

func formFields(form Form) map[string]any {
	fields := make(map[string]any, len(form))
	for k, v := range form {
		fields[k] = v
	}
	return fields
}

// Статусы конверта ответа, а не строки.
var replyStatuses = map[string]bool{"ok": true, "error": true}

// overlayReply copies the fields echoed by the creation reply over the form
// values. The reply is `{"status":"ok","id":N}`, optionally carrying the
// stored row under "data" or under envelope (the singular entity name).
// Other nested objects are related rows and are not merged. The top-level
// id is applied last.
func overlayReply(fields map[string]any, reply json.RawMessage, envelope string) error {
	top, err := replyObject(reply)
	if err != nil {
		return err
	}
	for _, key := range []string{"data", envelope} {
		raw, ok := top[key]
		if !ok || key == "" {
			continue
		}
		if row, err := replyObject(raw); err == nil {
			mergeReplyFields(fields, row)
		}
	}
	mergeReplyFields(fields, top)
	if id, ok := top["id"]; ok {
		fields["id"] = id
	}
	return nil
}

func replyObject(raw json.RawMessage) (map[string]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errBadReply
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, fmt.Errorf("%w: %v", errBadReply, err)
	}
	return obj, nil
}

// mergeReplyFields copies scalar fields of obj. "message" and an envelope
// status ("ok", "error") belong to the reply itself.
func mergeReplyFields(fields map[string]any, obj map[string]json.RawMessage) {
	for k, v := range obj {
		v = bytes.TrimSpace(v)
		if k == "message" || len(v) == 0 || v[0] == '{' || v[0] == '[' {
			continue
		}
		if k == "status" {
			var status string
			if json.Unmarshal(v, &status) == nil && replyStatuses[status] {
				continue
			}
		}
		fields[k] = v
	}
}

func decodeFields(fields map[string]any, out any) error {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}

// mergeForm returns row with the submitted form values written over it. The id never changes.
func mergeForm[T models.Entity](row T, form Form) (T, error) {
	var next T
	encoded, err := json.Marshal(row)
	if err != nil {
		return next, err
	}
	fields := make(map[string]any)
	if err := json.Unmarshal(encoded, &fields); err != nil {
		return next, err
	}
	for k, v := range form {
		if k == "id" {
			continue
		}
		fields[k] = v
	}
	if err := decodeFields(fields, &next); err != nil {
		return next, err
	}
	return next, nil
}
