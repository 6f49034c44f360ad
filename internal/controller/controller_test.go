package controller

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_admin/internal/apiclient"
	"internship_admin/internal/logger"
	"internship_admin/internal/models"
	"internship_admin/internal/notify"
	"internship_admin/internal/store"
	"internship_admin/internal/testutil/fakeapi"
)

func init() {
	logger.Init("test")
}

type recordingConfirmer struct {
	mu      sync.Mutex
	answer  bool
	prompts []string
}

func (r *recordingConfirmer) Confirm(_ context.Context, prompt string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prompts = append(r.prompts, prompt)
	return r.answer
}

type fixture struct {
	api       *fakeapi.Server
	ctrl      *Controller
	listings  *store.Listings
	center    *notify.Center
	confirmer *recordingConfirmer
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := fakeapi.New()
	t.Cleanup(api.Close)

	listings := store.NewListings()
	center := notify.NewCenter(time.Hour)
	confirmer := &recordingConfirmer{answer: true}
	ctrl := New(apiclient.NewClient(api.URL, nil), listings, center, confirmer)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	ctrl.SetClock(func() time.Time { return now })

	return &fixture{api: api, ctrl: ctrl, listings: listings, center: center, confirmer: confirmer, now: now}
}

func (f *fixture) seedAll(t *testing.T) {
	t.Helper()
	sid := f.api.Seed("students", map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com"})
	cid := f.api.Seed("companies", map[string]any{"id": 1, "name": "Acme"})
	iid := f.api.Seed("internships", map[string]any{"id": 1, "title": "Go intern", "company_id": cid})
	for _, id := range []int64{3, 5} {
		f.api.Seed("applications", map[string]any{"id": id, "student_id": sid, "internship_id": iid, "status": "Pending"})
	}
	require.NoError(t, f.ctrl.Load(context.Background()))
}

func lastNotification(t *testing.T, c *notify.Center) notify.Notification {
	t.Helper()
	active := c.Active()
	require.NotEmpty(t, active)
	return active[len(active)-1]
}

func TestLoad_ResolvesAndOrders(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)

	apps := f.listings.Applications.List()
	require.Len(t, apps, 2)
	assert.Equal(t, int64(5), apps[0].GetID())
	assert.Equal(t, models.Text("Alice"), apps[0].StudentName)
	assert.Equal(t, models.Text("Acme"), apps[0].CompanyName)

	in, ok := f.listings.Internships.Get(1)
	require.True(t, ok)
	assert.Equal(t, models.Text("Acme"), in.CompanyName)
}

func TestLoad_NumericAppliedAt(t *testing.T) {
	f := newFixture(t)
	f.api.Seed("applications", map[string]any{"id": 4, "student_id": 1, "internship_id": 1, "status": "Applied", "applied_at": 1760436000})

	require.NoError(t, f.ctrl.Load(context.Background()))
	app, ok := f.listings.Applications.Get(4)
	require.True(t, ok)
	assert.Equal(t, 2025, app.AppliedAt.Time.Year())
}

func TestLoad_FailureKeepsListings(t *testing.T) {
	f := newFixture(t)
	f.listings.Students.Replace([]models.Student{{ID: 9, Name: "Kept"}})
	f.api.FailNext(http.MethodGet, apiclient.PathCompanies, http.StatusInternalServerError, `{"message":"db down"}`)

	err := f.ctrl.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, "db down", apiclient.MessageOr(err, ""))
	_, ok := f.listings.Students.Get(9)
	assert.True(t, ok)
}

// POST /api/students answers {id:7}: the row is prepended, the form cleared.
func TestCreateStudent_PrependsRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, apiclient.PathStudents, r.URL.Path)
		_, _ = w.Write([]byte(`{"id":7}`))
	}))
	defer srv.Close()

	listings := store.NewListings()
	listings.Students.Replace([]models.Student{{ID: 3, Name: "Old"}})
	center := notify.NewCenter(time.Hour)
	ctrl := New(apiclient.NewClient(srv.URL, nil), listings, center, nil)

	res, err := ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindStudent,
		Form:   Form{"name": "Bob", "email": "bob@example.com", "phone": "", "branch": "CS"},
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeApplied, res.Outcome)
	assert.Equal(t, int64(7), res.ID)
	assert.True(t, res.FormCleared)
	assert.True(t, res.ModalDismissed)

	rows := listings.Students.List()
	require.Len(t, rows, 2)
	assert.Equal(t, models.Student{ID: 7, Name: "Bob", Email: "bob@example.com", Branch: "CS"}, rows[0])

	n := lastNotification(t, center)
	assert.Equal(t, notify.LevelSuccess, n.Level)
	assert.Equal(t, "Student added", n.Message)
}

func TestCreate_RejectedLeavesListing(t *testing.T) {
	f := newFixture(t)

	res, err := f.ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindStudent,
		Form:   Form{"name": "", "email": "x@y.z"},
	})
	require.Error(t, err)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.False(t, res.FormCleared)
	assert.Equal(t, "Name is required", res.Message)
	assert.Zero(t, f.listings.Students.Len())
	assert.Equal(t, notify.LevelError, lastNotification(t, f.center).Level)
}

func TestCreate_ReplyWithoutIDUsesDefaultMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	listings := store.NewListings()
	center := notify.NewCenter(time.Hour)
	ctrl := New(apiclient.NewClient(srv.URL, nil), listings, center, nil)

	res, err := ctrl.Dispatch(context.Background(), CreateAction{Entity: models.KindCompany, Form: Form{"name": "Acme"}})
	require.Error(t, err)
	assert.Equal(t, "Failed to add company", res.Message)
	assert.Zero(t, listings.Companies.Len())
}

func replyingController(t *testing.T, reply string) (*Controller, *store.Listings) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)
	listings := store.NewListings()
	return New(apiclient.NewClient(srv.URL, nil), listings, notify.NewCenter(time.Hour), nil), listings
}

func TestCreate_NestedRelatedObjectKeepsServerID(t *testing.T) {
	ctrl, listings := replyingController(t, `{"status":"ok","id":9,"company":{"id":2,"name":"Acme"}}`)

	// порядок обхода map не должен влиять на id
	for i := 0; i < 50; i++ {
		res, err := ctrl.Dispatch(context.Background(), CreateAction{
			Entity: models.KindInternship,
			Form:   Form{"title": "Go Intern", "company_id": "2"},
		})
		require.NoError(t, err)
		require.Equal(t, int64(9), res.ID)

		row, ok := listings.Internships.Get(9)
		require.True(t, ok)
		assert.Equal(t, "Go Intern", row.Title)
		assert.Equal(t, models.ID(2), row.CompanyID)
		_, _ = listings.Internships.Remove(9)
	}
}

func TestCreate_ReplyEnvelopes(t *testing.T) {
	cases := map[string]string{
		"data":        `{"status":"ok","data":{"id":12,"name":"Acme Ltd","phone":"555"}}`,
		"entity key":  `{"status":"ok","company":{"id":12,"name":"Acme Ltd","phone":"555"}}`,
		"top id wins": `{"status":"ok","id":12,"data":{"id":99,"name":"Acme Ltd","phone":"555"}}`,
	}
	for name, reply := range cases {
		t.Run(name, func(t *testing.T) {
			ctrl, listings := replyingController(t, reply)
			res, err := ctrl.Dispatch(context.Background(), CreateAction{
				Entity: models.KindCompany,
				Form:   Form{"name": "Acme", "email": "hi@acme.io"},
			})
			require.NoError(t, err)
			assert.Equal(t, int64(12), res.ID)

			rows := listings.Companies.List()
			require.Len(t, rows, 1)
			assert.Equal(t, models.Company{ID: 12, Name: "Acme Ltd", Email: "hi@acme.io", Phone: "555"}, rows[0])
		})
	}
}

func TestCreateApplication_EchoedStatusIsKept(t *testing.T) {
	ctrl, listings := replyingController(t, `{"id":7,"status":"Pending"}`)
	_, err := ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindApplication,
		Form:   Form{"student_id": "1", "internship_id": "2"},
	})
	require.NoError(t, err)
	row, ok := listings.Applications.Get(7)
	require.True(t, ok)
	assert.Equal(t, "Pending", row.Status)

	// "ok" - статус ответа, строка получает Applied
	ctrl, listings = replyingController(t, `{"status":"ok","id":8}`)
	_, err = ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindApplication,
		Form:   Form{"student_id": "1", "internship_id": "2"},
	})
	require.NoError(t, err)
	row, ok = listings.Applications.Get(8)
	require.True(t, ok)
	assert.Equal(t, string(models.StatusApplied), row.Status)
}

func TestCreateInternship_ResolvesCompanyName(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)

	res, err := f.ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindInternship,
		Form:   Form{"title": "Data intern", "company_id": "1", "start_date": "2024-07-01", "end_date": "2024-09-01", "stipend": "500", "seats": "2"},
	})
	require.NoError(t, err)

	in, ok := f.listings.Internships.Get(res.ID)
	require.True(t, ok)
	assert.Equal(t, models.Text("Acme"), in.CompanyName)
	assert.Equal(t, models.ID(1), in.CompanyID)
	assert.Equal(t, "2024-07-01 - 2024-09-01", in.Dates())
	assert.Equal(t, "Internship added", res.Message)
}

func TestCreateApplication_DefaultsAndNames(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)

	res, err := f.ctrl.Dispatch(context.Background(), CreateAction{
		Entity: models.KindApplication,
		Form:   Form{"student_id": "1", "internship_id": "1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Application submitted", res.Message)

	apps := f.listings.Applications.List()
	require.Len(t, apps, 3)
	created := apps[0]
	assert.Equal(t, res.ID, created.GetID())
	assert.Equal(t, "Applied", created.Status)
	assert.Equal(t, f.now, created.AppliedAt.Time)
	assert.Equal(t, models.Text("Alice"), created.StudentName)
	assert.Equal(t, models.Text("alice@example.com"), created.StudentEmail)
	assert.Equal(t, "Go intern", created.Position())
	assert.Equal(t, models.Text("Acme"), created.CompanyName)
}

func TestUpdate_MutatesInPlace(t *testing.T) {
	f := newFixture(t)
	f.api.Seed("students", map[string]any{"id": 1, "name": "Alice"})
	f.api.Seed("students", map[string]any{"id": 2, "name": "Bob"})
	require.NoError(t, f.ctrl.Load(context.Background()))
	versionBefore := f.listings.Students.Version()

	res, err := f.ctrl.Dispatch(context.Background(), UpdateAction{
		Entity: models.KindStudent,
		ID:     1,
		Form:   Form{"name": "Alice B", "email": "alice@b.io", "phone": "123", "branch": "EE"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Student updated", res.Message)

	rows := f.listings.Students.List()
	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].GetID(), "order unchanged")
	assert.Equal(t, models.Student{ID: 1, Name: "Alice B", Email: "alice@b.io", Phone: "123", Branch: "EE"}, rows[1])
	assert.Equal(t, versionBefore+1, f.listings.Students.Version())
}

func TestUpdate_FailureLeavesRow(t *testing.T) {
	f := newFixture(t)
	f.api.Seed("companies", map[string]any{"id": 4, "name": "Acme"})
	require.NoError(t, f.ctrl.Load(context.Background()))
	f.api.FailNext(http.MethodPut, fakeapi.Path("companies", 4), http.StatusBadGateway, "")

	res, err := f.ctrl.Dispatch(context.Background(), UpdateAction{Entity: models.KindCompany, ID: 4, Form: Form{"name": "Other"}})
	require.Error(t, err)
	assert.Equal(t, "Update failed", res.Message)

	row, ok := f.listings.Companies.Get(4)
	require.True(t, ok)
	assert.Equal(t, "Acme", row.Name)
	assert.Equal(t, "Update failed", lastNotification(t, f.center).Message)
}

// DELETE /api/applications/5 answers 404 {"message":"not found"}: row 5 stays.
func TestDeleteApplication_NotFoundKeepsRow(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)
	f.api.FailNext(http.MethodDelete, fakeapi.Path("applications", 5), http.StatusNotFound, `{"message":"not found"}`)

	res, err := f.ctrl.Dispatch(context.Background(), DeleteAction{Entity: models.KindApplication, ID: 5})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apiclient.StatusCode(err))
	assert.Equal(t, OutcomeFailed, res.Outcome)

	_, ok := f.listings.Applications.Get(5)
	assert.True(t, ok)
	n := lastNotification(t, f.center)
	assert.Equal(t, notify.LevelError, n.Level)
	assert.Equal(t, "not found", n.Message)
}

func TestDelete_RemovesRowAndClosesDetail(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)
	_, err := f.ctrl.OpenDetail(5)
	require.NoError(t, err)

	res, err := f.ctrl.Dispatch(context.Background(), DeleteAction{Entity: models.KindApplication, ID: 5})
	require.NoError(t, err)
	assert.Equal(t, "Application deleted", res.Message)
	assert.Equal(t, []string{"Delete this application?"}, f.confirmer.prompts)

	_, ok := f.listings.Applications.Get(5)
	assert.False(t, ok)
	assert.False(t, f.listings.Detail.State().Open)
}

func TestDelete_DeclinedIssuesNoRequest(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)
	f.confirmer.answer = false
	before := len(f.center.Active())

	res, err := f.ctrl.Dispatch(context.Background(), DeleteAction{Entity: models.KindStudent, ID: 1})
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Equal(t, OutcomeCancelled, res.Outcome)
	assert.Nil(t, res.Notification)
	assert.Equal(t, 0, f.api.CountRequests(http.MethodDelete, fakeapi.Path("students", 1)))
	assert.Len(t, f.center.Active(), before)

	_, ok := f.listings.Students.Get(1)
	assert.True(t, ok)
}

func TestContextConfirmer(t *testing.T) {
	var c ContextConfirmer
	assert.False(t, c.Confirm(context.Background(), "Delete this student?"))
	assert.True(t, c.Confirm(WithConfirmation(context.Background(), true), "Delete this student?"))
}

// PUT /api/applications/3 {status:"Accepted"} succeeds: row and open detail show Accepted.
func TestStatusUpdate_RowAndDetail(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)
	_, err := f.ctrl.OpenDetail(3)
	require.NoError(t, err)

	res, err := f.ctrl.Dispatch(context.Background(), StatusUpdateAction{ID: 3, Status: "Accepted"})
	require.NoError(t, err)
	assert.Equal(t, MsgStatusUpdated, res.Message)

	row, ok := f.listings.Applications.Get(3)
	require.True(t, ok)
	assert.Equal(t, "Accepted", row.Status)
	assert.Equal(t, models.CategorySuccess, row.Category())

	detail := f.listings.Detail.State()
	assert.True(t, detail.Open)
	assert.Equal(t, "Accepted", detail.Application.Status)
	assert.Equal(t, models.CategorySuccess, detail.Category)
	assert.Equal(t, "bg-green-100 text-green-800", detail.Class)

	reqs := f.api.Requests()
	last := reqs[len(reqs)-1]
	assert.Equal(t, http.MethodPut, last.Method)
	assert.Equal(t, map[string]any{"status": "Accepted"}, last.Body)

	other, _ := f.listings.Applications.Get(5)
	assert.Equal(t, "Pending", other.Status)
}

func TestStatusUpdate_Failure(t *testing.T) {
	f := newFixture(t)
	f.seedAll(t)
	f.api.FailNext(http.MethodPut, fakeapi.Path("applications", 3), http.StatusInternalServerError, `{}`)

	res, err := f.ctrl.Dispatch(context.Background(), StatusUpdateAction{ID: 3, Status: "Rejected"})
	require.Error(t, err)
	assert.Equal(t, MsgStatusUpdateFailed, res.Message)
	row, _ := f.listings.Applications.Get(3)
	assert.Equal(t, "Pending", row.Status)
}

func TestDispatch_UnknownEntity(t *testing.T) {
	f := newFixture(t)
	_, err := f.ctrl.Dispatch(context.Background(), CreateAction{Entity: "mentor", Form: Form{}})
	assert.ErrorIs(t, err, ErrUnknownEntity)
	assert.Empty(t, f.api.Requests())
}

func TestDispatch_DuplicateSubmissionsNotSuppressed(t *testing.T) {
	f := newFixture(t)
	action := CreateAction{Entity: models.KindCompany, Form: Form{"name": "Twice"}}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.ctrl.Dispatch(context.Background(), action)
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, f.api.CountRequests(http.MethodPost, apiclient.PathCompanies))
	assert.Equal(t, 2, f.listings.Companies.Len())
}
