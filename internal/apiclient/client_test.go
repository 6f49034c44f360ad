package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"internship_admin/internal/logger"
	"internship_admin/internal/models"
	"internship_admin/internal/testutil/fakeapi"
)

func init() {
	logger.Init("test")
}

func TestCreate_ReturnsEchoedBody(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	api.SetNextID("students", 42)

	client := NewClient(api.URL+"/", nil)
	raw, err := client.Create(context.Background(), PathStudents, map[string]string{"name": "Asha", "email": "asha@example.com"})
	require.NoError(t, err)

	var reply struct {
		Status string    `json:"status"`
		ID     models.ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(raw, &reply))
	assert.Equal(t, "ok", reply.Status)
	assert.Equal(t, models.ID(42), reply.ID)

	row, ok := api.Row("students", 42)
	require.True(t, ok)
	assert.Equal(t, "Asha", row["name"])
}

func TestCreate_UpstreamMessage(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()

	client := NewClient(api.URL, nil)
	_, err := client.Create(context.Background(), PathStudents, map[string]string{"name": "Bo", "email": "bad"})
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Invalid email", apiErr.Message)
	assert.Equal(t, "Invalid email", MessageOr(err, "Failed to add student"))
	assert.Equal(t, http.StatusBadRequest, StatusCode(err))
}

func TestUpdate_NonJSONErrorUsesFallback(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	id := api.Seed("companies", map[string]any{"name": "Acme"})
	api.FailNext(http.MethodPut, fakeapi.Path("companies", id), http.StatusInternalServerError, "<html>boom</html>")

	client := NewClient(api.URL, nil)
	_, err := client.Update(context.Background(), PathCompanies, id, map[string]string{"name": "Acme 2"})
	require.Error(t, err)
	assert.Equal(t, "Update failed", MessageOr(err, "Update failed"))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(err))

	row, _ := api.Row("companies", id)
	assert.Equal(t, "Acme", row["name"])
}

func TestDelete(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	id := api.Seed("internships", map[string]any{"title": "Backend intern"})

	client := NewClient(api.URL, nil)
	require.NoError(t, client.Delete(context.Background(), PathInternships, id))
	_, ok := api.Row("internships", id)
	assert.False(t, ok)

	err := client.Delete(context.Background(), PathInternships, id)
	require.Error(t, err)
	assert.Equal(t, "not found", MessageOr(err, "Delete failed"))
}

func TestList_JoinedAndOrdered(t *testing.T) {
	api := fakeapi.New()
	defer api.Close()
	sid := api.Seed("students", map[string]any{"name": "Asha", "email": "asha@example.com"})
	cid := api.Seed("companies", map[string]any{"name": "Acme"})
	iid := api.Seed("internships", map[string]any{"title": "Go intern", "company_id": cid})
	api.Seed("applications", map[string]any{"student_id": sid, "internship_id": iid, "status": "Pending"})
	api.Seed("applications", map[string]any{"student_id": sid, "internship_id": iid, "status": "Selected"})

	client := NewClient(api.URL, nil)
	var apps []models.Application
	require.NoError(t, client.List(context.Background(), PathApplications, &apps))
	require.Len(t, apps, 2)
	assert.Equal(t, models.ID(2), apps[0].ID)
	assert.Equal(t, "Selected", apps[0].Status)
	assert.Equal(t, models.Text("Asha"), apps[0].StudentName)
	assert.Equal(t, "Go intern", apps[0].Position())
	assert.Equal(t, models.Text("Acme"), apps[0].CompanyName)
}

func TestList_Envelope(t *testing.T) {
	cases := map[string]string{
		"bare":       `[{"id":1,"name":"A"}]`,
		"collection": `{"students":[{"id":1,"name":"A"}]}`,
		"data":       `{"data":[{"id":1,"name":"A"}]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			var out []models.Student
			require.NoError(t, NewClient(srv.URL, nil).List(context.Background(), PathStudents, &out))
			require.Len(t, out, 1)
			assert.Equal(t, "A", out[0].Name)
		})
	}
}

func TestList_NoList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	var out []models.Student
	err := NewClient(srv.URL, nil).List(context.Background(), PathStudents, &out)
	assert.Error(t, err)
}

func TestRequestIDForwarded(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Request-ID")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	ctx := logger.WithRequestID(context.Background(), "req-1")
	require.NoError(t, NewClient(srv.URL, nil).Delete(ctx, PathStudents, 1))
	assert.Equal(t, "req-1", got)
}

func TestTransportErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil).Create(context.Background(), PathStudents, map[string]string{"name": "x"})
	require.Error(t, err)
	assert.Equal(t, "Failed to add student", MessageOr(err, "Failed to add student"))
	assert.Equal(t, 0, StatusCode(err))
}
