// file: internal/upstream/client_test.go
// version: 1.2.0
// guid: c5d6e7f8-a9b0-1c2d-3e4f-a5b6c7d8e9f0

package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoangdinhthien/swimadmin/internal/cache"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := StaticCredentials{APIToken: "tok-123", TenantID: "tenant-1"}
	return New(srv.URL, creds, opts...)
}

func TestRequestHeaders(t *testing.T) {
	var got http.Header
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.ListStudents(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", got.Get("x-tenant-id"))
	assert.Equal(t, "Bearer tok-123", got.Get("Authorization"))
	assert.Empty(t, got.Get("service"))

	// Per-request tenant override wins over the credential tenant.
	ctx := WithTenant(context.Background(), "tenant-2")
	_, err = client.ListStudents(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "tenant-2", got.Get("x-tenant-id"))
}

func TestServiceHeaderOnPermissionCalls(t *testing.T) {
	var service string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		service = r.Header.Get("service")
		w.Write([]byte(`{"data":[]}`))
	}))

	_, err := client.ListPermissions(context.Background(), "course")
	require.NoError(t, err)
	assert.Equal(t, "permission", service)
}

func TestUpstreamErrorSurfaced(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("backend exploded"))
	}))

	_, err := client.ListStudents(context.Background(), 1, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestNotFoundSentinel(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := client.GetStudent(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListStudentsDocumentsShape(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "25", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"data":[[{"documents":[{"_id":"s1","username":"ann"}],"count":31}]]}`))
	}))

	page, err := client.ListStudents(context.Background(), 2, 25)
	require.NoError(t, err)
	assert.Equal(t, 31, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "s1", page.Items[0].ID)
	assert.Equal(t, "ann", page.Items[0].Username)
}

func TestGetStudentPointExtraction(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/students/s1", r.URL.Path)
		w.Write([]byte(`{"data":[[[{"_id":"s1","username":"ann","email":"ann@example.com"}]]]}`))
	}))

	student, err := client.GetStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.NotNil(t, student)
	assert.Equal(t, "ann@example.com", student.Email)
}

func TestGetStudentEmptyEnvelope(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := client.GetStudent(context.Background(), "s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUnrecognizedEnvelopeDegradesToEmptyPage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"surprise":true}`))
	}))

	page, err := client.ListStudents(context.Background(), 1, 10)
	require.NoError(t, err, "shape mismatch must degrade, not fail")
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.Total)
}

func TestCourseCatalogCachedAndInvalidated(t *testing.T) {
	var lists int32
	mux := http.NewServeMux()
	mux.HandleFunc("/courses", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		atomic.AddInt32(&lists, 1)
		w.Write([]byte(`{"data":[{"_id":"c1","title":"Beginner swim"}]}`))
	})
	mux.HandleFunc("/courses/c1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Write([]byte(`{}`))
	})

	store := cache.New[any](time.Minute)
	client := newTestClient(t, mux, WithCache(store))

	ctx := context.Background()
	first, err := client.ListCourses(ctx)
	require.NoError(t, err)
	second, err := client.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lists), "second list must be a cache hit")

	_, err = client.UpdateCourse(ctx, "c1", CourseInput{Title: "Beginner swim II"})
	require.NoError(t, err)

	_, err = client.ListCourses(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&lists), "update must invalidate the catalog")
}

func TestCurrentUserDeduplicated(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-release
		w.Write([]byte(`{"data":[[[{"_id":"u1","username":"manager"}]]]}`))
	}))

	var wg sync.WaitGroup
	ids := make([]string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := client.CurrentUser(context.Background())
			if assert.NoError(t, err) && assert.NotNil(t, u) {
				ids[i] = u.ID
			}
		}(i)
	}

	// Let both callers attach before the upstream responds.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, []string{"u1", "u1"}, ids)
}

func TestClassMembersNestedList(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[[{"data":[{"_id":"u1"},{"_id":"u2"}]}]]}`))
	}))

	members, err := client.ClassMembers(context.Background(), "cls1")
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "u2", members[1].ID)
}

func TestClassMembersMismatchYieldsEmptyRoster(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":"nope"}`))
	}))

	members, err := client.ClassMembers(context.Background(), "cls1")
	require.NoError(t, err)
	assert.Empty(t, members)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"data":{"token":"fresh-token","user":{"_id":"u1","username":"manager"}}}`))
	}))

	res, err := client.Login(context.Background(), "manager", "secret")
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", res.Token)
	require.NotNil(t, res.User)
	assert.Equal(t, "manager", res.User.Username)
}

func TestResetClearsCachedCatalogs(t *testing.T) {
	var lists int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&lists, 1)
		w.Write([]byte(`{"data":[{"_id":"sl1","title":"06:00 - 07:00"}]}`))
	}))

	ctx := context.Background()
	_, err := client.ListSlots(ctx)
	require.NoError(t, err)
	_, err = client.ListSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&lists))

	client.Reset()
	_, err = client.ListSlots(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&lists))
}
