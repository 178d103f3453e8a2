package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies the cookies set on rec onto a fresh request.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/movie/7", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestDraftRoundTrip(t *testing.T) {
	store := NewStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.SaveDraft(rec, httptest.NewRequest(http.MethodPost, "/", nil), "7",
		Draft{Rating: 3.5, Message: "almost"}))

	next := httptest.NewRecorder()
	draft, ok, err := store.TakeDraft(next, carry(rec), "7")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Draft{Rating: 3.5, Message: "almost"}, draft)

	_, ok, err = store.TakeDraft(httptest.NewRecorder(), carry(next), "7")
	require.NoError(t, err)
	assert.False(t, ok, "draft is consumed")
}

func TestDraftsAreScopedByMovie(t *testing.T) {
	store := NewStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.SaveDraft(rec, httptest.NewRequest(http.MethodPost, "/", nil), "7", Draft{Message: "a"}))

	_, ok, err := store.TakeDraft(httptest.NewRecorder(), carry(rec), "8")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestClearDraft(t *testing.T) {
	store := NewStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.SaveDraft(rec, httptest.NewRequest(http.MethodPost, "/", nil), "7", Draft{Message: "a"}))

	cleared := httptest.NewRecorder()
	require.NoError(t, store.ClearDraft(cleared, carry(rec), "7"))

	_, ok, err := store.TakeDraft(httptest.NewRecorder(), carry(cleared), "7")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFlash(t *testing.T) {
	store := NewStore("test-secret", false)

	rec := httptest.NewRecorder()
	require.NoError(t, store.AddFlash(rec, httptest.NewRequest(http.MethodPost, "/", nil), "Review submitted"))

	next := httptest.NewRecorder()
	msg, err := store.Flash(next, carry(rec))
	require.NoError(t, err)
	assert.Equal(t, "Review submitted", msg)

	msg, err = store.Flash(httptest.NewRecorder(), carry(next))
	require.NoError(t, err)
	assert.Empty(t, msg)
}

func TestTamperedCookieIsReported(t *testing.T) {
	store := NewStore("test-secret", false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "garbage"})

	_, _, err := store.TakeDraft(httptest.NewRecorder(), req, "7")
	assert.Error(t, err)

	// Writes still succeed on top of a fresh session.
	assert.NoError(t, store.SaveDraft(httptest.NewRecorder(), req, "7", Draft{}))
}
