package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdalam/furnidex/pkg/session"
)

func TestSetGet(t *testing.T) {
	var sess *session.Session
	h := session.Middleware(session.DefaultOptions())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess = session.FromCtx(r)
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	sess.Set("viewer", true)
	assert.True(t, sess.GetBool("viewer"))

	sess.Set("username", "boss")
	name, ok := sess.GetString("username")
	assert.True(t, ok)
	assert.Equal(t, "boss", name)

	sess.Delete("username")
	_, ok = sess.GetString("username")
	assert.False(t, ok)
}

func TestFlashesAreConsumedOnce(t *testing.T) {
	var sess *session.Session
	h := session.Middleware(session.DefaultOptions())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess = session.FromCtx(r)
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	sess.PushFlash("danger", "كلمة المرور غير صحيحة")
	sess.PushFlash("success", "done")

	flashes := sess.PopFlashes()
	assert.Len(t, flashes, 2)
	assert.Equal(t, "danger", flashes[0].Category)
	assert.Equal(t, "كلمة المرور غير صحيحة", flashes[0].Message)
	assert.Equal(t, "success", flashes[1].Category)

	assert.Empty(t, sess.PopFlashes())
}

func TestInvalidateClearsData(t *testing.T) {
	var sess *session.Session
	h := session.Middleware(session.DefaultOptions())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess = session.FromCtx(r)
		}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	sess.Set("username", "boss")
	sess.Invalidate()
	_, ok := sess.GetString("username")
	assert.False(t, ok)
}

func TestSaveWritesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	h := session.Middleware(session.DefaultOptions())(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromCtx(r)
			sess.Set("viewer", true)
			assert.NoError(t, sess.Save(w))
		}))
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == "furnidex_session" && c.Value != "" {
			found = true
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "expected session cookie to be set")
}
