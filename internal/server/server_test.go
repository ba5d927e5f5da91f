package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDBPool mocks the database.Pool interface
type MockDBPool struct {
	mock.Mock
}

func (m *MockDBPool) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDBPool) Close() {
	m.Called()
}

func serve(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleHealthz(t *testing.T) {
	w := serve(t, HandleHealthz(), PathHealthz)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"status":"ok"}`+"\n", w.Body.String())
	assert.Equal(t, ContentTypeJSON, w.Header().Get(HeaderContentType))
}

func TestHandleReadyz(t *testing.T) {
	t.Run("database connected", func(t *testing.T) {
		db := &MockDBPool{}
		db.On("Ping", mock.Anything).Return(nil)

		w := serve(t, HandleReadyz(db), PathReadyz)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"ok"`)
		db.AssertExpectations(t)
	})

	t.Run("database down", func(t *testing.T) {
		db := &MockDBPool{}
		db.On("Ping", mock.Anything).Return(assert.AnError)

		w := serve(t, HandleReadyz(db), PathReadyz)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), MsgDatabaseUnavailable)
		db.AssertExpectations(t)
	})

	t.Run("memory storage", func(t *testing.T) {
		w := serve(t, HandleReadyz(nil), PathReadyz)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRouter(t *testing.T) {
	r := NewRouter("1.2.3", nil)

	t.Run("version", func(t *testing.T) {
		w := serve(t, r, PathVersion)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"version":"1.2.3"`)
	})

	t.Run("metrics", func(t *testing.T) {
		serve(t, r, PathHealthz)
		w := serve(t, r, PathMetrics)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "wwwhero_http_requests_total")
	})

	t.Run("security headers", func(t *testing.T) {
		w := serve(t, r, PathHealthz)
		assert.Equal(t, HeaderValueNoSniff, w.Header().Get(HeaderContentTypeOptions))
		assert.Equal(t, HeaderValueDeny, w.Header().Get(HeaderFrameOptions))
		assert.Equal(t, HeaderValueReferrerNoReferrer, w.Header().Get(HeaderReferrerPolicy))
	})

	t.Run("unknown route", func(t *testing.T) {
		w := serve(t, r, "/api/v1/user")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
