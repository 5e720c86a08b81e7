package datastore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	domainErrors "github.com/praxishq/praxis-backend/internal/domain/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL, "anon-key", zap.NewNop())
}

func TestClient_GetRows(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]map[string]string{{"id": "row-1"}})
	})

	var rows []map[string]string
	err := c.GetRows(context.Background(), "profiles", Filters{"id": "eq.abc"}, &rows)
	assert.NoError(t, err)
	assert.Equal(t, "/rest/v1/profiles", gotPath)
	assert.Contains(t, gotQuery, "id=eq.abc")
	assert.Contains(t, gotQuery, "select=%2A")
	assert.Len(t, rows, 1)
	assert.Equal(t, "row-1", rows[0]["id"])
}

func TestClient_InsertRows_IgnoresDuplicates(t *testing.T) {
	var gotPrefer string
	var gotBody []map[string]string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPrefer = r.Header.Get("Prefer")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	})

	err := c.InsertRows(context.Background(), "subscribers", []map[string]string{{"user_id": "u1"}})
	assert.NoError(t, err)
	// Concurrent lazy creation must resolve at the store, not as a
	// unique-constraint error on one of the writers.
	assert.Equal(t, "resolution=ignore-duplicates", gotPrefer)
	assert.Len(t, gotBody, 1)
}

func TestClient_RejectionMapsToErrTokenRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		})

		var rows []map[string]string
		err := c.GetRows(context.Background(), "profiles", nil, &rows)
		assert.ErrorIs(t, err, domainErrors.ErrTokenRejected, "status %d", status)
	}
}

func TestClient_OtherErrorsAreNotRejection(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	var rows []map[string]string
	err := c.GetRows(context.Background(), "profiles", nil, &rows)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domainErrors.ErrTokenRejected)
}

func TestClient_VerifyToken(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		expectErr  bool
		isRejected bool
	}{
		{name: "accepted", status: http.StatusOK},
		{name: "rejected by policy", status: http.StatusUnauthorized, expectErr: true, isRejected: true},
		{name: "forbidden by policy", status: http.StatusForbidden, expectErr: true, isRejected: true},
		{name: "store failure", status: http.StatusBadGateway, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotAuth string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotAuth = r.Header.Get("Authorization")
				if tt.status == http.StatusOK {
					w.Write([]byte("[]"))
					return
				}
				w.WriteHeader(tt.status)
			})

			err := c.VerifyToken(context.Background(), "candidate-token")
			if tt.expectErr {
				assert.Error(t, err)
				if tt.isRejected {
					assert.ErrorIs(t, err, domainErrors.ErrTokenRejected)
				} else {
					assert.NotErrorIs(t, err, domainErrors.ErrTokenRejected)
				}
			} else {
				assert.NoError(t, err)
			}
			// The probe must carry the candidate token itself.
			assert.Equal(t, "Bearer candidate-token", gotAuth)
		})
	}
}

func TestClient_DeleteRows(t *testing.T) {
	var gotMethod, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.DeleteRows(context.Background(), "websites", Filters{"id": "eq.site-1", "userid": "eq.u1"})
	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Contains(t, gotQuery, "id=eq.site-1")
	assert.Contains(t, gotQuery, "userid=eq.u1")
}
