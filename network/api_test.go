package network

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automoto/splashed/shared/messages"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/room/join", r.URL.Path)

		var req messages.JoinRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, messages.JoinRequest{Username: "bob"}, req)

		_ = json.NewEncoder(w).Encode(messages.JoinResponse{ClientID: "c1", Token: "tok"})
	}))
	defer srv.Close()

	store := &MemoryStore{}
	api := NewAPI(srv.URL+"/", store)
	resp, err := api.Join(context.Background(), messages.JoinRequest{Username: "bob"})
	require.NoError(t, err)
	assert.Equal(t, messages.EntityID("c1"), resp.ClientID)

	tok, _ := store.LoadToken()
	assert.Equal(t, "tok", tok)
}

func TestJoinReportsServerText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"with text", "room is full\n", "room is full"},
		{"empty", "", "unknown error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			store := &MemoryStore{}
			_, err := NewAPI(srv.URL, store).Join(context.Background(), messages.JoinRequest{Username: "bob"})

			var se *StatusError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, http.StatusBadRequest, se.Code)
			assert.Equal(t, tt.want, se.Message)

			tok, _ := store.LoadToken()
			assert.Empty(t, tok)
		})
	}
}

func TestFetchSnapshot(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/room/snapshot", r.URL.Path)
		assert.Equal(t, "a b", r.URL.Query().Get("token"))
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	store := &MemoryStore{}
	require.NoError(t, store.SaveToken("a b"))
	api := NewAPI(srv.URL, store)

	body = "null"
	snap, err := api.FetchSnapshot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, snap)

	body = `{"timestamp": 7, "entities": [{"id": "p1", "type": "player"}]}`
	snap, err = api.FetchSnapshot(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, uint64(7), snap.Timestamp)
	require.Len(t, snap.Entities, 1)
	assert.Equal(t, messages.EntityID("p1"), snap.Entities[0].ID)
}

func TestFetchSnapshotWithoutToken(t *testing.T) {
	api := NewAPI("http://127.0.0.1:1", &MemoryStore{})
	_, err := api.FetchSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrNoToken)
}
