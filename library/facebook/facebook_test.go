package facebook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "id,name,email", r.URL.Query().Get("fields"))
		switch r.URL.Query().Get("access_token") {
		case "good-token":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"10223","name":"Jo Tran","email":"jo@example.com"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
		}
	}))
	defer srv.Close()

	cli := NewClient(WithGraphURL(srv.URL))

	t.Run("valid token", func(t *testing.T) {
		profile, err := cli.FetchProfile(context.Background(), "good-token")
		require.NoError(t, err)
		require.Equal(t, "10223", profile.ID)
		require.Equal(t, "Jo Tran", profile.Name)
		require.Equal(t, "jo@example.com", profile.Email)
	})

	t.Run("invalid token", func(t *testing.T) {
		_, err := cli.FetchProfile(context.Background(), "bad-token")
		require.ErrorContains(t, err, "400")
	})
}

func TestFetchProfileMissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(WithGraphURL(srv.URL)).FetchProfile(context.Background(), "tok")
	require.ErrorContains(t, err, "missing id")
}
