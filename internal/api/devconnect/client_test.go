package devconnect

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, 5*time.Second, zap.NewNop())
	require.NoError(t, err)

	return client, server
}

func TestLoginSetsSessionCookie(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/login", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "anna@example.com", creds["emailId"])
		assert.Equal(t, "Abcdef1!", creds["password"])

		http.SetCookie(w, &http.Cookie{Name: "token", Value: "session-token", Path: "/"})
		_ = json.NewEncoder(w).Encode(User{ID: "u1", FirstName: "Anna"})
	}))

	user, err := client.Login(context.Background(), "anna@example.com", "Abcdef1!")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "Anna", user.FirstName)

	cookies := client.SessionCookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "session-token", cookies[0].Value)
}

func TestCookieSentOnSubsequentRequests(t *testing.T) {
	var gotCookie string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
			_ = json.NewEncoder(w).Encode(User{ID: "u1"})
		case "/api/profile/view":
			if c, err := r.Cookie("token"); err == nil {
				gotCookie = c.Value
			}
			_ = json.NewEncoder(w).Encode(User{ID: "u1"})
		}
	}))

	_, err := client.Login(context.Background(), "a@b.co", "Abcdef1!")
	require.NoError(t, err)

	_, err = client.ViewProfile(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "abc", gotCookie, "jar must carry the session cookie ambiently")
}

func TestClearCookiesDropsCredentials(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "token", Value: "abc", Path: "/"})
		_ = json.NewEncoder(w).Encode(User{ID: "u1"})
	}))

	_, err := client.Login(context.Background(), "a@b.co", "Abcdef1!")
	require.NoError(t, err)
	require.NotEmpty(t, client.SessionCookies())

	client.ClearCookies()
	assert.Empty(t, client.SessionCookies())
}

func TestRestoreCookies(t *testing.T) {
	var gotCookie string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("token"); err == nil {
			gotCookie = c.Value
		}
		_ = json.NewEncoder(w).Encode(User{ID: "u1"})
	}))

	client.RestoreCookies([]*http.Cookie{{Name: "token", Value: "persisted"}})

	_, err := client.ViewProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "persisted", gotCookie)
}

func TestAPIErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		expectedMsg  string
		authRequired bool
	}{
		{
			name:         "unauthorized with json error",
			status:       http.StatusUnauthorized,
			body:         `{"error": "Please login"}`,
			expectedMsg:  "Please login",
			authRequired: true,
		},
		{
			name:         "forbidden",
			status:       http.StatusForbidden,
			body:         `{"message": "No access"}`,
			expectedMsg:  "No access",
			authRequired: true,
		},
		{
			name:         "bad request with plain text",
			status:       http.StatusBadRequest,
			body:         "Invalid credentials",
			expectedMsg:  "Invalid credentials",
			authRequired: false,
		},
		{
			name:         "server error",
			status:       http.StatusInternalServerError,
			body:         `{"error": "something broke"}`,
			expectedMsg:  "something broke",
			authRequired: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.ViewProfile(context.Background())
			require.Error(t, err)

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.expectedMsg, apiErr.Message)
			assert.Equal(t, tt.authRequired, apiErr.AuthRequired())
		})
	}
}

func TestFeedQueryAndBareArray(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/feed", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		_ = json.NewEncoder(w).Encode([]User{
			{ID: "u1", FirstName: "Ann"},
			{ID: "u2", FirstName: "Bob"},
		})
	}))

	users, err := client.Feed(context.Background(), 2, 10)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Ann", users[0].FirstName)
}

func TestConnectionsAndRequestsEnvelopes(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/connections":
			_, _ = w.Write([]byte(`{"data": [{"_id": "u2", "firstName": "Bob"}]}`))
		case "/api/user/requests/received":
			_, _ = w.Write([]byte(`{"data": [
				{"_id": "r1", "status": "interested",
				 "fromUserId": {"_id": "u3", "firstName": "Cleo", "skills": ["Python"]}}
			]}`))
		}
	}))

	connections, err := client.Connections(context.Background())
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, "Bob", connections[0].FirstName)

	requests, err := client.ReceivedRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "r1", requests[0].ID)
	assert.Equal(t, "Cleo", requests[0].FromUser.FirstName)
	assert.Equal(t, []string{"Python"}, requests[0].FromUser.Skills)
}

func TestSendRequestAndReviewPaths(t *testing.T) {
	var paths []string

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte(`{}`))
	}))

	require.NoError(t, client.SendRequest(context.Background(), StatusInterested, "u9"))
	require.NoError(t, client.SendRequest(context.Background(), StatusIgnored, "u8"))
	require.NoError(t, client.ReviewRequest(context.Background(), DecisionAccepted, "r1"))
	require.NoError(t, client.ReviewRequest(context.Background(), DecisionRejected, "r2"))

	assert.Equal(t, []string{
		"/api/request/send/interested/u9",
		"/api/request/send/ignored/u8",
		"/api/request/review/accepted/r1",
		"/api/request/review/rejected/r2",
	}, paths)
}

func TestSignupJSONWithoutPhoto(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Anna", body["firstName"])
		assert.NotContains(t, body, "lastName", "empty optional fields are omitted")
		assert.Equal(t, []interface{}{"Go"}, body["skills"])

		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Signup(context.Background(), SignupFields{
		FirstName: "Anna",
		EmailID:   "anna@example.com",
		Password:  "Abcdef1!",
		Age:       25,
		Gender:    "female",
		Skills:    []string{"Go"},
	}, nil)
	require.NoError(t, err)
}

func TestSignupMultipartWithPhoto(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		require.NoError(t, err)
		require.Equal(t, "multipart/form-data", mediaType)

		reader := multipart.NewReader(r.Body, params["boundary"])
		form, err := reader.ReadForm(10 << 20)
		require.NoError(t, err)

		assert.Equal(t, "Anna", form.Value["firstName"][0])
		// list-valued fields travel as a JSON string under multipart
		assert.Equal(t, `["Go","Docker"]`, form.Value["skills"][0])

		files := form.File["photo"]
		require.Len(t, files, 1)
		assert.Equal(t, "me.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Signup(context.Background(), SignupFields{
		FirstName: "Anna",
		EmailID:   "anna@example.com",
		Password:  "Abcdef1!",
		Age:       25,
		Gender:    "female",
		Skills:    []string{"Go", "Docker"},
	}, &Attachment{
		Filename:    "me.png",
		ContentType: "image/png",
		Data:        []byte("fake image bytes"),
	})
	require.NoError(t, err)
}

func TestEditProfileUserEnvelope(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/profile/edit", r.URL.Path)

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Annie", body["firstName"])

		_, _ = w.Write([]byte(`{"data": {"_id": "u1", "firstName": "Annie", "age": 26}}`))
	}))

	user, err := client.EditProfile(context.Background(), map[string]interface{}{
		"firstName": "Annie",
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Annie", user.FirstName)
	assert.Equal(t, 26, user.Age)
}

func TestUserFullName(t *testing.T) {
	assert.Equal(t, "Ann Lee", (&User{FirstName: "Ann", LastName: "Lee"}).FullName())
	assert.Equal(t, "Ann", (&User{FirstName: "Ann"}).FullName())
}

func TestErrorMessageFallsBackToPlainBody(t *testing.T) {
	assert.Equal(t, "plain failure", errorMessage([]byte("  plain failure\n")))
	assert.Equal(t, "structured", errorMessage([]byte(`{"error":"structured"}`)))
	assert.True(t, strings.HasPrefix(
		(&APIError{StatusCode: 500, Message: "boom"}).Error(), "api error 500"))
}
