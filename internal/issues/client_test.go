package issues

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const teamResponse = `{"data":{"issues":{"nodes":[
  {
    "id": "1", "identifier": "ATL-7", "title": "Fix login", "url": "https://linear.app/atl/issue/ATL-7",
    "priority": 1, "priorityLabel": "Urgent",
    "state": {"name": "In Progress", "type": "started", "color": "#f2c94c"},
    "assignee": {"name": "Alice"},
    "labels": {"nodes": [{"name": "bug", "color": "#eb5757"}]},
    "attachments": {"nodes": [
      {"title": "Thread", "subtitle": "#eng", "url": "https://acme.slack.com/archives/C1/p1", "sourceType": "slack"},
      {"title": "PR 12", "subtitle": "", "url": "https://github.com/acme/atl/pull/12", "sourceType": "github"}
    ]}
  },
  {
    "id": "2", "identifier": "ATL-8", "title": "Docs", "url": "https://linear.app/atl/issue/ATL-8",
    "priority": 0.0, "priorityLabel": "No priority",
    "state": {"name": "Backlog", "type": "backlog", "color": "#bec2c8"},
    "assignee": null,
    "labels": {"nodes": []},
    "attachments": {"nodes": []}
  }
]}}}`

func TestClient_FetchIssues(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotVars map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		var req graphQLRequest
		_ = jsoniter.Unmarshal(body, &req)
		gotVars = req.Variables
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(teamResponse))
	}))
	defer server.Close()

	c := NewClient(server.URL, "lin_api_key")
	issues, err := c.FetchIssues(context.Background(), "ATL")
	require.NoError(t, err)

	assert.Equal(t, "lin_api_key", gotAuth)
	assert.Equal(t, "ATL", gotVars["teamKey"])

	require.Len(t, issues, 2)
	first := issues[0]
	assert.Equal(t, "ATL-7", first.Identifier)
	assert.Equal(t, PriorityUrgent, first.Priority)
	assert.Equal(t, "urgent", first.PrioritySlug())
	assert.Equal(t, "started", first.StateType)
	assert.Equal(t, "Alice", first.AssigneeName)
	assert.Equal(t, []Label{{Name: "bug", Color: "#eb5757"}}, first.Labels)
	assert.Equal(t, []Thread{{Channel: "#eng", URL: "https://acme.slack.com/archives/C1/p1"}}, first.SlackThreads)

	assert.Empty(t, issues[1].AssigneeName)
	assert.Equal(t, PriorityNone, issues[1].Priority)
	assert.Equal(t, "none", issues[1].PrioritySlug())
}

func TestClient_FetchIssues_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		handler    http.HandlerFunc
		wantErrMsg string
	}{
		"server error": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErrMsg: "unexpected status code: 500",
		},
		"unauthorized": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			},
			wantErrMsg: "unexpected status code: 401",
		},
		"graphql errors": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"errors":[{"message":"team not found"},{"message":"again"}]}`))
			},
			wantErrMsg: "tracker error: team not found; again",
		},
		"invalid json": {
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"data":`))
			},
			wantErrMsg: "decoding response",
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := NewClient(server.URL, "key").FetchIssues(context.Background(), "ATL")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErrMsg)
		})
	}
}

func TestClient_FetchIssues_Preconditions(t *testing.T) {
	t.Parallel()

	_, err := NewClient("http://127.0.0.1:0", "key").FetchIssues(context.Background(), "")
	require.ErrorIs(t, err, ErrNoTeam)

	_, err = NewClient("http://127.0.0.1:0", "").FetchIssues(context.Background(), "ATL")
	require.ErrorIs(t, err, ErrNoAPIKey)
}

func TestClient_FetchIssues_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(teamResponse))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL, "key").FetchIssues(ctx, "ATL")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
