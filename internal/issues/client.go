package issues

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
)

// DefaultTimeout bounds a single tracker request.
const DefaultTimeout = 5 * time.Second

// DefaultPageSize is the number of issues requested.
const DefaultPageSize = 100

var (
	// ErrNoTeam is returned when no team key is configured.
	ErrNoTeam = errors.New("issues: no team configured")
	// ErrNoAPIKey is returned when no API key is available.
	ErrNoAPIKey = errors.New("issues: no API key configured")
)

const issuesQuery = `query TeamIssues($teamKey: String!, $first: Int!) {
  issues(
    first: $first
    orderBy: updatedAt
    filter: { team: { key: { eq: $teamKey } } }
  ) {
    nodes {
      id
      identifier
      title
      url
      priority
      priorityLabel
      state { name type color }
      assignee { name }
      labels { nodes { name color } }
      attachments { nodes { title subtitle url sourceType } }
    }
  }
}`

// Client fetches issues from the tracker.
type Client struct {
	URL        string
	APIKey     string
	PageSize   int
	HTTPClient *http.Client
}

// NewClient returns a client for the GraphQL endpoint at url.
func NewClient(url, apiKey string) *Client {
	return &Client{
		URL:        url,
		APIKey:     apiKey,
		PageSize:   DefaultPageSize,
		HTTPClient: &http.Client{Timeout: DefaultTimeout},
	}
}

type graphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type issuesResponse struct {
	Data struct {
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	} `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type issueNode struct {
	ID            string      `json:"id"`
	Identifier    string      `json:"identifier"`
	Title         string      `json:"title"`
	URL           string      `json:"url"`
	Priority      interface{} `json:"priority"`
	PriorityLabel string      `json:"priorityLabel"`
	State         struct {
		Name  string `json:"name"`
		Type  string `json:"type"`
		Color string `json:"color"`
	} `json:"state"`
	Assignee *struct {
		Name string `json:"name"`
	} `json:"assignee"`
	Labels struct {
		Nodes []Label `json:"nodes"`
	} `json:"labels"`
	Attachments struct {
		Nodes []struct {
			Title      string `json:"title"`
			Subtitle   string `json:"subtitle"`
			URL        string `json:"url"`
			SourceType string `json:"sourceType"`
		} `json:"nodes"`
	} `json:"attachments"`
}

// FetchIssues returns the issues of the team with the given key.
func (c *Client) FetchIssues(ctx context.Context, teamKey string) ([]Issue, error) {
	if teamKey == "" {
		return nil, ErrNoTeam
	}
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	pageSize := c.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	body, err := jsoniter.Marshal(graphQLRequest{
		Query:     issuesQuery,
		Variables: map[string]interface{}{"teamKey": teamKey, "first": pageSize},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.APIKey)

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var parsed issuesResponse
	if err := jsoniter.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		msgs := make([]string, 0, len(parsed.Errors))
		for _, e := range parsed.Errors {
			msgs = append(msgs, e.Message)
		}
		return nil, fmt.Errorf("tracker error: %s", strings.Join(msgs, "; "))
	}

	issues := make([]Issue, 0, len(parsed.Data.Issues.Nodes))
	for _, n := range parsed.Data.Issues.Nodes {
		issues = append(issues, n.toIssue())
	}
	return issues, nil
}

func (n issueNode) toIssue() Issue {
	issue := Issue{
		ID:            n.ID,
		Identifier:    n.Identifier,
		Title:         n.Title,
		URL:           n.URL,
		Priority:      cast.ToInt(n.Priority),
		PriorityLabel: n.PriorityLabel,
		StateName:     n.State.Name,
		StateType:     n.State.Type,
		StateColor:    n.State.Color,
		Labels:        n.Labels.Nodes,
	}
	if n.Assignee != nil {
		issue.AssigneeName = n.Assignee.Name
	}
	for _, a := range n.Attachments.Nodes {
		if !isSlack(a.SourceType, a.URL) {
			continue
		}
		channel := a.Subtitle
		if channel == "" {
			channel = a.Title
		}
		issue.SlackThreads = append(issue.SlackThreads, Thread{Channel: channel, URL: a.URL})
	}
	return issue
}
