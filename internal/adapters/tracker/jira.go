package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"trackerbot/internal/core/domain"
)

const (
	searchPath   = "/rest/api/2/search"
	searchFields = "key,summary,status,issuetype"
	// maxResults caps the page requested from the tracker; the rendered
	// preview is bounded separately by the formatter.
	maxResults = 50
)

// Jira provides a read-only wrapper for the Jira search API.
type Jira struct {
	baseURL string
	user    string
	token   string
	client  *http.Client
}

func NewJira(baseURL, user, token string) *Jira {
	return &Jira{
		baseURL: strings.TrimRight(baseURL, "/"),
		user:    user,
		token:   token,
		client:  &http.Client{},
	}
}

type searchResponse struct {
	Total  int `json:"total"`
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary string `json:"summary"`
			Status  struct {
				Name string `json:"name"`
			} `json:"status"`
			IssueType struct {
				Name string `json:"name"`
			} `json:"issuetype"`
		} `json:"fields"`
	} `json:"issues"`
}

func (j *Jira) Search(ctx context.Context, query string) (*domain.SearchResult, error) {
	params := url.Values{}
	params.Set("jql", query)
	params.Set("fields", searchFields)
	params.Set("maxResults", strconv.Itoa(maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, j.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating tracker search request: %w", err)
	}

	req.SetBasicAuth(j.user, j.token)
	req.Header.Add("Accept", "application/json")

	res, err := j.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error executing tracker search: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tracker search returned status %s", res.Status)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading tracker response: %w", err)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling tracker response: %w", err)
	}

	searchResult := &domain.SearchResult{Total: result.Total}
	for _, issue := range result.Issues {
		searchResult.Issues = append(searchResult.Issues, domain.Issue{
			Key:     issue.Key,
			Summary: issue.Fields.Summary,
			Status:  issue.Fields.Status.Name,
			Type:    issue.Fields.IssueType.Name,
			Link:    j.baseURL + "/browse/" + issue.Key,
		})
	}

	return searchResult, nil
}
