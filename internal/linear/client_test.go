package linear

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testHandler captures the incoming request and returns a canned response.
type testHandler struct {
	// captured from the request
	method        string
	authorization string
	contentType   string
	body          string

	// canned response
	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.authorization = r.Header.Get("Authorization")
	h.contentType = r.Header.Get("Content-Type")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClientWithEndpoint("lin_api_test", srv.URL)
}

func TestExecute_RequestShape(t *testing.T) {
	h := &testHandler{responseBody: `{"data":{"viewer":{"id":"u1","name":"Alice"}}}`}
	c := newTestClient(t, h)

	user, err := c.Viewer(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != "u1" || user.Name != "Alice" {
		t.Errorf("viewer = %+v, want u1/Alice", user)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.authorization != "lin_api_test" {
		t.Errorf("authorization = %q, want api key", h.authorization)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q", h.contentType)
	}

	var req Request
	if err := json.Unmarshal([]byte(h.body), &req); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if !strings.Contains(req.Query, "viewer") {
		t.Errorf("query missing viewer field: %q", req.Query)
	}
}

func TestExecute_GraphQLErrorList(t *testing.T) {
	h := &testHandler{
		responseBody: `{"data":null,"errors":[{"message":"Entity not found"},{"message":"Access denied"}]}`,
	}
	c := newTestClient(t, h)

	_, err := c.Viewer(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for GraphQL-level error", apiErr.StatusCode)
	}
	if apiErr.Message != "Entity not found; Access denied" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestExecute_HTTPError(t *testing.T) {
	h := &testHandler{statusCode: http.StatusUnauthorized, responseBody: `{"error":"bad key"}`}
	c := newTestClient(t, h)

	_, err := c.Viewer(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestIssues_ParsesRelationsAndState(t *testing.T) {
	h := &testHandler{responseBody: `{
		"data": {
			"issues": {
				"nodes": [
					{
						"id": "i1",
						"identifier": "ENG-1",
						"title": "Fix login",
						"priority": 2,
						"sortOrder": 1500.5,
						"state": {"id": "s1", "name": "In Progress", "type": "started"},
						"assignee": {"id": "u1", "name": "Alice"},
						"labels": {"nodes": [{"id": "l1", "name": "bug"}]},
						"relations": {
							"nodes": [
								{
									"id": "r1",
									"type": "blocks",
									"relatedIssue": {"id": "i2", "identifier": "ENG-2", "state": {"type": "unstarted"}}
								}
							]
						}
					}
				],
				"pageInfo": {"hasNextPage": false, "endCursor": ""}
			}
		}
	}`}
	c := newTestClient(t, h)

	issues, err := c.Issues(context.Background(), "ENG", 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("len(issues) = %d, want 1", len(issues))
	}
	is := issues[0]
	if is.StateType() != StateStarted {
		t.Errorf("StateType = %q, want started", is.StateType())
	}
	if is.SortOrder != 1500.5 {
		t.Errorf("SortOrder = %v, want 1500.5", is.SortOrder)
	}
	rels := is.Relations.Nodes
	if len(rels) != 1 || rels[0].Type != RelationBlocks || rels[0].RelatedIssue.Identifier != "ENG-2" {
		t.Errorf("relations = %+v", rels)
	}
	if got := is.LabelNames(); len(got) != 1 || got[0] != "bug" {
		t.Errorf("LabelNames = %v", got)
	}

	var req Request
	if err := json.Unmarshal([]byte(h.body), &req); err != nil {
		t.Fatalf("request body: %v", err)
	}
	if req.Variables["teamKey"] != "ENG" {
		t.Errorf("teamKey variable = %v", req.Variables["teamKey"])
	}
	if req.Variables["first"] != float64(100) {
		t.Errorf("first variable = %v", req.Variables["first"])
	}
}

func TestUpdateIssue_RejectedMutation(t *testing.T) {
	h := &testHandler{responseBody: `{"data":{"issueUpdate":{"success":false}}}`}
	c := newTestClient(t, h)

	_, err := c.UpdateIssue(context.Background(), "i1", map[string]any{"sortOrder": 2500.0})
	if err == nil {
		t.Fatal("expected error for success=false")
	}
}

func TestStateType_Closed(t *testing.T) {
	for _, tc := range []struct {
		st     StateType
		closed bool
	}{
		{StateBacklog, false},
		{StateUnstarted, false},
		{StateStarted, false},
		{StateTriage, false},
		{StateCompleted, true},
		{StateCanceled, true},
	} {
		if got := tc.st.Closed(); got != tc.closed {
			t.Errorf("%s.Closed() = %v, want %v", tc.st, got, tc.closed)
		}
	}
}
