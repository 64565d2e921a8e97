package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"gitscope.dev/gitscope/internal/config"
	"gitscope.dev/gitscope/internal/engine"
	"gitscope.dev/gitscope/internal/git"
	"gitscope.dev/gitscope/internal/output"
	"gitscope.dev/gitscope/internal/runtime"
	"gitscope.dev/gitscope/internal/server"
	"gitscope.dev/gitscope/testhelpers"
)

const repoPath = "/repo"

type fixture struct {
	repo    *testhelpers.FakeRepo
	ids     []string
	handler http.Handler
	console *bytes.Buffer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	t.Setenv("DEBUG", "")

	repo := testhelpers.NewFakeRepo(repoPath)
	ids := repo.AddLinearHistory(3, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	repo.Locals = []git.Ref{{Name: "main", Target: ids[2]}, {Name: "feature", Target: ids[1]}}

	console := &bytes.Buffer{}
	splog, err := output.NewSplogWithConfig(console, nil)
	require.NoError(t, err)

	cfg := config.Default()
	eng := runtime.NewEngine(testhelpers.NewFakeOpener(repo), cfg, splog)
	ctx := runtime.NewContext(context.Background(), eng, splog, cfg)

	return &fixture{
		repo:    repo,
		ids:     ids,
		handler: server.New(ctx).Handler(),
		console: console,
	}
}

func (f *fixture) post(t *testing.T, op string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/"+op, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) server.ErrorResponse {
	t.Helper()
	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestListCommits(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "list_commits", map[string]any{"repoPath": repoPath, "limit": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var commits []engine.Commit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commits))
	require.Len(t, commits, 2)
	require.Equal(t, f.ids[2], commits[0].ID)
	require.Equal(t, f.ids[1], commits[1].ID)
}

func TestListCommitsFromStartRef(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "list_commits", map[string]any{"repoPath": repoPath, "startRef": f.ids[0]})
	require.Equal(t, http.StatusOK, rec.Code)

	var commits []engine.Commit
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &commits))
	require.Len(t, commits, 1)
}

func TestErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name   string
		op     string
		body   map[string]any
		status int
		kind   string
	}{
		{
			name:   "missing required field",
			op:     "get_commit_files",
			body:   map[string]any{"repoPath": repoPath},
			status: http.StatusBadRequest,
			kind:   server.KindInvalidInput,
		},
		{
			name:   "not a repository",
			op:     "validate_repo",
			body:   map[string]any{"path": "/nowhere"},
			status: http.StatusNotFound,
			kind:   "NotARepository",
		},
		{
			name:   "invalid revision id",
			op:     "get_commit_files",
			body:   map[string]any{"repoPath": repoPath, "commitId": "xyz"},
			status: http.StatusBadRequest,
			kind:   "InvalidRevisionId",
		},
		{
			name:   "empty range",
			op:     "get_commit_range_files",
			body:   map[string]any{"repoPath": repoPath, "commitIds": []string{}},
			status: http.StatusBadRequest,
			kind:   "InvalidRevisionId",
		},
		{
			name:   "unknown commit",
			op:     "get_commit_files",
			body:   map[string]any{"repoPath": repoPath, "commitId": "deadbeef"},
			status: http.StatusNotFound,
			kind:   "CommitNotFound",
		},
		{
			name:   "missing branch",
			op:     "checkout_branch",
			body:   map[string]any{"repoPath": repoPath, "branchName": "nope"},
			status: http.StatusNotFound,
			kind:   "BranchNotFound",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			rec := f.post(t, tt.op, tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			resp := decodeError(t, rec)
			require.Equal(t, tt.kind, resp.Kind)
			require.NotEmpty(t, resp.Error)
		})
	}
}

func TestFileContents(t *testing.T) {
	f := newFixture(t)
	f.repo.SetBlob(f.ids[0], "a.txt", []byte("one\n"), false)
	f.repo.SetBlob(f.ids[1], "a.txt", []byte("two\n"), false)
	f.repo.SetBlob(f.ids[2], "bad.txt", []byte{0xff, 0xfe, 'x'}, false)

	rec := f.post(t, "get_file_contents", map[string]any{"repoPath": repoPath, "commitId": f.ids[1], "filePath": "a.txt"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"old_content":"one\n","new_content":"two\n","is_binary":false}`, rec.Body.String())

	rec = f.post(t, "get_file_contents", map[string]any{"repoPath": repoPath, "commitId": f.ids[2], "filePath": "bad.txt"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Equal(t, "NonUtf8Content", decodeError(t, rec).Kind)

	rec = f.post(t, "get_file_contents", map[string]any{"repoPath": repoPath, "commitId": f.ids[2], "filePath": "gone.txt"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "FileNotFound", decodeError(t, rec).Kind)
}

func TestCheckoutBranch(t *testing.T) {
	t.Run("blocked by uncommitted changes", func(t *testing.T) {
		f := newFixture(t)
		f.repo.StatusEntries = []git.StatusEntry{{Path: "a.txt", Flags: git.WorktreeModified}}

		rec := f.post(t, "checkout_branch", map[string]any{"repoPath": repoPath, "branchName": "feature"})
		require.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeError(t, rec)
		require.Equal(t, "UncommittedChangesConflict", resp.Kind)
		require.Contains(t, resp.Error, "a.txt")
		require.Empty(t, f.repo.HeadSetTo)
	})

	t.Run("switches branch", func(t *testing.T) {
		f := newFixture(t)

		rec := f.post(t, "checkout_branch", map[string]any{"repoPath": repoPath, "branchName": "feature"})
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"branch":"feature"}`, rec.Body.String())
		require.Equal(t, "feature", f.repo.HeadSetTo)
		require.Equal(t, 1, f.repo.ForceCheckouts)
	})
}

func TestCurrentBranchAndValidate(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "get_current_branch", map[string]any{"repoPath": repoPath})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `"main"`, rec.Body.String())

	rec = f.post(t, "validate_repo", map[string]any{"path": repoPath})
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"path":"/repo","name":"repo","current_branch":"main"}`, rec.Body.String())
}

func TestReportFrontendError(t *testing.T) {
	f := newFixture(t)

	rec := f.post(t, "report_frontend_error", map[string]any{
		"source":    "ErrorBoundary",
		"message":   "boom",
		"url":       "http://localhost/",
		"timestamp": "2024-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Contains(t, f.console.String(), "[frontend-error] source=ErrorBoundary message=boom timestamp=2024-01-01T00:00:00Z")
	require.Contains(t, f.console.String(), "[frontend-error] url=http://localhost/")
	require.NotContains(t, f.console.String(), "stack=")

	rec = f.post(t, "report_frontend_error", map[string]any{"source": "x"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
