package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RepoRequest names a repository
type RepoRequest struct {
	RepoPath string `json:"repoPath" binding:"required"`
}

// ListCommitsRequest is the body of list_commits
type ListCommitsRequest struct {
	RepoPath string `json:"repoPath" binding:"required"`
	StartRef string `json:"startRef"`
	Limit    int    `json:"limit"`
}

// CommitRequest names one commit
type CommitRequest struct {
	RepoPath string `json:"repoPath" binding:"required"`
	CommitID string `json:"commitId" binding:"required"`
}

// CommitRangeRequest names an unordered set of commits
type CommitRangeRequest struct {
	RepoPath  string   `json:"repoPath" binding:"required"`
	CommitIDs []string `json:"commitIds"`
}

// CommitFileRequest names a file in one commit
type CommitFileRequest struct {
	RepoPath string `json:"repoPath" binding:"required"`
	CommitID string `json:"commitId" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
}

// CommitRangeFileRequest names a file in a commit range
type CommitRangeFileRequest struct {
	RepoPath  string   `json:"repoPath" binding:"required"`
	CommitIDs []string `json:"commitIds"`
	FilePath  string   `json:"filePath" binding:"required"`
}

// WorkingFileRequest names a file in the working tree
type WorkingFileRequest struct {
	RepoPath string `json:"repoPath" binding:"required"`
	FilePath string `json:"filePath" binding:"required"`
}

// CheckoutRequest names the branch to switch to
type CheckoutRequest struct {
	RepoPath   string `json:"repoPath" binding:"required"`
	BranchName string `json:"branchName" binding:"required"`
}

// ValidateRequest names a candidate repository path
type ValidateRequest struct {
	Path string `json:"path" binding:"required"`
}

func post[P any](f func(ctx context.Context, params *P) (any, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params P

		err := c.ShouldBindJSON(&params)
		if err != nil {
			sendBindError(c, err)
			return
		}

		result, err := f(c.Request.Context(), &params)
		if err != nil {
			sendError(c, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func (s *Server) initRoutes(r *gin.Engine) {
	eng := s.ctx.Engine
	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.POST("/list_commits", post(func(ctx context.Context, p *ListCommitsRequest) (any, error) {
		return eng.ListCommits(ctx, p.RepoPath, p.StartRef, p.Limit)
	}))
	api.POST("/get_commit_files", post(func(ctx context.Context, p *CommitRequest) (any, error) {
		return eng.GetCommitFiles(ctx, p.RepoPath, p.CommitID)
	}))
	api.POST("/get_commit_range_files", post(func(ctx context.Context, p *CommitRangeRequest) (any, error) {
		return eng.GetCommitRangeFiles(ctx, p.RepoPath, p.CommitIDs)
	}))
	api.POST("/get_file_diff", post(func(ctx context.Context, p *CommitFileRequest) (any, error) {
		return eng.GetFileDiff(ctx, p.RepoPath, p.CommitID, p.FilePath)
	}))
	api.POST("/get_commit_range_file_diff", post(func(ctx context.Context, p *CommitRangeFileRequest) (any, error) {
		return eng.GetCommitRangeFileDiff(ctx, p.RepoPath, p.CommitIDs, p.FilePath)
	}))
	api.POST("/get_file_contents", post(func(ctx context.Context, p *CommitFileRequest) (any, error) {
		return eng.GetFileContents(ctx, p.RepoPath, p.CommitID, p.FilePath)
	}))
	api.POST("/get_commit_range_file_contents", post(func(ctx context.Context, p *CommitRangeFileRequest) (any, error) {
		return eng.GetCommitRangeFileContents(ctx, p.RepoPath, p.CommitIDs, p.FilePath)
	}))
	api.POST("/get_current_branch", post(func(ctx context.Context, p *RepoRequest) (any, error) {
		return eng.GetCurrentBranch(ctx, p.RepoPath)
	}))
	api.POST("/list_branches", post(func(ctx context.Context, p *RepoRequest) (any, error) {
		return eng.ListBranches(ctx, p.RepoPath)
	}))
	api.POST("/checkout_branch", post(func(ctx context.Context, p *CheckoutRequest) (any, error) {
		if err := eng.CheckoutBranch(ctx, p.RepoPath, p.BranchName); err != nil {
			return nil, err
		}
		return gin.H{"branch": p.BranchName}, nil
	}))
	api.POST("/validate_repo", post(func(ctx context.Context, p *ValidateRequest) (any, error) {
		return eng.ValidateRepo(ctx, p.Path)
	}))
	api.POST("/get_working_changes", post(func(ctx context.Context, p *RepoRequest) (any, error) {
		return eng.GetWorkingChanges(ctx, p.RepoPath)
	}))
	api.POST("/get_working_file_diff", post(func(ctx context.Context, p *WorkingFileRequest) (any, error) {
		return eng.GetWorkingFileDiff(ctx, p.RepoPath, p.FilePath)
	}))
	api.POST("/get_working_file_contents", post(func(ctx context.Context, p *WorkingFileRequest) (any, error) {
		return eng.GetWorkingFileContents(ctx, p.RepoPath, p.FilePath)
	}))

	api.POST("/report_frontend_error", s.reportFrontendError)
}
