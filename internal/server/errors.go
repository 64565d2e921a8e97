package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	gserrors "gitscope.dev/gitscope/internal/errors"
)

// KindInvalidInput marks request bodies that failed to bind
const KindInvalidInput = "InvalidInput"

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func statusForKind(kind string) int {
	switch kind {
	case KindInvalidInput, "InvalidRevisionId":
		return http.StatusBadRequest
	case "NotARepository", "CommitNotFound", "RevisionResolutionFailed",
		"FileNotInComparison", "FileNotFound", "BranchNotFound":
		return http.StatusNotFound
	case "UncommittedChangesConflict":
		return http.StatusConflict
	case "NonUtf8Content":
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func sendError(c *gin.Context, err error) {
	kind := gserrors.Kind(err)
	c.JSON(statusForKind(kind), ErrorResponse{Error: err.Error(), Kind: kind})
}

func sendBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: KindInvalidInput})
}
