package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mlutsenko/bookshelf/internal/audit"
	"github.com/mlutsenko/bookshelf/internal/sync"
)

// BatchController exposes graph batch synchronization.
type BatchController struct {
	engine       *sync.Engine
	auditService *audit.Service
}

func NewBatchController(engine *sync.Engine, auditService *audit.Service) *BatchController {
	return &BatchController{
		engine:       engine,
		auditService: auditService,
	}
}

// Sync accepts a batch of shelf and record drafts referencing each other by
// symbolic codes and commits the whole graph atomically. The response maps
// each code to its persisted id; on failure the offending code is named and
// nothing is persisted.
func (ctrl *BatchController) Sync(c *gin.Context) {
	var req sync.BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  "invalid_request",
		})
		return
	}

	userID := GetUserID(c)
	result, err := ctrl.engine.Apply(userID, &req)

	if ctrl.auditService != nil {
		ctrl.auditService.LogBatchSync(userID, len(req.Shelfs), len(req.Records), err)
	}

	if err != nil {
		status, resp := batchErrorResponse(err)
		c.JSON(status, resp)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// batchErrorResponse maps the sync error taxonomy onto HTTP statuses:
// validation and reference failures are client errors, missing shelves 404,
// foreign shelves 403, anything else a server error.
func batchErrorResponse(err error) (int, ErrorResponse) {
	var (
		validationErr *sync.ValidationError
		referenceErr  *sync.ReferenceError
		notFoundErr   *sync.NotFoundError
		permissionErr *sync.PermissionError
	)

	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest, ErrorResponse{
			Error:   validationErr.Error(),
			Code:    "validation_failed",
			Details: gin.H{"code": validationErr.Code},
		}
	case errors.As(err, &referenceErr):
		return http.StatusBadRequest, ErrorResponse{
			Error:   referenceErr.Error(),
			Code:    "unknown_shelf_code",
			Details: gin.H{"code": referenceErr.Code, "shelf_code": referenceErr.ShelfCode},
		}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, ErrorResponse{
			Error:   notFoundErr.Error(),
			Code:    "shelf_not_found",
			Details: gin.H{"code": notFoundErr.Code},
		}
	case errors.As(err, &permissionErr):
		return http.StatusForbidden, ErrorResponse{
			Error:   permissionErr.Error(),
			Code:    "permission_denied",
			Details: gin.H{"code": permissionErr.Code},
		}
	default:
		return http.StatusInternalServerError, ErrorResponse{
			Error: "Batch synchronization failed: " + err.Error(),
			Code:  "internal_error",
		}
	}
}
