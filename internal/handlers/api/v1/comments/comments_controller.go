// file: internal/handlers/api/v1/comments/comments_controller.go
package comments

import (
	"academichub/internal/middleware"
	"academichub/internal/services"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type CommentController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewCommentController creates a new comment controller
func NewCommentController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *CommentController {
	return &CommentController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// AddComment posts a comment on a file. The author defaults to the
// authenticated user.
func (c *CommentController) AddComment(w http.ResponseWriter, r *http.Request) {
	var req services.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if req.UserID == 0 {
		if claims := middleware.GetClaims(r.Context()); claims != nil {
			req.UserID = claims.UserID
		}
	}

	comment, err := c.serviceCollection.CommentService.AddComment(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, comment)
}

// UpdateComment edits an existing comment's content
func (c *CommentController) UpdateComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid comment ID", err))
		return
	}

	var req services.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ID = id

	comment, err := c.serviceCollection.CommentService.UpdateComment(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, comment)
}

// GetComment handles comment retrieval by ID
func (c *CommentController) GetComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid comment ID", err))
		return
	}

	comment, err := c.serviceCollection.CommentService.GetCommentByID(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, comment)
}

// DeleteComment hides a comment
func (c *CommentController) DeleteComment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid comment ID", err))
		return
	}

	if err := c.serviceCollection.CommentService.DeleteComment(r.Context(), id); err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusNoContent, nil)
}

// ListByFile returns a file's visible comments
func (c *CommentController) ListByFile(w http.ResponseWriter, r *http.Request) {
	fileID, err := strconv.ParseInt(mux.Vars(r)["fileID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	comments, err := c.serviceCollection.CommentService.ListByFile(r.Context(), fileID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, comments)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
