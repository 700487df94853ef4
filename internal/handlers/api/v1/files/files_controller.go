// file: internal/handlers/api/v1/files/files_controller.go
package files

import (
	"academichub/internal/middleware"
	"academichub/internal/models"
	"academichub/internal/services"
	"academichub/internal/storage"
	"encoding/json"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type FileController struct {
	serviceCollection *services.ServiceCollection
	store             storage.Store
	logger            *zap.Logger
}

// NewFileController creates a new file controller. The store may be nil when
// the external file store is not configured; uploads are rejected then.
func NewFileController(serviceCollection *services.ServiceCollection, store storage.Store, logger *zap.Logger) *FileController {
	return &FileController{
		serviceCollection: serviceCollection,
		store:             store,
		logger:            logger,
	}
}

// CreateFile registers file metadata. The uploader defaults to the
// authenticated user when the request omits it.
func (c *FileController) CreateFile(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	if req.UploadedByID == 0 {
		if claims := middleware.GetClaims(r.Context()); claims != nil {
			req.UploadedByID = claims.UserID
		}
	}

	file, err := c.serviceCollection.FileService.CreateFile(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, file)
}

// UploadFile receives the file bytes as multipart form data, pushes them to
// the external store and registers the metadata in one step. The metadata
// travels in plain form fields next to the "file" part.
func (c *FileController) UploadFile(w http.ResponseWriter, r *http.Request) {
	if c.store == nil {
		middleware.WriteError(w, r, services.NewBusinessError("file storage is not configured", "STORAGE_DISABLED"))
		return
	}

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid multipart request", err))
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("missing file part", err))
		return
	}
	defer part.Close()

	if err := c.store.Validate(header); err != nil {
		middleware.WriteError(w, r, services.NewValidationError(err.Error(), err))
		return
	}

	fileType, err := models.ParseFileType(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("unsupported file type", err))
		return
	}

	disciplineID, err := strconv.ParseInt(r.FormValue("discipline_id"), 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid discipline ID", err))
		return
	}

	result, err := c.store.Upload(r.Context(), header, r.FormValue("folder"))
	if err != nil {
		middleware.WriteError(w, r, services.NewInternalError("failed to store file"))
		return
	}

	req := services.CreateFileRequest{
		Title:        r.FormValue("title"),
		FileName:     header.Filename,
		FileType:     fileType,
		FileSize:     header.Size,
		FilePath:     &result.URL,
		DisciplineID: disciplineID,
	}
	if description := r.FormValue("description"); description != "" {
		req.Description = &description
	}
	if version := r.FormValue("version"); version != "" {
		req.Version = &version
	}
	if claims := middleware.GetClaims(r.Context()); claims != nil {
		req.UploadedByID = claims.UserID
	}

	file, err := c.serviceCollection.FileService.CreateFile(r.Context(), &req)
	if err != nil {
		// The metadata was rejected; drop the orphaned upload.
		if delErr := c.store.Delete(r.Context(), result.PublicID); delErr != nil {
			c.logger.Warn("Failed to clean up orphaned upload",
				zap.String("public_id", result.PublicID), zap.Error(delErr))
		}
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, file)
}

// UpdateFile handles a full metadata overwrite
func (c *FileController) UpdateFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	var req services.UpdateFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ID = id

	file, err := c.serviceCollection.FileService.UpdateFile(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, file)
}

// GetFile handles file retrieval by ID
func (c *FileController) GetFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	file, err := c.serviceCollection.FileService.GetFileByID(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, file)
}

// ApproveFile moves a file out of the moderation queue as approved
func (c *FileController) ApproveFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	file, err := c.serviceCollection.FileService.ApproveFile(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, file)
}

// RejectFile moves a file out of the moderation queue as rejected
func (c *FileController) RejectFile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	file, err := c.serviceCollection.FileService.RejectFile(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, file)
}

// RegisterDownload bumps the download counter and returns the new value
func (c *FileController) RegisterDownload(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid file ID", err))
		return
	}

	count, err := c.serviceCollection.FileService.IncrementDownloadCount(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]int{"download_count": count})
}

// ListByDiscipline returns a discipline's approved files
func (c *FileController) ListByDiscipline(w http.ResponseWriter, r *http.Request) {
	disciplineID, err := strconv.ParseInt(mux.Vars(r)["disciplineID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid discipline ID", err))
		return
	}

	files, err := c.serviceCollection.FileService.ListApprovedByDiscipline(r.Context(), disciplineID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, files)
}

// ListPending returns an institution's moderation queue
func (c *FileController) ListPending(w http.ResponseWriter, r *http.Request) {
	institutionID, err := strconv.ParseInt(mux.Vars(r)["institutionID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	files, err := c.serviceCollection.FileService.ListPendingByInstitution(r.Context(), institutionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, files)
}

// ListMostDownloaded returns an institution's most downloaded approved files
func (c *FileController) ListMostDownloaded(w http.ResponseWriter, r *http.Request) {
	institutionID, err := strconv.ParseInt(mux.Vars(r)["institutionID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil {
			limit = parsed
		}
	}

	files, err := c.serviceCollection.FileService.ListMostDownloaded(r.Context(), institutionID, limit)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, files)
}

// ListByUploader returns the files one user uploaded
func (c *FileController) ListByUploader(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(mux.Vars(r)["userID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid user ID", err))
		return
	}

	files, err := c.serviceCollection.FileService.ListByUploader(r.Context(), userID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, files)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
