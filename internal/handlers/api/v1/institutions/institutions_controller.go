// file: internal/handlers/api/v1/institutions/institutions_controller.go
package institutions

import (
	"academichub/internal/middleware"
	"academichub/internal/services"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type InstitutionController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewInstitutionController creates a new institution controller
func NewInstitutionController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *InstitutionController {
	return &InstitutionController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// CreateInstitution handles institution creation
func (c *InstitutionController) CreateInstitution(w http.ResponseWriter, r *http.Request) {
	var req services.CreateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	institution, err := c.serviceCollection.InstitutionService.CreateInstitution(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, institution)
}

// UpdateInstitution handles a full institution overwrite
func (c *InstitutionController) UpdateInstitution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	var req services.UpdateInstitutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ID = id

	institution, err := c.serviceCollection.InstitutionService.UpdateInstitution(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, institution)
}

// GetInstitution handles institution retrieval by ID
func (c *InstitutionController) GetInstitution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	institution, err := c.serviceCollection.InstitutionService.GetInstitutionByID(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, institution)
}

// GetInstitutionByCode handles institution retrieval by short code
func (c *InstitutionController) GetInstitutionByCode(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	institution, err := c.serviceCollection.InstitutionService.GetInstitutionByCode(r.Context(), code)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, institution)
}

// ListInstitutions handles active institution listing. With ?expired=true it
// returns the expired set instead.
func (c *InstitutionController) ListInstitutions(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("expired") == "true" {
		institutions, err := c.serviceCollection.InstitutionService.ListExpiredInstitutions(r.Context())
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, institutions)
		return
	}

	institutions, err := c.serviceCollection.InstitutionService.ListActiveInstitutions(r.Context())
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, institutions)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
