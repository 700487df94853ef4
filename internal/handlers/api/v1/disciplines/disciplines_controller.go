// file: internal/handlers/api/v1/disciplines/disciplines_controller.go
package disciplines

import (
	"academichub/internal/middleware"
	"academichub/internal/services"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type DisciplineController struct {
	serviceCollection *services.ServiceCollection
	logger            *zap.Logger
}

// NewDisciplineController creates a new discipline controller
func NewDisciplineController(serviceCollection *services.ServiceCollection, logger *zap.Logger) *DisciplineController {
	return &DisciplineController{
		serviceCollection: serviceCollection,
		logger:            logger,
	}
}

// CreateDiscipline handles discipline creation
func (c *DisciplineController) CreateDiscipline(w http.ResponseWriter, r *http.Request) {
	var req services.CreateDisciplineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}

	discipline, err := c.serviceCollection.DisciplineService.CreateDiscipline(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, discipline)
}

// UpdateDiscipline handles a full discipline overwrite
func (c *DisciplineController) UpdateDiscipline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid discipline ID", err))
		return
	}

	var req services.UpdateDisciplineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid request body", err))
		return
	}
	req.ID = id

	discipline, err := c.serviceCollection.DisciplineService.UpdateDiscipline(r.Context(), &req)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, discipline)
}

// GetDiscipline handles discipline retrieval by ID
func (c *DisciplineController) GetDiscipline(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid discipline ID", err))
		return
	}

	discipline, err := c.serviceCollection.DisciplineService.GetDisciplineByID(r.Context(), id)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, discipline)
}

// ListDisciplines handles discipline listing for one institution. An
// optional search query filters by name substring.
func (c *DisciplineController) ListDisciplines(w http.ResponseWriter, r *http.Request) {
	institutionID, err := strconv.ParseInt(mux.Vars(r)["institutionID"], 10, 64)
	if err != nil {
		middleware.WriteError(w, r, services.NewValidationError("invalid institution ID", err))
		return
	}

	if search := r.URL.Query().Get("search"); search != "" {
		disciplines, err := c.serviceCollection.DisciplineService.SearchByName(r.Context(), institutionID, search)
		if err != nil {
			middleware.WriteError(w, r, err)
			return
		}
		middleware.WriteJSON(w, http.StatusOK, disciplines)
		return
	}

	disciplines, err := c.serviceCollection.DisciplineService.ListActiveByInstitution(r.Context(), institutionID)
	if err != nil {
		middleware.WriteError(w, r, err)
		return
	}

	middleware.WriteJSON(w, http.StatusOK, disciplines)
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}
