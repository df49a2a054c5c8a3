package server

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yoshimomax/sysmlmodeler/pkg/common/errors"
	"github.com/yoshimomax/sysmlmodeler/pkg/validation"
)

// handleProjects returns a list of available projects.
func (s *Server) handleProjects(c *gin.Context) {
	projects, err := s.models.ListProjects()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// handleListModels returns summaries of the models stored in a project.
func (s *Server) handleListModels(c *gin.Context) {
	projectID := c.Query("project")
	infos, err := s.models.ListModels(projectID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"models": infos})
}

// handleGetModel returns the stored record for one model, verbatim. The
// record is already JSON so it is passed through without re-encoding.
func (s *Server) handleGetModel(c *gin.Context) {
	projectID := c.Query("project")
	modelID := c.Query("id")
	if modelID == "" {
		s.handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing model id", nil))
		return
	}

	data, err := s.models.GetModelRecord(projectID, modelID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.Data(http.StatusOK, "application/json", data)
}

// handlePutModel stores the posted model record.
func (s *Server) handlePutModel(c *gin.Context) {
	projectID := c.Query("project")
	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		s.handleError(c, errors.NewAppError(http.StatusBadRequest, "Unreadable request body", err))
		return
	}

	id, err := s.models.PutModelRecord(projectID, data)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// handleDeleteModel removes a stored model.
func (s *Server) handleDeleteModel(c *gin.Context) {
	projectID := c.Query("project")
	modelID := c.Query("id")
	if modelID == "" {
		s.handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing model id", nil))
		return
	}

	if err := s.models.DeleteModel(projectID, modelID); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// handleValidate runs the constraint engine. With ?id= it validates a
// stored model; otherwise the request body must carry a model record,
// which is validated without being stored.
func (s *Server) handleValidate(c *gin.Context) {
	projectID := c.Query("project")
	modelID := c.Query("id")

	if modelID != "" {
		issues, err := s.models.ValidateStored(projectID, modelID)
		if err != nil {
			s.handleError(c, err)
			return
		}
		respondIssues(c, issues)
		return
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		s.handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing model id or record body", err))
		return
	}
	issues, err := s.models.ValidateRecord(data)
	if err != nil {
		s.handleError(c, err)
		return
	}
	respondIssues(c, issues)
}

// handleExport returns the D3 diagram graph for a stored model.
func (s *Server) handleExport(c *gin.Context) {
	projectID := c.Query("project")
	modelID := c.Query("id")
	if modelID == "" {
		s.handleError(c, errors.NewAppError(http.StatusBadRequest, "Missing model id", nil))
		return
	}

	graph, err := s.models.ExportGraph(projectID, modelID)
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, graph)
}

func respondIssues(c *gin.Context, issues []validation.Issue) {
	// A nil slice renders as null; the frontend expects [].
	if issues == nil {
		issues = []validation.Issue{}
	}
	c.JSON(http.StatusOK, gin.H{"valid": len(issues) == 0, "issues": issues})
}

// handleError helper
func (s *Server) handleError(c *gin.Context, err error) {
	appErr := errors.MapError(err)
	if appErr.Code >= http.StatusInternalServerError {
		s.log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}
