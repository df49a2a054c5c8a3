// Package service mediates between the transport layer and the core:
// store lookup, record decode, validation and export, with errors mapped
// onto the shared sentinels so handlers can translate them to HTTP codes.
package service

import (
	"fmt"
	"strings"

	"github.com/yoshimomax/sysmlmodeler/internal/manager"
	"github.com/yoshimomax/sysmlmodeler/pkg/codec"
	"github.com/yoshimomax/sysmlmodeler/pkg/common/errors"
	"github.com/yoshimomax/sysmlmodeler/pkg/export"
	"github.com/yoshimomax/sysmlmodeler/pkg/store"
	"github.com/yoshimomax/sysmlmodeler/pkg/validation"
)

// ProjectStoreManager interface abstraction
type ProjectStoreManager interface {
	GetStore(projectID string) (*store.Store, error)
	ListProjects() ([]manager.ProjectMetadata, error)
}

// ModelService handles model persistence, validation and export.
type ModelService struct {
	manager ProjectStoreManager
}

// NewModelService creates a new ModelService.
func NewModelService(manager ProjectStoreManager) *ModelService {
	return &ModelService{manager: manager}
}

// ListProjects returns a list of available projects.
func (s *ModelService) ListProjects() ([]manager.ProjectMetadata, error) {
	return s.manager.ListProjects()
}

// ListModels returns summaries of the models stored in a project.
func (s *ModelService) ListModels(projectID string) ([]store.ModelInfo, error) {
	st, err := s.getStore(projectID)
	if err != nil {
		return nil, err
	}
	infos, err := st.ListModels()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return infos, nil
}

// GetModelRecord returns the stored encoded record for one model.
func (s *ModelService) GetModelRecord(projectID, modelID string) ([]byte, error) {
	st, err := s.getStore(projectID)
	if err != nil {
		return nil, err
	}
	data, err := st.LoadRecord(modelID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return data, nil
}

// PutModelRecord stores an encoded record, rejecting payloads the codec
// cannot reconstruct.
func (s *ModelService) PutModelRecord(projectID string, data []byte) (string, error) {
	m, err := codec.DecodeModel(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrBadRecord, err)
	}
	st, err := s.getStore(projectID)
	if err != nil {
		return "", err
	}
	if err := st.SaveModel(m); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return m.ID, nil
}

// DeleteModel removes a stored model.
func (s *ModelService) DeleteModel(projectID, modelID string) error {
	st, err := s.getStore(projectID)
	if err != nil {
		return err
	}
	found, err := st.DeleteModel(modelID)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	if !found {
		return fmt.Errorf("%w: model %s", errors.ErrNotFound, modelID)
	}
	return nil
}

// ValidateStored runs the constraint engine over a stored model.
func (s *ModelService) ValidateStored(projectID, modelID string) ([]validation.Issue, error) {
	st, err := s.getStore(projectID)
	if err != nil {
		return nil, err
	}
	m, err := st.LoadModel(modelID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return validation.ValidateModel(m), nil
}

// ValidateRecord runs the constraint engine over a posted record without
// storing it.
func (s *ModelService) ValidateRecord(data []byte) ([]validation.Issue, error) {
	m, err := codec.DecodeModel(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrBadRecord, err)
	}
	return validation.ValidateModel(m), nil
}

// ExportGraph loads a stored model and transforms it to the diagram graph.
func (s *ModelService) ExportGraph(projectID, modelID string) (*export.D3Graph, error) {
	st, err := s.getStore(projectID)
	if err != nil {
		return nil, err
	}
	m, err := st.LoadModel(modelID)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	return export.Transform(m), nil
}

// Helper to get store with error mapping
func (s *ModelService) getStore(projectID string) (*store.Store, error) {
	if projectID == "" {
		return nil, fmt.Errorf("%w: missing project ID", errors.ErrInvalidInput)
	}
	st, err := s.manager.GetStore(projectID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("%w: %v", errors.ErrNotFound, err)
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return st, nil
}

func mapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "not found") {
		return fmt.Errorf("%w: %v", errors.ErrNotFound, err)
	}
	return fmt.Errorf("%w: %v", errors.ErrInternal, err)
}
