package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"haulcentral/internal/models"
)

type DocumentService struct {
	LoadRepo LoadStore
	Store    ObjectUploader
}

// Upload stores a document for a load the caller posted.
func (s *DocumentService) Upload(ctx context.Context, userID, loadID, filename, contentType string, body []byte) (models.LoadDocument, error) {
	if s.Store == nil {
		return models.LoadDocument{}, models.ErrStorageDisabled
	}
	load, err := s.LoadRepo.GetLoadByID(ctx, loadID)
	if err != nil {
		return models.LoadDocument{}, err
	}
	if load.UserID != userID {
		return models.LoadDocument{}, models.ErrNotOwner
	}

	key := DocumentKey(load.ID, uuid.NewString(), filename)
	url, err := s.Store.Upload(ctx, key, body, contentType)
	if err != nil {
		return models.LoadDocument{}, fmt.Errorf("upload document: %w", err)
	}
	return models.LoadDocument{LoadID: load.ID, Key: key, URL: url}, nil
}

// DocumentKey builds loads/<loadID>/<id>-<name> with the name reduced to a
// safe base name.
func DocumentKey(loadID, id, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	if name == "" || name == "." || name == "/" {
		name = "document"
	}
	return fmt.Sprintf("loads/%s/%s-%s", loadID, id, name)
}
