package service

import (
	"context"
	"strings"

	"dataroom/internal/model"
	"dataroom/internal/repository"
)

// SearchLimit caps each result list independently.
const SearchLimit = 50

// SearchResult holds folder and file matches as independent lists.
type SearchResult struct {
	Folders []model.Folder `json:"folders"`
	Files   []model.File   `json:"files"`
}

// SearchService matches folder and file names by case-insensitive substring,
// across all dataroom trees, without ranking.
type SearchService interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

type searchService struct {
	folders repository.FolderRepository
	files   repository.FileRepository
}

// NewSearchService constructs a new SearchService.
func NewSearchService(folders repository.FolderRepository, files repository.FileRepository) SearchService {
	return &searchService{folders: folders, files: files}
}

func (s *searchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	// A blank query is not an error; it simply matches nothing.
	if query == "" {
		return &SearchResult{Folders: []model.Folder{}, Files: []model.File{}}, nil
	}

	folders, err := s.folders.SearchByName(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	files, err := s.files.SearchByName(ctx, query, SearchLimit)
	if err != nil {
		return nil, err
	}
	return &SearchResult{Folders: folders, Files: files}, nil
}
