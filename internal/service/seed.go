package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"dataroom/internal/model"
	"dataroom/internal/repository"
	"dataroom/internal/storage"
)

type seedFile struct {
	name        string
	description string
}

type seedFolder struct {
	name     string
	files    []seedFile
	children []seedFolder
}

// demoTree is the fixed example dataroom created for demo environments.
var demoTree = []seedFolder{
	{
		name:  "Financials",
		files: []seedFile{{"Balance Sheet.pdf", "Consolidated balance sheet snapshot"}},
		children: []seedFolder{
			{
				name: "Quarterly Reports",
				files: []seedFile{
					{"Q1 2023 Summary.pdf", "Highlights from the first quarter of 2023"},
					{"Q2 2023 Summary.pdf", "Key performance indicators for Q2 2023"},
				},
			},
			{
				name: "Board Decks",
				files: []seedFile{
					{"April Board Meeting.pdf", "Slides prepared for the April board review"},
				},
			},
		},
	},
	{
		name: "Legal",
		files: []seedFile{
			{"NDA Template.pdf", "Mutual NDA template used with prospective partners"},
			{"Master Service Agreement.pdf", "Standard MSA covering service delivery terms"},
		},
	},
	{
		name: "Product",
		children: []seedFolder{
			{
				name: "Roadmaps",
				files: []seedFile{
					{"2024 Product Roadmap.pdf", "Upcoming product milestones and releases"},
				},
			},
		},
	},
}

// Seeder populates the default dataroom with the demo tree. Every step is a
// lookup-then-create, so repeated runs change nothing: existing folders and
// files are reused, and a file record whose blob went missing gets its blob
// re-written and its size refreshed.
type Seeder struct {
	folders repository.FolderRepository
	files   repository.FileRepository
	store   storage.Storage
}

// NewSeeder constructs a Seeder.
func NewSeeder(folders repository.FolderRepository, files repository.FileRepository, store storage.Storage) *Seeder {
	return &Seeder{folders: folders, files: files, store: store}
}

// Seed ensures the default root exists and the demo tree hangs under it.
func (s *Seeder) Seed(ctx context.Context) error {
	root, err := ensureDefaultRoot(ctx, s.folders)
	if err != nil {
		return fmt.Errorf("ensure default root: %w", err)
	}
	for _, sub := range demoTree {
		if err := s.seedFolder(ctx, root.ID, sub); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) seedFolder(ctx context.Context, parentID string, node seedFolder) error {
	folder, err := s.ensureFolder(ctx, parentID, node.name)
	if err != nil {
		return err
	}
	for _, f := range node.files {
		if err := s.ensureFile(ctx, folder.ID, f.name, f.description); err != nil {
			return err
		}
	}
	for _, child := range node.children {
		if err := s.seedFolder(ctx, folder.ID, child); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) ensureFolder(ctx context.Context, parentID, name string) (*model.Folder, error) {
	existing, err := s.folders.FindChildByName(ctx, parentID, name)
	if err != nil {
		return nil, fmt.Errorf("find folder %q: %w", name, err)
	}
	if existing != nil {
		return existing, nil
	}
	return s.folders.Create(ctx, &model.Folder{
		ID:        uuid.NewString(),
		Name:      name,
		ParentID:  &parentID,
		CreatedAt: time.Now().UTC(),
	})
}

func (s *Seeder) ensureFile(ctx context.Context, folderID, name, description string) error {
	existing, err := s.files.FindByFolderAndName(ctx, folderID, name)
	if err != nil {
		return fmt.Errorf("find file %q: %w", name, err)
	}
	if existing != nil {
		// Restore the blob if it disappeared; the record stays.
		present, err := s.store.Exists(ctx, existing.StoredName)
		if err != nil {
			return fmt.Errorf("check blob %s: %w", existing.StoredName, err)
		}
		if present {
			return nil
		}
		info, err := s.writeDemoPDF(ctx, existing.StoredName, name, description)
		if err != nil {
			return err
		}
		return s.files.UpdateSize(ctx, existing.ID, info.Size)
	}

	storedName := uuid.New().String() + ".pdf"
	info, err := s.writeDemoPDF(ctx, storedName, name, description)
	if err != nil {
		return err
	}
	_, err = s.files.Create(ctx, &model.File{
		ID:         uuid.NewString(),
		Name:       name,
		StoredName: storedName,
		MimeType:   MimeTypePDF,
		SizeBytes:  info.Size,
		CreatedAt:  time.Now().UTC(),
		FolderID:   folderID,
	})
	return err
}

func (s *Seeder) writeDemoPDF(ctx context.Context, storedName, title, description string) (storage.ObjectInfo, error) {
	data := demoPDF(title, description)
	info, err := s.store.Put(ctx, storedName, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: MimeTypePDF,
	})
	if err != nil {
		return storage.ObjectInfo{}, fmt.Errorf("write blob %s: %w", storedName, err)
	}
	return info, nil
}

// demoPDF renders a minimal single-page PDF showing the title and
// description. Enough structure for viewers to open; content fidelity does
// not matter for demo data.
func demoPDF(title, description string) []byte {
	stream := fmt.Sprintf("BT\n/F1 24 Tf\n72 720 Td\n(%s) Tj\n0 -36 Td\n/F1 14 Tf\n(%s) Tj\nET", title, description)
	return []byte(fmt.Sprintf(`%%PDF-1.4
1 0 obj
<< /Type /Catalog /Pages 2 0 R >>
endobj
2 0 obj
<< /Type /Pages /Kids [3 0 R] /Count 1 >>
endobj
3 0 obj
<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R >>
endobj
4 0 obj
<< /Length %d >>
stream
%s
endstream
endobj
5 0 obj
<< /Type /Info /Title (%s) >>
endobj
trailer
<< /Size 6 /Root 1 0 R /Info 5 0 R >>
%%%%EOF
`, len(stream), stream, title))
}
