package metadata

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/files-manager/files-service/internal/models"
)

// Memory is an in-process Store used in tests and single-node development.
type Memory struct {
	mu    sync.RWMutex
	files map[string]models.File
	seq   int64
}

func NewMemory() *Memory {
	return &Memory{files: make(map[string]models.File)}
}

func (m *Memory) CreateFile(_ context.Context, file *models.File) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	if file.ParentID == "" {
		file.ParentID = models.RootParent
	}
	if file.CreatedAt.IsZero() {
		file.CreatedAt = time.Now().UTC()
	}
	// Wall clocks can collide within a test; a sequence keeps creation
	// order strict.
	m.seq++
	file.CreatedAt = file.CreatedAt.Add(time.Duration(m.seq))

	m.files[file.ID] = *file
	return nil
}

func (m *Memory) GetFile(_ context.Context, id string) (*models.File, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	file, ok := m.files[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &file, nil
}

func (m *Memory) GetOwnedFile(ctx context.Context, id, ownerID string) (*models.File, error) {
	file, err := m.GetFile(ctx, id)
	if err != nil {
		return nil, err
	}
	if file.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	return file, nil
}

func (m *Memory) ListFiles(_ context.Context, filter ListFilter) ([]*models.File, error) {
	m.mu.RLock()
	matched := make([]models.File, 0, len(m.files))
	for _, file := range m.files {
		if file.OwnerID != filter.OwnerID {
			continue
		}
		if filter.ParentID != nil && file.ParentID != *filter.ParentID {
			continue
		}
		matched = append(matched, file)
	}
	m.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	page := filter.Page
	if page < 0 {
		page = 0
	}
	start := page * PageSize
	if start >= len(matched) {
		return []*models.File{}, nil
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}

	result := make([]*models.File, 0, end-start)
	for i := start; i < end; i++ {
		file := matched[i]
		result = append(result, &file)
	}
	return result, nil
}

func (m *Memory) SetPublic(_ context.Context, id, ownerID string, public bool) (*models.File, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	file, ok := m.files[id]
	if !ok || file.OwnerID != ownerID {
		return nil, ErrNotFound
	}
	file.IsPublic = public
	m.files[id] = file
	return &file, nil
}

func (m *Memory) CountFiles(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.files)), nil
}

func (m *Memory) CountOwners(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owners := make(map[string]struct{})
	for _, file := range m.files {
		owners[file.OwnerID] = struct{}{}
	}
	return int64(len(owners)), nil
}

func (m *Memory) Ping(context.Context) error {
	return nil
}
