package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"tasknotes-be/internal/entity"
	"tasknotes-be/internal/repository/contract"
	"tasknotes-be/internal/repository/specification"

	"github.com/google/uuid"
)

// NoteRepository is an in-memory NoteRepository that interprets the same
// specification structs as the GORM implementation. Used by unit tests;
// never wired into the request path.
type NoteRepository struct {
	mu    sync.RWMutex
	notes map[uuid.UUID]*entity.Note
	order []uuid.UUID
}

func NewNoteRepository() *NoteRepository {
	return &NoteRepository{
		notes: make(map[uuid.UUID]*entity.Note),
	}
}

func (r *NoteRepository) Create(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[note.Id]; exists {
		return fmt.Errorf("duplicate note id %s", note.Id)
	}
	r.notes[note.Id] = note.Clone()
	r.order = append(r.order, note.Id)
	return nil
}

func (r *NoteRepository) Update(ctx context.Context, note *entity.Note) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.notes[note.Id]; !exists {
		return fmt.Errorf("note %s does not exist", note.Id)
	}
	r.notes[note.Id] = note.Clone()
	return nil
}

func (r *NoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.notes, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *NoteRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Note, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all[0], nil
}

func (r *NoteRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Note, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entity.Note
	boardOrder := false

	for _, id := range r.order {
		n := r.notes[id]
		matched := true
		for _, spec := range specs {
			if _, ok := spec.(specification.TaskBoardOrder); ok {
				boardOrder = true
				continue
			}
			ok, err := noteMatches(spec, n)
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			result = append(result, n.Clone())
		}
	}

	if boardOrder {
		sort.SliceStable(result, func(i, j int) bool {
			if result[i].IsPinned != result[j].IsPinned {
				return result[i].IsPinned
			}
			return result[i].Priority.Rank() < result[j].Priority.Rank()
		})
	}
	return result, nil
}

func (r *NoteRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	all, err := r.FindAll(ctx, specs...)
	if err != nil {
		return 0, err
	}
	return int64(len(all)), nil
}

func noteMatches(spec specification.Specification, n *entity.Note) (bool, error) {
	switch s := spec.(type) {
	case specification.ByID:
		return n.Id == s.ID, nil
	case specification.ByIDs:
		for _, id := range s.IDs {
			if n.Id == id {
				return true, nil
			}
		}
		return false, nil
	case specification.OwnedBy:
		return n.UserId == s.UserID, nil
	case specification.NoteSearchQuery:
		q := strings.ToLower(s.Query)
		if strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q) {
			return true, nil
		}
		for _, tag := range n.Tags {
			if strings.Contains(strings.ToLower(tag), q) {
				return true, nil
			}
		}
		return false, nil
	case specification.OrderBy:
		// Insertion order already matches created_on for this store.
		return true, nil
	default:
		return false, fmt.Errorf("memory note repository: unsupported specification %T", spec)
	}
}

var _ contract.NoteRepository = (*NoteRepository)(nil)
