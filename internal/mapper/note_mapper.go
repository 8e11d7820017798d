package mapper

import (
	"tasknotes-be/internal/entity"
	"tasknotes-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	assigned := make([]uuid.UUID, 0, len(n.AssignedUsers))
	for _, raw := range n.AssignedUsers {
		// Rows predating the assignment migration may hold junk; skip them.
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		assigned = append(assigned, id)
	}

	return &entity.Note{
		Id:            n.Id,
		Title:         n.Title,
		Content:       n.Content,
		Tags:          append([]string(nil), n.Tags...),
		IsPinned:      n.IsPinned,
		IsComplete:    n.IsComplete,
		Status:        entity.TaskStatus(n.Status),
		Priority:      entity.TaskPriority(n.Priority),
		AssignedUsers: assigned,
		UserId:        n.UserId,
		CreatedOn:     n.CreatedOn,
		CompletedTime: n.CompletedTime,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	assigned := make([]string, len(n.AssignedUsers))
	for i, id := range n.AssignedUsers {
		assigned[i] = id.String()
	}

	return &model.Note{
		Id:            n.Id,
		Title:         n.Title,
		Content:       n.Content,
		Tags:          datatypes.JSONSlice[string](append([]string(nil), n.Tags...)),
		IsPinned:      n.IsPinned,
		IsComplete:    n.IsComplete,
		Status:        string(n.Status),
		Priority:      string(n.Priority),
		AssignedUsers: datatypes.JSONSlice[string](assigned),
		UserId:        n.UserId,
		CreatedOn:     n.CreatedOn,
		CompletedTime: n.CompletedTime,
	}
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}
