package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"tasknotes-be/internal/dto"
	"tasknotes-be/internal/entity"
	"tasknotes-be/internal/pkg/apperror"
	"tasknotes-be/internal/pkg/logger"
	"tasknotes-be/internal/repository/specification"
	"tasknotes-be/internal/repository/unitofwork"
	"tasknotes-be/pkg/events"
	pktNats "tasknotes-be/pkg/nats"

	"github.com/google/uuid"
)

type INoteService interface {
	CreateNote(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	DeleteNote(ctx context.Context, userId, noteId uuid.UUID) error
	SetPinned(ctx context.Context, userId, noteId uuid.UUID, isPinned bool) (*dto.NoteResponse, error)
	ListNotes(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error)
	SearchNotes(ctx context.Context, userId uuid.UUID, query string) ([]dto.NoteResponse, error)
}

type noteService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	requireContent   bool
	logger           logger.ILogger
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	requireContent bool,
	log logger.ILogger,
) INoteService {
	return &noteService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		requireContent:   requireContent,
		logger:           log,
	}
}

// normalizeTags trims whitespace and drops empty entries.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

// resolveAssignees keeps only ids that belong to existing users. Unknown ids
// are dropped silently so a stale picker selection never fails the request.
func (s *noteService) resolveAssignees(ctx context.Context, uow unitofwork.UnitOfWork, ids []uuid.UUID) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
}

func (s *noteService) CreateNote(ctx context.Context, userId uuid.UUID, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("Please add a task")
	}
	if s.requireContent && strings.TrimSpace(req.Content) == "" {
		return nil, apperror.Validation("Please add content")
	}

	status := entity.StatusTodo
	if req.Status != "" {
		parsed, err := entity.ParseStatus(req.Status)
		if err != nil {
			return nil, apperror.Validation("Invalid status")
		}
		status = parsed
	}

	priority := entity.PriorityMedium
	if req.Priority != "" {
		parsed, err := entity.ParsePriority(req.Priority)
		if err != nil {
			return nil, apperror.Validation("Invalid priority")
		}
		priority = parsed
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	assignees, err := s.resolveAssignees(ctx, uow, req.AssignedUsers)
	if err != nil {
		return nil, err
	}

	isComplete := req.IsComplete || status == entity.StatusComplete
	var completedTime *time.Time
	if isComplete {
		status = entity.StatusComplete
		now := time.Now()
		completedTime = &now
	}

	note := &entity.Note{
		Id:            uuid.New(),
		Title:         title,
		Content:       req.Content,
		Tags:          normalizeTags(req.Tags),
		IsPinned:      false,
		IsComplete:    isComplete,
		Status:        status,
		Priority:      priority,
		AssignedUsers: assigneeIds(assignees),
		UserId:        userId,
		CreatedOn:     time.Now(),
		CompletedTime: completedTime,
	}

	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	actor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	actorName := ""
	if actor != nil {
		actorName = actor.FullName
	}

	s.notifyAssignees(ctx, note, assignees, userId, actorName)
	s.publishLifecycleEvent(ctx, events.TaskAssigned, note)

	return s.toResponse(ctx, uow, note)
}

func (s *noteService) UpdateNote(ctx context.Context, userId uuid.UUID, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	if !req.HasChanges() {
		return nil, apperror.Validation("No fields to update")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Task not found or unauthorized")
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, apperror.Validation("Please add a task")
		}
		note.Title = title
	}
	if req.Content != nil {
		if s.requireContent && strings.TrimSpace(*req.Content) == "" {
			return nil, apperror.Validation("Please add content")
		}
		note.Content = *req.Content
	}
	if req.Tags != nil {
		note.Tags = normalizeTags(*req.Tags)
	}
	if req.IsPinned != nil {
		note.IsPinned = *req.IsPinned
	}
	if req.Status != nil {
		parsed, err := entity.ParseStatus(*req.Status)
		if err != nil {
			return nil, apperror.Validation("Invalid status")
		}
		note.Status = parsed
	}
	if req.Priority != nil {
		parsed, err := entity.ParsePriority(*req.Priority)
		if err != nil {
			return nil, apperror.Validation("Invalid priority")
		}
		note.Priority = parsed
	}

	var assignees []*entity.User
	if req.AssignedUsers != nil {
		assignees, err = s.resolveAssignees(ctx, uow, *req.AssignedUsers)
		if err != nil {
			return nil, err
		}
		note.AssignedUsers = assigneeIds(assignees)
	}

	// Completion is driven by the explicit flag when present, otherwise by
	// the requested status. Status and timestamp are kept coherent with the
	// resulting flag.
	wasComplete := note.IsComplete
	complete := note.Status == entity.StatusComplete
	if req.IsComplete != nil {
		complete = *req.IsComplete
	}
	note.IsComplete = complete
	if complete {
		note.Status = entity.StatusComplete
		if !wasComplete || note.CompletedTime == nil {
			now := time.Now()
			note.CompletedTime = &now
		}
	} else {
		if note.Status == entity.StatusComplete {
			note.Status = entity.StatusTodo
		}
		note.CompletedTime = nil
	}

	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	actor, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	actorName := ""
	if actor != nil {
		actorName = actor.FullName
	}

	if !wasComplete && note.IsComplete {
		s.notifyCompletion(ctx, note)
		s.publishLifecycleEvent(ctx, events.TaskCompleted, note)
	}
	if req.AssignedUsers != nil && len(assignees) > 0 {
		s.notifyUpdated(ctx, note, assignees, userId, actorName)
	}

	return s.toResponse(ctx, uow, note)
}

func (s *noteService) DeleteNote(ctx context.Context, userId, noteId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return err
	}
	if note == nil {
		return apperror.NotFound("Task not found or unauthorized")
	}

	if err := uow.NoteRepository().Delete(ctx, note.Id); err != nil {
		return err
	}

	s.publishLifecycleEvent(ctx, events.TaskDeleted, note)
	return nil
}

func (s *noteService) SetPinned(ctx context.Context, userId, noteId uuid.UUID, isPinned bool) (*dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: noteId}, specification.OwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NotFound("Task not found or unauthorized")
	}

	note.IsPinned = isPinned
	if err := uow.NoteRepository().Update(ctx, note); err != nil {
		return nil, err
	}

	return s.toResponse(ctx, uow, note)
}

func (s *noteService) ListNotes(ctx context.Context, userId uuid.UUID) ([]dto.NoteResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx, specification.OwnedBy{UserID: userId}, specification.TaskBoardOrder{})
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, uow, notes)
}

func (s *noteService) SearchNotes(ctx context.Context, userId uuid.UUID, query string) ([]dto.NoteResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.Validation("Search query is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	notes, err := uow.NoteRepository().FindAll(ctx,
		specification.OwnedBy{UserID: userId},
		specification.NoteSearchQuery{Query: query},
		specification.TaskBoardOrder{},
	)
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, uow, notes)
}

func assigneeIds(users []*entity.User) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.Id)
	}
	return ids
}

// notifyAssignees queues one assignment email per assignee. Queueing is fire
// and forget; a publish failure is logged and the request proceeds.
func (s *noteService) notifyAssignees(ctx context.Context, note *entity.Note, assignees []*entity.User, actorId uuid.UUID, actorName string) {
	for _, assignee := range assignees {
		if assignee.Id == actorId {
			continue
		}
		s.queueNotification(ctx, dto.NotificationMessage{
			Kind:        dto.NotificationTaskAssigned,
			RecipientId: assignee.Id,
			TaskId:      note.Id,
			TaskTitle:   note.Title,
			ActorName:   actorName,
			CreatedOn:   note.CreatedOn,
		})
	}
}

func (s *noteService) notifyUpdated(ctx context.Context, note *entity.Note, assignees []*entity.User, actorId uuid.UUID, actorName string) {
	for _, assignee := range assignees {
		if assignee.Id == actorId {
			continue
		}
		s.queueNotification(ctx, dto.NotificationMessage{
			Kind:        dto.NotificationTaskUpdated,
			RecipientId: assignee.Id,
			TaskId:      note.Id,
			TaskTitle:   note.Title,
			ActorName:   actorName,
			CreatedOn:   note.CreatedOn,
		})
	}
}

func (s *noteService) notifyCompletion(ctx context.Context, note *entity.Note) {
	s.queueNotification(ctx, dto.NotificationMessage{
		Kind:          dto.NotificationTaskCompleted,
		RecipientId:   note.UserId,
		TaskId:        note.Id,
		TaskTitle:     note.Title,
		CreatedOn:     note.CreatedOn,
		CompletedTime: note.CompletedTime,
	})
}

func (s *noteService) queueNotification(ctx context.Context, msg dto.NotificationMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		s.logger.Error("NoteService", "Failed to marshal notification", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := s.publisherService.Publish(ctx, payload); err != nil {
		s.logger.Error("NoteService", "Failed to queue notification", map[string]interface{}{
			"kind":  string(msg.Kind),
			"error": err.Error(),
		})
	}
}

// publishLifecycleEvent mirrors task changes onto the NATS bus for external
// consumers. The publisher is nil when NATS is not configured.
func (s *noteService) publishLifecycleEvent(ctx context.Context, eventType string, note *entity.Note) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.NewTaskEvent(eventType, map[string]interface{}{
		"task_id":  note.Id.String(),
		"title":    note.Title,
		"owner_id": note.UserId.String(),
		"status":   string(note.Status),
	})
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("NoteService", "Failed to publish lifecycle event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *noteService) toResponse(ctx context.Context, uow unitofwork.UnitOfWork, note *entity.Note) (*dto.NoteResponse, error) {
	responses, err := s.toResponses(ctx, uow, []*entity.Note{note})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// toResponses expands assignee ids into directory entries with a single
// batched lookup across all notes.
func (s *noteService) toResponses(ctx context.Context, uow unitofwork.UnitOfWork, notes []*entity.Note) ([]dto.NoteResponse, error) {
	idSet := make(map[uuid.UUID]struct{})
	for _, note := range notes {
		for _, id := range note.AssignedUsers {
			idSet[id] = struct{}{}
		}
	}

	byId := make(map[uuid.UUID]dto.DirectoryUserDTO, len(idSet))
	if len(idSet) > 0 {
		ids := make([]uuid.UUID, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		users, err := uow.UserRepository().FindAll(ctx, specification.ByIDs{IDs: ids})
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			byId[user.Id] = dto.DirectoryUserDTO{
				Id:       user.Id,
				FullName: user.FullName,
				Email:    user.Email,
			}
		}
	}

	responses := make([]dto.NoteResponse, 0, len(notes))
	for _, note := range notes {
		assigned := make([]dto.DirectoryUserDTO, 0, len(note.AssignedUsers))
		for _, id := range note.AssignedUsers {
			if u, ok := byId[id]; ok {
				assigned = append(assigned, u)
			}
		}
		responses = append(responses, dto.NoteResponse{
			Id:            note.Id,
			Title:         note.Title,
			Content:       note.Content,
			Tags:          append([]string{}, note.Tags...),
			IsPinned:      note.IsPinned,
			IsComplete:    note.IsComplete,
			Status:        string(note.Status),
			Priority:      string(note.Priority),
			AssignedUsers: assigned,
			CreatedOn:     note.CreatedOn,
			CompletedTime: note.CompletedTime,
		})
	}
	return responses, nil
}
