package specification

import "gorm.io/gorm"

// NoteSearchQuery matches a case-insensitive substring against title,
// content, or any tag (OR semantics).
type NoteSearchQuery struct {
	Query string
}

func (s NoteSearchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Query + "%"
	// Tags live in a jsonb array; the text cast is enough for substring
	// matching with ILIKE.
	return db.Where("title ILIKE ? OR content ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern)
}

// TaskBoardOrder sorts pinned notes first, then by priority (High before
// Medium before Low), with insertion order breaking ties.
type TaskBoardOrder struct{}

func (s TaskBoardOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.
		Order("is_pinned DESC").
		Order("CASE priority WHEN 'High' THEN 0 WHEN 'Medium' THEN 1 ELSE 2 END").
		Order("created_on ASC")
}
