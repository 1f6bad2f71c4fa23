package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"docview/internal/model"
	"docview/internal/pipeline"
)

var (
	ErrSuperseded = errors.New("attempt superseded by a newer submission")
	ErrNoDocument = errors.New("no document loaded")
)

// Processor runs one file through the pipeline. *pipeline.Assembler
// implements it.
type Processor interface {
	ProcessObserved(ctx context.Context, file model.File, observe pipeline.StateObserver) (*model.ContentModel, error)
}

// Status describes the latest attempt of the session.
type Status struct {
	AttemptID uint64         `json:"attempt_id"`
	State     pipeline.State `json:"state"`
	Name      string         `json:"name,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// ViewerService holds the single document currently being viewed.
type ViewerService interface {
	// View replaces the current document with file. Only the most recent
	// submission is ever stored: an attempt overtaken by a newer View or a
	// Reset returns ErrSuperseded and its result is discarded.
	View(ctx context.Context, file model.File) (*model.ContentModel, error)

	// Current returns the stored document or ErrNoDocument.
	Current(ctx context.Context) (*model.ContentModel, error)

	// Reset empties the session and supersedes any attempt in flight.
	Reset(ctx context.Context)

	// Status reports the latest attempt.
	Status(ctx context.Context) Status
}

// viewerService is a concrete implementation of ViewerService.
type viewerService struct {
	proc   Processor
	logger *slog.Logger

	mu      sync.Mutex
	latest  uint64
	current *model.ContentModel
	status  Status
}

// NewViewerService constructs a ViewerService around proc.
func NewViewerService(proc Processor, logger *slog.Logger) ViewerService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &viewerService{proc: proc, logger: logger}
}

func (s *viewerService) View(ctx context.Context, file model.File) (*model.ContentModel, error) {
	s.mu.Lock()
	s.latest++
	id := s.latest
	s.current = nil
	s.status = Status{AttemptID: id, State: pipeline.StateIdle, Name: file.Name}
	s.mu.Unlock()

	observe := func(st pipeline.State) {
		s.mu.Lock()
		if s.latest == id {
			s.status.State = st
		}
		s.mu.Unlock()
	}

	cm, err := s.proc.ProcessObserved(ctx, file, observe)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.latest != id {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "attempt_superseded",
			slog.String("component", "viewer"),
			slog.Uint64("attempt_id", id),
			slog.Uint64("latest_attempt_id", s.latest),
			slog.String("name", file.Name),
		)
		return nil, ErrSuperseded
	}
	if err != nil {
		s.status.Error = pipeline.UserMessage(err)
		return nil, err
	}
	s.current = cm
	return cm, nil
}

func (s *viewerService) Current(ctx context.Context) (*model.ContentModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil, ErrNoDocument
	}
	return s.current, nil
}

func (s *viewerService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.current = nil
	s.status = Status{AttemptID: s.latest, State: pipeline.StateIdle}
}

func (s *viewerService) Status(ctx context.Context) Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
