package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/puntolimpio/lavanderia-api/internal/application/dto"
	"github.com/puntolimpio/lavanderia-api/internal/domain"
	"github.com/puntolimpio/lavanderia-api/internal/domain/entity"
	"github.com/puntolimpio/lavanderia-api/internal/domain/repository"
	"github.com/puntolimpio/lavanderia-api/internal/infrastructure/localstore"
	"github.com/puntolimpio/lavanderia-api/pkg/logger"
	"github.com/puntolimpio/lavanderia-api/pkg/normalize"
)

// FeedbackUseCase casos de uso de comentarios de clientes. El alta es
// tolerante a cortes: sin DB el comentario se encola y SyncAll lo sube después.
type FeedbackUseCase struct {
	feedbackRepo repository.FeedbackRepository
	pending      PendingWriter
	log          *logger.Logger
}

// NewFeedbackUseCase construye el caso de uso. pending puede ser nil.
func NewFeedbackUseCase(feedbackRepo repository.FeedbackRepository, pending PendingWriter, log *logger.Logger) *FeedbackUseCase {
	return &FeedbackUseCase{feedbackRepo: feedbackRepo, pending: pending, log: log}
}

// Create registra un comentario con rating de 1 a 5 estrellas.
func (uc *FeedbackUseCase) Create(ctx context.Context, in dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	if in.ClienteNombre == "" || in.Rating < 1 || in.Rating > 5 {
		return nil, domain.ErrInvalidInput
	}
	fb := &entity.Feedback{
		ID:            uuid.New().String(),
		ClienteNombre: in.ClienteNombre,
		Telefono:      normalize.Phone(in.Telefono),
		Rating:        in.Rating,
		Comentario:    in.Comentario,
		CreatedAt:     time.Now(),
	}
	if err := uc.feedbackRepo.Create(fb); err != nil {
		if errors.Is(err, domain.ErrDuplicate) || uc.pending == nil {
			return nil, err
		}
		if qerr := uc.pending.Append(localstore.EntidadFeedback, fb); qerr != nil {
			return nil, err
		}
		uc.log.Warn().Err(err).Str("feedback_id", fb.ID).
			Msg("DB no disponible, comentario encolado para sincronizar")
		return toFeedbackResponse(fb), nil
	}
	return toFeedbackResponse(fb), nil
}

// List lista comentarios paginados, más nuevos primero.
func (uc *FeedbackUseCase) List(ctx context.Context, limit, offset int) ([]*dto.FeedbackResponse, error) {
	list, err := uc.feedbackRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FeedbackResponse, 0, len(list))
	for _, fb := range list {
		out = append(out, toFeedbackResponse(fb))
	}
	return out, nil
}

func toFeedbackResponse(fb *entity.Feedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:            fb.ID,
		ClienteNombre: fb.ClienteNombre,
		Telefono:      fb.Telefono,
		Rating:        fb.Rating,
		Comentario:    fb.Comentario,
		CreatedAt:     fb.CreatedAt,
	}
}
