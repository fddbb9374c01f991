package formbuilder

import (
	"feedback-platform/backend/internal/form/shared"

	"github.com/google/uuid"
)

type Option func(*FactoryParams)

type FactoryParams struct {
	Title       string
	Description string
	Questions   []shared.Question
	CreatedBy   uuid.UUID
	PublicID    uuid.UUID
}

func WithTitle(title string) Option {
	return func(p *FactoryParams) { p.Title = title }
}

func WithDescription(description string) Option {
	return func(p *FactoryParams) { p.Description = description }
}

func WithQuestions(questions ...shared.Question) Option {
	return func(p *FactoryParams) { p.Questions = questions }
}

func WithOwner(userID uuid.UUID) Option {
	return func(p *FactoryParams) { p.CreatedBy = userID }
}

func WithPublicID(publicID uuid.UUID) Option {
	return func(p *FactoryParams) { p.PublicID = publicID }
}
