package usecase

import (
	"context"

	"go.uber.org/zap"
)

const (
	PropertyCreatedSubject = "property.created"
	PropertyUpdatedSubject = "property.updated"
	PropertyDeletedSubject = "property.deleted"

	GalleryImageCreatedSubject  = "gallery.image.created"
	GalleryImageUpdatedSubject  = "gallery.image.updated"
	GalleryImageDeletedSubject  = "gallery.image.deleted"
	GalleryImageReplacedSubject = "gallery.image.replaced"

	BlogCreatedSubject = "blog.created"
	BlogUpdatedSubject = "blog.updated"
	BlogDeletedSubject = "blog.deleted"

	InquiryCreatedSubject = "inquiry.created"
)

type EventPublisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

type DeletedEventPayload struct {
	ID string `json:"id"`
}

// publishEvent is a best-effort publish; a nil publisher disables events.
func publishEvent(ctx context.Context, pub EventPublisher, logger *zap.Logger, subject string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, subject, payload); err != nil {
		logger.Warn("Failed to publish event", zap.String("subject", subject), zap.Error(err))
	}
}
