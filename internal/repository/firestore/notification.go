package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type notificationDoc struct {
	CustomerID string            `firestore:"customer_id"`
	Title      string            `firestore:"title"`
	Message    string            `firestore:"message"`
	Attributes map[string]string `firestore:"attributes"`
	Read       bool              `firestore:"read"`
	CreatedAt  time.Time         `firestore:"created_at"`
}

type notificationRepository struct {
	client *firestore.Client
}

func NewNotificationRepository(client *firestore.Client) repository.NotificationRepository {
	return &notificationRepository{client: client}
}

func (r *notificationRepository) Create(ctx context.Context, note *domain.Notification) error {
	logger.FirestoreCall("Create", colNotifications, "notification_id", note.ID)
	note.CreatedAt = time.Now().UTC()
	_, err := r.client.Collection(colNotifications).Doc(note.ID).Create(ctx, &notificationDoc{
		CustomerID: note.CustomerID,
		Title:      note.Title,
		Message:    note.Message,
		Attributes: note.Attributes,
		Read:       note.Read,
		CreatedAt:  note.CreatedAt,
	})
	logger.FirestoreResult("Create", colNotifications, err, "notification_id", note.ID)
	return err
}

func (r *notificationRepository) List(ctx context.Context, customerID string, limit int) ([]domain.Notification, error) {
	q := r.client.Collection(colNotifications).Query
	if customerID != "" {
		q = q.Where("customer_id", "==", customerID)
	}
	q = q.OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	it := q.Documents(ctx)
	defer it.Stop()

	var notes []domain.Notification
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc notificationDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		notes = append(notes, domain.Notification{
			ID:         snap.Ref.ID,
			CustomerID: doc.CustomerID,
			Title:      doc.Title,
			Message:    doc.Message,
			Attributes: doc.Attributes,
			Read:       doc.Read,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return notes, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id string) error {
	logger.FirestoreCall("MarkAsRead", colNotifications, "notification_id", id)
	_, err := r.client.Collection(colNotifications).Doc(id).Update(ctx, []firestore.Update{
		{Path: "read", Value: true},
	})
	logger.FirestoreResult("MarkAsRead", colNotifications, err, "notification_id", id)
	return err
}
