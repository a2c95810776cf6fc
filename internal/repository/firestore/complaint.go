package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type complaintDoc struct {
	CustomerID   string     `firestore:"customer_id"`
	CustomerName string     `firestore:"customer_name"`
	MobileNo     string     `firestore:"mobile_no"`
	Subject      string     `firestore:"subject"`
	Detail       string     `firestore:"detail"`
	Status       string     `firestore:"status"`
	ResolvedAt   *time.Time `firestore:"resolved_at"`
	CreatedAt    time.Time  `firestore:"created_at"`
	UpdatedAt    time.Time  `firestore:"updated_at"`
}

func (d *complaintDoc) toDomain(id string) *domain.Complaint {
	return &domain.Complaint{
		ID:           id,
		CustomerID:   d.CustomerID,
		CustomerName: d.CustomerName,
		MobileNo:     d.MobileNo,
		Subject:      d.Subject,
		Detail:       d.Detail,
		Status:       domain.ComplaintStatus(d.Status),
		ResolvedAt:   d.ResolvedAt,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func complaintToDoc(c *domain.Complaint) *complaintDoc {
	return &complaintDoc{
		CustomerID:   c.CustomerID,
		CustomerName: c.CustomerName,
		MobileNo:     c.MobileNo,
		Subject:      c.Subject,
		Detail:       c.Detail,
		Status:       string(c.Status),
		ResolvedAt:   c.ResolvedAt,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

type complaintRepository struct {
	client *firestore.Client
}

func NewComplaintRepository(client *firestore.Client) repository.ComplaintRepository {
	return &complaintRepository{client: client}
}

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	logger.FirestoreCall("Create", colComplaints, "complaint_id", complaint.ID)
	now := time.Now().UTC()
	complaint.CreatedAt = now
	complaint.UpdatedAt = now
	_, err := r.client.Collection(colComplaints).Doc(complaint.ID).Create(ctx, complaintToDoc(complaint))
	logger.FirestoreResult("Create", colComplaints, err, "complaint_id", complaint.ID)
	return err
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	snap, err := r.client.Collection(colComplaints).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("complaint %s not found", id)
		}
		return nil, err
	}
	var doc complaintDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode complaint %s: %w", id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	logger.FirestoreCall("Update", colComplaints, "complaint_id", complaint.ID)
	complaint.UpdatedAt = time.Now().UTC()
	_, err := r.client.Collection(colComplaints).Doc(complaint.ID).Set(ctx, complaintToDoc(complaint))
	logger.FirestoreResult("Update", colComplaints, err, "complaint_id", complaint.ID)
	return err
}

func (r *complaintRepository) ListByStatus(ctx context.Context, status domain.ComplaintStatus) ([]domain.Complaint, error) {
	q := r.client.Collection(colComplaints).Query
	if status != "" {
		q = q.Where("status", "==", string(status))
	}
	it := q.Documents(ctx)
	defer it.Stop()

	var complaints []domain.Complaint
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc complaintDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		complaints = append(complaints, *doc.toDomain(snap.Ref.ID))
	}
	return complaints, nil
}
