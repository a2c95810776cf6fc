package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ispdesk-backend/internal/domain"
	"ispdesk-backend/internal/logger"
	"ispdesk-backend/internal/repository"
)

type customerDoc struct {
	SubscriberID  string    `firestore:"subscriber_id"`
	Name          string    `firestore:"name"`
	MobileNo      string    `firestore:"mobile_no"`
	Email         string    `firestore:"email"`
	Address       string    `firestore:"address"`
	ProviderTag   string    `firestore:"provider_tag"`
	PlanName      string    `firestore:"plan_name"`
	MonthlyBill   string    `firestore:"monthly_bill"`
	WalletBalance string    `firestore:"wallet_balance"`
	PendingAmount string    `firestore:"pending_amount"`
	Status        string    `firestore:"status"`
	RenewalDate   string    `firestore:"renewal_date"` // yyyy-mm-dd, "" when unset
	CreatedAt     time.Time `firestore:"created_at"`
	UpdatedAt     time.Time `firestore:"updated_at"`
}

func (d *customerDoc) toDomain(id string) *domain.Customer {
	return &domain.Customer{
		ID:            id,
		SubscriberID:  d.SubscriberID,
		Name:          d.Name,
		MobileNo:      d.MobileNo,
		Email:         d.Email,
		Address:       d.Address,
		ProviderTag:   d.ProviderTag,
		PlanName:      d.PlanName,
		MonthlyBill:   amountFromDoc(d.MonthlyBill),
		WalletBalance: amountFromDoc(d.WalletBalance),
		PendingAmount: amountFromDoc(d.PendingAmount),
		Status:        domain.CustomerStatus(d.Status),
		RenewalDate:   dateFromDoc(d.RenewalDate),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func customerToDoc(c *domain.Customer) *customerDoc {
	return &customerDoc{
		SubscriberID:  c.SubscriberID,
		Name:          c.Name,
		MobileNo:      c.MobileNo,
		Email:         c.Email,
		Address:       c.Address,
		ProviderTag:   c.ProviderTag,
		PlanName:      c.PlanName,
		MonthlyBill:   c.MonthlyBill.String(),
		WalletBalance: c.WalletBalance.String(),
		PendingAmount: c.PendingAmount.String(),
		Status:        string(c.Status),
		RenewalDate:   dateToDoc(c.RenewalDate),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type customerRepository struct {
	client *firestore.Client
}

func NewCustomerRepository(client *firestore.Client) repository.CustomerRepository {
	return &customerRepository{client: client}
}

func (r *customerRepository) Create(ctx context.Context, customer *domain.Customer) error {
	logger.FirestoreCall("Create", colCustomers, "customer_id", customer.ID)
	now := time.Now().UTC()
	customer.CreatedAt = now
	customer.UpdatedAt = now
	_, err := r.client.Collection(colCustomers).Doc(customer.ID).Create(ctx, customerToDoc(customer))
	logger.FirestoreResult("Create", colCustomers, err, "customer_id", customer.ID)
	return err
}

func (r *customerRepository) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	snap, err := r.client.Collection(colCustomers).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("customer %s not found", id)
		}
		return nil, err
	}
	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode customer %s: %w", id, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r *customerRepository) GetBySubscriberID(ctx context.Context, subscriberID string) (*domain.Customer, error) {
	it := r.client.Collection(colCustomers).
		Where("subscriber_id", "==", subscriberID).
		Limit(1).
		Documents(ctx)
	defer it.Stop()

	snap, err := it.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("subscriber %s not found", subscriberID)
	}
	if err != nil {
		return nil, err
	}
	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r *customerRepository) Update(ctx context.Context, customer *domain.Customer) error {
	logger.FirestoreCall("Update", colCustomers, "customer_id", customer.ID)
	customer.UpdatedAt = time.Now().UTC()
	_, err := r.client.Collection(colCustomers).Doc(customer.ID).Set(ctx, customerToDoc(customer))
	logger.FirestoreResult("Update", colCustomers, err, "customer_id", customer.ID)
	return err
}

func (r *customerRepository) Delete(ctx context.Context, id string) error {
	logger.FirestoreCall("Delete", colCustomers, "customer_id", id)
	_, err := r.client.Collection(colCustomers).Doc(id).Delete(ctx)
	logger.FirestoreResult("Delete", colCustomers, err, "customer_id", id)
	return err
}

func (r *customerRepository) List(ctx context.Context, providerTag string, status domain.CustomerStatus) ([]domain.Customer, error) {
	q := r.client.Collection(colCustomers).Query
	if providerTag != "" && !strings.EqualFold(providerTag, "All") {
		q = q.Where("provider_tag", "==", providerTag)
	}
	if status != "" {
		q = q.Where("status", "==", string(status))
	}
	return r.collect(q.Documents(ctx))
}

// Search matches name, mobile number, or subscriber id. Firestore has no
// substring query, so this filters the collection client-side; the customer
// base of a single ISP franchise is small enough for that.
func (r *customerRepository) Search(ctx context.Context, query string) ([]domain.Customer, error) {
	all, err := r.collect(r.client.Collection(colCustomers).Documents(ctx))
	if err != nil {
		return nil, err
	}
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return all, nil
	}
	var matched []domain.Customer
	for _, c := range all {
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(c.MobileNo, needle) ||
			strings.Contains(strings.ToLower(c.SubscriberID), needle) {
			matched = append(matched, c)
		}
	}
	return matched, nil
}

func (r *customerRepository) ListRenewalsDueBy(ctx context.Context, cutoff string) ([]domain.Customer, error) {
	q := r.client.Collection(colCustomers).
		Where("status", "==", string(domain.CustomerStatusActive)).
		Where("renewal_date", ">", "").
		Where("renewal_date", "<=", cutoff)
	return r.collect(q.Documents(ctx))
}

func (r *customerRepository) collect(it *firestore.DocumentIterator) ([]domain.Customer, error) {
	defer it.Stop()
	var customers []domain.Customer
	for {
		snap, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		var doc customerDoc
		if err := snap.DataTo(&doc); err != nil {
			return nil, err
		}
		customers = append(customers, *doc.toDomain(snap.Ref.ID))
	}
	return customers, nil
}
