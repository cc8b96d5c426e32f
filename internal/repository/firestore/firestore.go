// Package firestore stores ledger data in Cloud Firestore under a single
// operator's document tree: users/{uid}/customers, running, history,
// inventory, bookings and contacts.
package firestore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

const (
	customersCollection = "customers"
	runningCollection   = "running"
	historyCollection   = "history"
	inventoryCollection = "inventory"
	bookingsCollection  = "bookings"
	contactsCollection  = "contacts"
)

type Store struct {
	client *firestore.Client
	root   *firestore.DocumentRef
}

// Open creates a Firestore client through the Firebase Admin SDK. An empty
// credentialsFile falls back to application default credentials.
func Open(ctx context.Context, projectID, credentialsFile, userID string) (*Store, error) {
	if userID == "" {
		return nil, errors.New("firestore user id is empty")
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	logger.ExternalServiceCall("firebase", "new_app", "project_id", projectID)
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		logger.ExternalServiceResult("firebase", "new_app", err)
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	logger.ExternalServiceResult("firebase", "firestore_client", err)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return NewStore(client, userID), nil
}

func NewStore(client *firestore.Client, userID string) *Store {
	return &Store{
		client: client,
		root:   client.Collection("users").Doc(userID),
	}
}

func (s *Store) Customers() repository.CustomerRepository  { return customerRepository{s} }
func (s *Store) Summaries() repository.SummaryRepository   { return summaryRepository{s} }
func (s *Store) Inventory() repository.InventoryRepository { return inventoryRepository{s} }
func (s *Store) Bookings() repository.BookingRepository    { return bookingRepository{s} }
func (s *Store) Contacts() repository.ContactRepository    { return contactRepository{s} }

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) collection(name string) *firestore.CollectionRef {
	return s.root.Collection(name)
}

func viewCollection(view domain.SummaryView) string {
	if view == domain.SummaryViewRunning {
		return runningCollection
	}
	return historyCollection
}

func otherView(view domain.SummaryView) domain.SummaryView {
	if view == domain.SummaryViewRunning {
		return domain.SummaryViewHistory
	}
	return domain.SummaryViewRunning
}

type customerRepository struct{ s *Store }

func (r customerRepository) Get(ctx context.Context, customerID string) (*domain.CustomerData, error) {
	logger.ExternalServiceCall("firestore", "get_customer", "customer_id", customerID)
	snap, err := r.s.collection(customersCollection).Doc(customerID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		logger.ExternalServiceResult("firestore", "get_customer", nil)
		return nil, fmt.Errorf("customer %s: %w", customerID, repository.ErrNotFound)
	}
	logger.ExternalServiceResult("firestore", "get_customer", err)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %s: %w", customerID, err)
	}

	var doc customerDoc
	if err := snap.DataTo(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode customer %s: %w", customerID, err)
	}
	return doc.toDomain(snap.Ref.ID), nil
}

func (r customerRepository) Put(ctx context.Context, record *domain.CustomerData, summary domain.AccountSummary) error {
	recordRef := r.s.collection(customersCollection).Doc(record.CustomerID)
	summaryRef := r.s.collection(viewCollection(summary.View)).Doc(summary.ID)
	staleRef := r.s.collection(viewCollection(otherView(summary.View))).Doc(summary.ID)

	logger.ExternalServiceCall("firestore", "put_customer", "customer_id", record.CustomerID, "view", summary.View)
	err := r.s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(recordRef, customerToDoc(record)); err != nil {
			return err
		}
		if err := tx.Set(summaryRef, summaryToDoc(summary)); err != nil {
			return err
		}
		return tx.Delete(staleRef)
	})
	logger.ExternalServiceResult("firestore", "put_customer", err)
	if err != nil {
		return fmt.Errorf("failed to save customer %s: %w", record.CustomerID, err)
	}
	return nil
}

func (r customerRepository) Query(ctx context.Context, match func(*domain.CustomerData) bool) ([]domain.CustomerData, error) {
	iter := r.s.collection(customersCollection).OrderBy("updatedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	records := []domain.CustomerData{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query customers: %w", err)
		}
		var doc customerDoc
		if err := snap.DataTo(&doc); err != nil {
			logger.Warn("Skipping unreadable customer record", "customer_id", snap.Ref.ID, "error", err)
			continue
		}
		record := doc.toDomain(snap.Ref.ID)
		if match == nil || match(record) {
			records = append(records, *record)
		}
	}
	return records, nil
}

type summaryRepository struct{ s *Store }

func (r summaryRepository) List(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error) {
	iter := r.s.collection(viewCollection(view)).OrderBy("startDate", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	summaries := []domain.AccountSummary{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s summaries: %w", view, err)
		}
		var doc summaryDoc
		if err := snap.DataTo(&doc); err != nil {
			logger.Warn("Skipping unreadable summary", "id", snap.Ref.ID, "error", err)
			continue
		}
		summaries = append(summaries, doc.toDomain(snap.Ref.ID, view))
	}
	return summaries, nil
}

func (r summaryRepository) Replace(ctx context.Context, summaries []domain.AccountSummary) error {
	bw := r.s.client.BulkWriter(ctx)
	defer bw.End()

	var jobs []*firestore.BulkWriterJob
	for _, name := range []string{runningCollection, historyCollection} {
		refs := r.s.collection(name).DocumentRefs(ctx)
		for {
			ref, err := refs.Next()
			if errors.Is(err, iterator.Done) {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", name, err)
			}
			job, err := bw.Delete(ref)
			if err != nil {
				return fmt.Errorf("failed to queue delete of %s: %w", ref.ID, err)
			}
			jobs = append(jobs, job)
		}
	}
	// Deletes must land before the new summaries are written.
	bw.Flush()
	if err := waitJobs(jobs); err != nil {
		return err
	}

	jobs = jobs[:0]
	for _, s := range summaries {
		ref := r.s.collection(viewCollection(s.View)).Doc(s.ID)
		job, err := bw.Set(ref, summaryToDoc(s))
		if err != nil {
			return fmt.Errorf("failed to queue summary %s: %w", s.ID, err)
		}
		jobs = append(jobs, job)
	}
	bw.Flush()
	return waitJobs(jobs)
}

func waitJobs(jobs []*firestore.BulkWriterJob) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return fmt.Errorf("bulk write failed: %w", err)
		}
	}
	return nil
}

type inventoryRepository struct{ s *Store }

func (r inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	_, err := r.s.collection(inventoryCollection).Doc(item.ID).Set(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	return listAll[domain.InventoryItem](ctx, r.s.collection(inventoryCollection))
}

type bookingRepository struct{ s *Store }

func (r bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	_, err := r.s.collection(bookingsCollection).Doc(b.ID).Set(ctx, b)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	return listAll[domain.Booking](ctx, r.s.collection(bookingsCollection))
}

type contactRepository struct{ s *Store }

func (r contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	_, err := r.s.collection(contactsCollection).Doc(c.ID).Set(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	return listAll[domain.Contact](ctx, r.s.collection(contactsCollection))
}

func listAll[T any](ctx context.Context, coll *firestore.CollectionRef) ([]T, error) {
	iter := coll.OrderBy("CreatedAt", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	out := []T{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %s: %w", coll.ID, err)
		}
		var v T
		if err := snap.DataTo(&v); err != nil {
			logger.Warn("Skipping unreadable document", "collection", coll.ID, "id", snap.Ref.ID, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
