package company

import (
	"context"
	"errors"
	"testing"

	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

type recordingNotifier struct {
	email string
	name  string
	err   error
	calls int
}

func (n *recordingNotifier) SendRegistrationComplete(_ context.Context, toEmail, companyName string) error {
	n.calls++
	n.email = toEmail
	n.name = companyName
	return n.err
}

func TestActivateCompanySendsNotification(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{}
	manager := NewManager(repo, notifier, logging.Default())

	req := validCreateRequest()
	c, err := manager.CreateCompany(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.ActivateCompany(context.Background(), c.ID); err != nil {
		t.Fatal(err)
	}

	updated, err := repo.GetByID(context.Background(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != StatusActive {
		t.Errorf("expected active status, got %s", updated.Status)
	}
	if notifier.calls != 1 || notifier.email != "contact@anima.ro" {
		t.Errorf("unexpected notification: %+v", notifier)
	}
}

func TestActivateCompanyToleratesNotifierFailure(t *testing.T) {
	repo := NewInMemoryRepository()
	notifier := &recordingNotifier{err: errors.New("smtp down")}
	manager := NewManager(repo, notifier, logging.Default())

	req := validCreateRequest()
	c, err := manager.CreateCompany(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}

	if err := manager.ActivateCompany(context.Background(), c.ID); err != nil {
		t.Errorf("expected activation to succeed despite notifier error, got %v", err)
	}
}

func TestActivateCompanyUnknownID(t *testing.T) {
	manager := NewManager(NewInMemoryRepository(), nil, logging.Default())

	if err := manager.ActivateCompany(context.Background(), "missing"); err != ErrCompanyNotFound {
		t.Errorf("expected ErrCompanyNotFound, got %v", err)
	}
}

func TestCreateCompanyRecordsPhotoKeys(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := NewManager(repo, nil, logging.Default())

	req := validCreateRequest()
	req.PhotoKeys = []string{"drafts/d1/a.jpg", "drafts/d1/b.jpg", "drafts/d1/c.jpg", "drafts/d1/d.jpg"}
	c, err := manager.CreateCompany(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}

	count, err := repo.CountPhotos(context.Background(), c.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("expected 4 photos, got %d", count)
	}
}

func TestBulkCreateServicesValidatesBeforeInsert(t *testing.T) {
	repo := NewInMemoryRepository()
	manager := NewManager(repo, nil, logging.Default())

	req := validCreateRequest()
	c, err := manager.CreateCompany(context.Background(), &req)
	if err != nil {
		t.Fatal(err)
	}

	_, err = manager.BulkCreateServices(context.Background(), c.ID, []ServicePricingInput{
		{Name: "Consultatie", PriceMin: 80, PriceMax: 150, DurationMinutes: 30, IsCustom: true},
		{Name: "", PriceMin: 10, PriceMax: 20, DurationMinutes: 15, IsCustom: true},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}

	// The valid first row must not have been inserted.
	services, _ := repo.ListServices(context.Background(), c.ID)
	if len(services) != 0 {
		t.Errorf("expected no services inserted, got %d", len(services))
	}
}
