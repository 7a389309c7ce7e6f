package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/giftflowhq/giftflow-backend/pkg/db/models"
	pkgerrors "github.com/giftflowhq/giftflow-backend/pkg/errors"
	"github.com/giftflowhq/giftflow-backend/pkg/pagination"
)

// Service defines customer, recipient and important-date operations.
type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error)
	Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AddRecipient(ctx context.Context, customerID uuid.UUID, input RecipientInput) (*models.Recipient, error)
	UpdateRecipient(ctx context.Context, customerID, recipientID uuid.UUID, input RecipientInput) (*models.Recipient, error)
	DeleteRecipient(ctx context.Context, customerID, recipientID uuid.UUID) error

	AddImportantDate(ctx context.Context, customerID uuid.UUID, input ImportantDateInput) (*models.ImportantDate, error)
	UpdateImportantDate(ctx context.Context, customerID, dateID uuid.UUID, input ImportantDateInput) (*models.ImportantDate, error)
	DeleteImportantDate(ctx context.Context, customerID, dateID uuid.UUID) error
}

const defaultReminderDays = 7

type service struct {
	repo Repository
}

// NewService wires customer dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*CustomerDTO, error) {
	customer := &models.Customer{
		ID:       uuid.New(),
		Name:     input.Name,
		Whatsapp: input.Whatsapp,
		Email:    input.Email,
		Country:  input.Country,
		Notes:    input.Notes,
		Tags:     pq.StringArray(input.Tags),
	}
	if customer.Tags == nil {
		customer.Tags = pq.StringArray{}
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return FromModel(customer), nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "load customer")
	}
	return FromModel(customer), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listCustomersParams{
		Search: params.Search,
		Tag:    params.Tag,
		Limit:  params.Limit,
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateCustomerInput) (*CustomerDTO, error) {
	customer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, "load customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Whatsapp != nil {
		customer.Whatsapp = input.Whatsapp
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.Country != nil {
		customer.Country = input.Country
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}
	if input.Tags != nil {
		customer.Tags = pq.StringArray(input.Tags)
	}

	if err := s.repo.Save(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	return s.Get(ctx, id)
}

// Delete removes the customer with its recipients and dates. Customers with
// invoices are protected; invoices keep their history.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	hasInvoices, err := s.repo.HasInvoices(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check customer invoices")
	}
	if hasInvoices {
		return pkgerrors.New(pkgerrors.CodeConflict, "customer has invoices and cannot be deleted")
	}

	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}

func (s *service) AddRecipient(ctx context.Context, customerID uuid.UUID, input RecipientInput) (*models.Recipient, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}

	recipient := &models.Recipient{
		ID:           uuid.New(),
		CustomerID:   customerID,
		Name:         input.Name,
		Phone:        input.Phone,
		Address:      input.Address,
		Relationship: input.Relationship,
	}
	if err := s.repo.CreateRecipient(ctx, recipient); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recipient")
	}
	return recipient, nil
}

func (s *service) UpdateRecipient(ctx context.Context, customerID, recipientID uuid.UUID, input RecipientInput) (*models.Recipient, error) {
	recipient, err := s.repo.FindRecipient(ctx, customerID, recipientID)
	if err != nil {
		return nil, s.translate(err, "load recipient")
	}

	recipient.Name = input.Name
	recipient.Phone = input.Phone
	recipient.Address = input.Address
	recipient.Relationship = input.Relationship
	if err := s.repo.SaveRecipient(ctx, recipient); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recipient")
	}
	return recipient, nil
}

func (s *service) DeleteRecipient(ctx context.Context, customerID, recipientID uuid.UUID) error {
	deleted, err := s.repo.DeleteRecipient(ctx, customerID, recipientID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipient")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipient not found")
	}
	return nil
}

func (s *service) AddImportantDate(ctx context.Context, customerID uuid.UUID, input ImportantDateInput) (*models.ImportantDate, error) {
	if err := s.ensureCustomer(ctx, customerID); err != nil {
		return nil, err
	}
	if err := validateEventDate(input.EventDate); err != nil {
		return nil, err
	}
	if input.RecipientID != nil {
		if _, err := s.repo.FindRecipient(ctx, customerID, *input.RecipientID); err != nil {
			return nil, s.translate(err, "load recipient")
		}
	}

	reminderDays := defaultReminderDays
	if input.ReminderDays != nil {
		reminderDays = *input.ReminderDays
	}

	date := &models.ImportantDate{
		ID:           uuid.New(),
		CustomerID:   customerID,
		RecipientID:  input.RecipientID,
		Title:        input.Title,
		EventDate:    input.EventDate,
		Recurring:    input.Recurring,
		ReminderDays: reminderDays,
	}
	if err := s.repo.CreateImportantDate(ctx, date); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create important date")
	}
	return date, nil
}

func (s *service) UpdateImportantDate(ctx context.Context, customerID, dateID uuid.UUID, input ImportantDateInput) (*models.ImportantDate, error) {
	if err := validateEventDate(input.EventDate); err != nil {
		return nil, err
	}

	date, err := s.repo.FindImportantDate(ctx, customerID, dateID)
	if err != nil {
		return nil, s.translate(err, "load important date")
	}

	// Changing the date resets the dispatch guard so the next occurrence fires.
	if date.EventDate != input.EventDate {
		date.ReminderSentAt = nil
	}

	date.RecipientID = input.RecipientID
	date.Title = input.Title
	date.EventDate = input.EventDate
	date.Recurring = input.Recurring
	if input.ReminderDays != nil {
		date.ReminderDays = *input.ReminderDays
	}
	if err := s.repo.SaveImportantDate(ctx, date); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update important date")
	}
	return date, nil
}

func (s *service) DeleteImportantDate(ctx context.Context, customerID, dateID uuid.UUID) error {
	deleted, err := s.repo.DeleteImportantDate(ctx, customerID, dateID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete important date")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "important date not found")
	}
	return nil
}

func (s *service) ensureCustomer(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return s.translate(err, "load customer")
	}
	return nil
}

func (s *service) translate(err error, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not found")
	}
	if coded := pkgerrors.As(err); coded != nil {
		return coded
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func validateEventDate(value string) error {
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "event date must be YYYY-MM-DD")
	}
	return nil
}
