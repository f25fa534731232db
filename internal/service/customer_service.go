package service

import (
	"context"

	"tenaypos/internal/apierror"
	"tenaypos/internal/dto"
	"tenaypos/internal/model"
	"tenaypos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type CustomerService interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error)
	List(ctx context.Context, query string, page, limit int) (*dto.CustomerListResponse, error)
	// RegisterPayment records an abono, lowers the balance and, when paid in
	// cash, drops a customerPayment movement into the drawer ledger.
	RegisterPayment(ctx context.Context, actor model.Actor, customerID uuid.UUID, req dto.RegisterPaymentRequest) (*dto.CustomerPaymentResponse, error)
	ListPayments(ctx context.Context, customerID uuid.UUID) ([]dto.CustomerPaymentResponse, error)
}

type customerService struct {
	repo         repository.CustomerRepository
	movementRepo repository.CashMovementRepository
}

func NewCustomerService(repo repository.CustomerRepository, movementRepo repository.CashMovementRepository) CustomerService {
	return &customerService{repo: repo, movementRepo: movementRepo}
}

func (s *customerService) Create(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	c := model.Customer{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		Notes:       req.Notes,
		CreditLimit: req.CreditLimit,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, &c); err != nil {
		return nil, apierror.Persistence("Error registrando el cliente", err)
	}
	resp := dto.CustomerFromModel(&c)
	return &resp, nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Phone != nil {
		c.Phone = req.Phone
	}
	if req.Email != nil {
		c.Email = req.Email
	}
	if req.Address != nil {
		c.Address = req.Address
	}
	if req.Notes != nil {
		c.Notes = req.Notes
	}
	if req.CreditLimit != nil {
		c.CreditLimit = *req.CreditLimit
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, apierror.Persistence("Error actualizando el cliente", err)
	}
	resp := dto.CustomerFromModel(c)
	return &resp, nil
}

func (s *customerService) Get(ctx context.Context, id uuid.UUID) (*dto.CustomerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	resp := dto.CustomerFromModel(c)
	return &resp, nil
}

func (s *customerService) List(ctx context.Context, query string, page, limit int) (*dto.CustomerListResponse, error) {
	customers, total, err := s.repo.List(ctx, query, page, limit)
	if err != nil {
		return nil, apierror.Persistence("Error consultando clientes", err)
	}
	data := make([]dto.CustomerResponse, 0, len(customers))
	for i := range customers {
		data = append(data, dto.CustomerFromModel(&customers[i]))
	}
	return &dto.CustomerListResponse{Data: data, Total: total, Page: page, Limit: limit}, nil
}

func (s *customerService) RegisterPayment(ctx context.Context, actor model.Actor, customerID uuid.UUID, req dto.RegisterPaymentRequest) (*dto.CustomerPaymentResponse, error) {
	if !req.Amount.IsPositive() {
		return nil, apierror.Validation("El monto debe ser mayor a cero")
	}
	c, err := s.repo.FindByID(ctx, customerID)
	if err != nil {
		return nil, apierror.NotFound("Cliente no encontrado")
	}
	if req.Amount.GreaterThan(c.CurrentBalance) {
		return nil, apierror.Validation("El abono excede el saldo del cliente")
	}

	method, _ := model.ParsePaymentMethod(req.Method)
	payment := model.CustomerPayment{
		CustomerID: customerID,
		Amount:     req.Amount,
		Method:     method.String(),
		Note:       req.Note,
		UserID:     actor.ID,
		Username:   actor.Username,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreatePaymentTx(ctx, tx, &payment); err != nil {
			return apierror.Persistence("Error registrando el abono", err)
		}
		if err := s.repo.AdjustBalanceTx(ctx, tx, customerID, req.Amount.Neg()); err != nil {
			return apierror.Persistence("Error actualizando el saldo", err)
		}
		// Cash abonos enter the physical drawer
		if method.IsCash() {
			mov := model.CashMovement{
				Type:        model.MovementCustomerPayment,
				Direction:   model.MovementCustomerPayment.Direction(),
				Amount:      req.Amount,
				Description: "Abono de " + c.Name,
				UserID:      actor.ID,
				Username:    actor.Username,
				CustomerID:  &customerID,
			}
			if err := s.movementRepo.CreateTx(ctx, tx, &mov); err != nil {
				return apierror.Persistence("Error registrando el movimiento de caja", err)
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("customer", c.Name).
		Str("amount", req.Amount.String()).
		Str("method", method.String()).
		Msg("abono registrado")

	resp := dto.PaymentFromModel(&payment)
	return &resp, nil
}

func (s *customerService) ListPayments(ctx context.Context, customerID uuid.UUID) ([]dto.CustomerPaymentResponse, error) {
	payments, err := s.repo.ListPayments(ctx, customerID)
	if err != nil {
		return nil, apierror.Persistence("Error consultando abonos", err)
	}
	out := make([]dto.CustomerPaymentResponse, 0, len(payments))
	for i := range payments {
		out = append(out, dto.PaymentFromModel(&payments[i]))
	}
	return out, nil
}
