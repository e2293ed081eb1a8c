package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"portal_pagos/internal/domain/entities"
	"portal_pagos/internal/usecase/interfaces"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const minSnapshotTTL = 30 * time.Second

// CheckoutInput is what the front end collects before paying.
type CheckoutInput struct {
	Gateway     string
	RUT         string
	Email       string
	SelectedIDs []string
}

// CheckoutResult tells the front end where to send the customer.
type CheckoutResult struct {
	TransactionID string
	Gateway       entities.Gateway
	Amount        int64
	Debts         []entities.Debt
	Start         entities.StartResult
}

// CallbackURLs are the portal endpoints a gateway calls back.
type CallbackURLs struct {
	Return  string
	Confirm string
	Cancel  string
}

// ICheckoutUseCase covers debt lookup and payment initiation.
type ICheckoutUseCase interface {
	ListDebts(ctx context.Context, rut string) ([]entities.Debt, error)
	Start(ctx context.Context, in CheckoutInput) (CheckoutResult, error)
}

type CheckoutUseCase struct {
	lookup      interfaces.IDebtLookup
	cache       interfaces.ISnapshotCache
	gateways    map[entities.Gateway]interfaces.IPaymentGateway
	stores      map[entities.Gateway]interfaces.ITransactionStore
	callbacks   map[entities.Gateway]CallbackURLs
	snapshotTTL time.Duration
	validate    *validator.Validate
	newID       func() string
	now         func() time.Time
}

var _ ICheckoutUseCase = (*CheckoutUseCase)(nil)

func NewCheckoutUseCase(
	lookup interfaces.IDebtLookup,
	cache interfaces.ISnapshotCache,
	gateways map[entities.Gateway]interfaces.IPaymentGateway,
	stores map[entities.Gateway]interfaces.ITransactionStore,
	callbacks map[entities.Gateway]CallbackURLs,
	snapshotTTL time.Duration,
) *CheckoutUseCase {
	if snapshotTTL < minSnapshotTTL {
		snapshotTTL = minSnapshotTTL
	}
	return &CheckoutUseCase{
		lookup:      lookup,
		cache:       cache,
		gateways:    gateways,
		stores:      stores,
		callbacks:   callbacks,
		snapshotTTL: snapshotTTL,
		validate:    validator.New(),
		newID:       uuid.NewString,
		now:         time.Now,
	}
}

// ListDebts fetches the debts of a customer and keeps them as the snapshot
// used to validate the next checkout.
func (u *CheckoutUseCase) ListDebts(ctx context.Context, rut string) ([]entities.Debt, error) {
	normalized := entities.NormalizeRUT(rut)
	if !entities.ValidRUT(normalized) {
		return nil, &ValidationError{Messages: []string{"The RUT is not valid."}}
	}
	log.Printf("[checkout][usecase] list-debts start rut=%s", normalized)

	debts, err := u.lookup.Fetch(ctx, normalized)
	if err != nil {
		log.Printf("[checkout][usecase] debt lookup failed rut=%s err=%v", normalized, err)
		return nil, fmt.Errorf("%w: %w", ErrDebtLookupFailed, err)
	}
	if u.cache != nil {
		u.cache.Put(ctx, normalized, debts, u.snapshotTTL)
	}
	log.Printf("[checkout][usecase] list-debts success rut=%s debts=%d", normalized, len(debts))
	return debts, nil
}

// Start validates the selection against the debt snapshot, opens the payment
// at the gateway and stores the pending transaction.
func (u *CheckoutUseCase) Start(ctx context.Context, in CheckoutInput) (CheckoutResult, error) {
	verr := &ValidationError{}

	gateway, ok := entities.ParseGateway(in.Gateway)
	if !ok {
		verr.add("The selected payment method is not available.")
	}
	rut := entities.NormalizeRUT(in.RUT)
	if !entities.ValidRUT(rut) {
		verr.add("The RUT is not valid.")
	}
	selected := uniqueTrimmed(in.SelectedIDs)
	if len(selected) == 0 {
		verr.add("Select at least one debt to pay.")
	}
	email := strings.TrimSpace(in.Email)
	if u.validate.Var(email, "required,email") != nil {
		verr.add("Enter a valid email address.")
	}
	if err := verr.orNil(); err != nil {
		log.Printf("[checkout][usecase] invalid input gateway=%q rut=%q problems=%d", in.Gateway, rut, len(verr.Messages))
		return CheckoutResult{}, err
	}
	log.Printf("[checkout][usecase] start gateway=%s rut=%s selected=%v", gateway, rut, selected)

	available, err := u.snapshot(ctx, rut)
	if err != nil {
		log.Printf("[checkout][usecase] debt validation failed rut=%s err=%v", rut, err)
		return CheckoutResult{}, &ValidationError{Messages: []string{"The debts of the customer could not be validated."}}
	}

	debts := make([]entities.Debt, 0, len(selected))
	for _, id := range selected {
		d, found := findDebt(available, id)
		if !found {
			verr.add(fmt.Sprintf("The selected debt %s was not found. Look up your debts and try again.", id))
			continue
		}
		if !d.Methods.Allows(gateway) {
			verr.add(fmt.Sprintf("The debt %s cannot be paid with %s.", id, gateway))
			continue
		}
		debts = append(debts, d)
	}
	if err := verr.orNil(); err != nil {
		return CheckoutResult{}, err
	}

	tx := entities.NewTransaction("", gateway, rut, email, debts, u.now())
	if tx.Amount <= 0 {
		return CheckoutResult{}, &ValidationError{Messages: []string{"The total amount of the selected debts is not valid."}}
	}

	gw, store := u.gateways[gateway], u.stores[gateway]
	if gw == nil || store == nil {
		log.Printf("[checkout][usecase] gateway not configured gateway=%s", gateway)
		return CheckoutResult{}, fmt.Errorf("%w: %s", ErrUnsupportedGateway, gateway)
	}

	reference := u.newID()
	urls := u.callbacks[gateway]
	started, err := gw.Start(ctx, entities.StartRequest{
		TransactionID: reference,
		Amount:        tx.Amount,
		Email:         email,
		RUT:           rut,
		Description:   fmt.Sprintf("Payment of %d debt(s) RUT %s", len(debts), entities.FormatRUT(rut)),
		ReturnURL:     urls.Return,
		ConfirmURL:    urls.Confirm,
		CancelURL:     urls.Cancel,
		Debts:         tx.Debts,
	})
	if err != nil {
		log.Printf("[checkout][usecase] gateway start failed gateway=%s reference=%s err=%v", gateway, reference, err)
		return CheckoutResult{}, err
	}

	id := reference
	if strings.TrimSpace(started.Token) != "" {
		id = started.Token
	}
	tx = entities.NewTransaction(id, gateway, rut, email, debts, u.now())

	doc, err := tx.ToDocument()
	if err != nil {
		return CheckoutResult{}, err
	}
	request := map[string]any{
		"generated_at": u.now().UTC().Format(time.RFC3339),
		"reference":    reference,
		"redirect_url": started.RedirectURL,
	}
	if started.Token != "" {
		request["token"] = started.Token
	}
	doc[string(gateway)] = map[string]any{"request": request, "responses": []any{}}
	for k, v := range started.Record {
		doc[k] = v
	}

	if _, err := store.Save(ctx, id, doc); err != nil {
		log.Printf("[checkout][usecase] store save failed gateway=%s id=%s err=%v", gateway, id, err)
		return CheckoutResult{}, fmt.Errorf("%w: %w", ErrStorageUpdateFailure, err)
	}
	log.Printf("[checkout][usecase] start success gateway=%s id=%s amount=%d", gateway, id, tx.Amount)

	return CheckoutResult{
		TransactionID: id,
		Gateway:       gateway,
		Amount:        tx.Amount,
		Debts:         debts,
		Start:         started,
	}, nil
}

func (u *CheckoutUseCase) snapshot(ctx context.Context, rut string) ([]entities.Debt, error) {
	if u.cache != nil {
		if debts, ok := u.cache.Get(ctx, rut); ok {
			return debts, nil
		}
	}
	if u.lookup == nil {
		return nil, errors.New("debt lookup not configured")
	}
	debts, err := u.lookup.Fetch(ctx, rut)
	if err != nil {
		return nil, err
	}
	if u.cache != nil {
		u.cache.Put(ctx, rut, debts, u.snapshotTTL)
	}
	return debts, nil
}

func findDebt(debts []entities.Debt, customerID string) (entities.Debt, bool) {
	for _, d := range debts {
		if strings.TrimSpace(d.CustomerID) == customerID {
			return d, true
		}
	}
	return entities.Debt{}, false
}

func uniqueTrimmed(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
