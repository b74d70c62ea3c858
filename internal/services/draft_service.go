package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/platform/textutil"
	"github.com/stethcare/checkout-api/internal/refdata"
	"github.com/stethcare/checkout-api/internal/repositories"
	"github.com/stethcare/checkout-api/internal/validation"
)

var (
	errDraftRepositoryRequired = errors.New("draft service: repository is required")
	errDraftMirrorRequired     = errors.New("draft service: payment mirror is required")
	errDraftClockRequired      = errors.New("draft service: clock is required")
)

// ErrDraftInvalidInput indicates the caller supplied invalid input.
var ErrDraftInvalidInput = errors.New("draft service: invalid input")

// ErrDraftNotFound indicates the requested draft does not exist.
var ErrDraftNotFound = errors.New("draft service: not found")

// ErrDraftUnavailable indicates the draft service cannot fulfil the request due to missing dependencies or backend issues.
var ErrDraftUnavailable = errors.New("draft service: unavailable")

// ErrDraftSubmitted indicates the draft was already submitted and can no longer be edited.
var ErrDraftSubmitted = errors.New("draft service: draft already submitted")

// ValidationError blocks a submission with the per-field messages that caused it.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("draft service: validation failed (%d fields)", len(e.Fields))
}

// DraftServiceDeps wires the persistence and cache dependencies for draft operations.
type DraftServiceDeps struct {
	Repository  repositories.DraftRepository
	Mirror      repositories.PaymentMirrorRepository
	Clock       func() time.Time
	Logger      func(context.Context, string, map[string]any)
	IDGenerator func() string
}

type draftService struct {
	repo   repositories.DraftRepository
	mirror repositories.PaymentMirrorRepository
	newID  func() string
	now    func() time.Time
	logger func(context.Context, string, map[string]any)
}

var _ DraftService = (*draftService)(nil)

// NewDraftService constructs a DraftService enforcing dependency validation.
func NewDraftService(deps DraftServiceDeps) (DraftService, error) {
	if deps.Repository == nil {
		return nil, errDraftRepositoryRequired
	}
	if deps.Mirror == nil {
		return nil, errDraftMirrorRequired
	}
	if deps.Clock == nil {
		return nil, errDraftClockRequired
	}

	logger := deps.Logger
	if logger == nil {
		logger = func(context.Context, string, map[string]any) {}
	}

	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = func() string { return ulid.Make().String() }
	}

	return &draftService{
		repo:   deps.Repository,
		mirror: deps.Mirror,
		newID:  idGen,
		now:    func() time.Time { return deps.Clock().UTC() },
		logger: logger,
	}, nil
}

// CreateDraft seeds a new draft with the recommended catalog and rehydrates
// the payment section from the mirror cache when the shopper returns.
func (s *draftService) CreateDraft(ctx context.Context, cmd CreateDraftCommand) (DraftResult, error) {
	if s == nil || s.repo == nil {
		return DraftResult{}, ErrDraftUnavailable
	}

	now := s.now()
	draft := domain.OrderDraft{
		ID:        s.newID(),
		ClientKey: strings.TrimSpace(cmd.ClientKey),
		Status:    domain.DraftStatusOpen,
		Payment:   domain.PaymentDraft{Method: domain.PaymentMethodCard},
		Phone:     domain.PhoneNumber{CountryCode: refdata.DefaultDialingCode().Code},
		Cart: domain.Cart{
			Items: refdata.RecommendedItems(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	draft.Cart.Recalculate()

	if cached, err := s.mirror.Load(ctx, s.mirrorKey(draft)); err == nil {
		draft.Payment = cached
	} else if !errors.Is(err, repositories.ErrMirrorNotFound) {
		// Corrupt or unreachable cache entries never block draft creation.
		s.logger(ctx, "payment mirror unusable, starting with empty payment section", map[string]any{
			"draftId": draft.ID,
			"error":   err.Error(),
		})
	}

	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return DraftResult{}, s.translateRepoError(err)
	}
	return DraftResult{Draft: saved}, nil
}

// GetDraft loads a draft by ID.
func (s *draftService) GetDraft(ctx context.Context, draftID string) (OrderDraft, error) {
	if s == nil || s.repo == nil {
		return OrderDraft{}, ErrDraftUnavailable
	}
	id := strings.TrimSpace(draftID)
	if id == "" {
		return OrderDraft{}, ErrDraftInvalidInput
	}

	draft, err := s.repo.LoadDraft(ctx, id)
	if err != nil {
		return OrderDraft{}, s.translateRepoError(err)
	}
	return draft, nil
}

// UpdateSection shallow-merges a partial update into one section, leaving the
// siblings untouched. Validation messages for the touched fields ride along
// with the saved draft and never block the save.
func (s *draftService) UpdateSection(ctx context.Context, cmd UpdateSectionCommand) (DraftResult, error) {
	if s == nil || s.repo == nil {
		return DraftResult{}, ErrDraftUnavailable
	}

	draft, err := s.loadOpenDraft(ctx, cmd.DraftID)
	if err != nil {
		return DraftResult{}, err
	}

	var fieldErrs FieldErrors
	switch cmd.Section {
	case SectionContact:
		fieldErrs, err = s.applyContactPatch(&draft, cmd.Contact)
	case SectionDelivery:
		fieldErrs, err = s.applyDeliveryPatch(&draft, cmd.Delivery)
	case SectionPhone:
		fieldErrs, err = s.applyPhonePatch(&draft, cmd.Phone)
	case SectionShipping:
		err = s.applyShippingPatch(&draft, cmd.Shipping)
	case SectionPayment:
		fieldErrs, err = s.applyPaymentPatch(&draft, cmd.Payment)
	case SectionRememberMe:
		fieldErrs, err = s.applyRememberMePatch(&draft, cmd.RememberMe)
	case SectionDiscount:
		err = s.applyDiscountPatch(&draft, cmd.Discount)
	default:
		return DraftResult{}, fmt.Errorf("%w: unknown section %q", ErrDraftInvalidInput, cmd.Section)
	}
	if err != nil {
		return DraftResult{}, err
	}

	draft.UpdatedAt = s.now()
	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return DraftResult{}, s.translateRepoError(err)
	}

	if cmd.Section == SectionPayment {
		s.mirrorPayment(ctx, saved)
	}

	return DraftResult{Draft: saved, FieldErrors: fieldErrs}, nil
}

// AddLineItem appends a catalog item to the cart. Duplicates are allowed;
// adding the same item again is how quantity is expressed.
func (s *draftService) AddLineItem(ctx context.Context, cmd LineItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrDraftUnavailable
	}

	draft, err := s.loadOpenDraft(ctx, cmd.DraftID)
	if err != nil {
		return Cart{}, err
	}

	item, ok := refdata.CatalogItem(cmd.Name)
	if !ok {
		return Cart{}, fmt.Errorf("%w: unknown catalog item %q", ErrDraftInvalidInput, cmd.Name)
	}

	draft.Cart.AddItem(item)
	draft.UpdatedAt = s.now()
	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return saved.Cart, nil
}

// RemoveLineItem removes every cart entry matching the name. Removing an
// absent name is a no-op returning the unchanged cart.
func (s *draftService) RemoveLineItem(ctx context.Context, cmd LineItemCommand) (Cart, error) {
	if s == nil || s.repo == nil {
		return Cart{}, ErrDraftUnavailable
	}

	draft, err := s.loadOpenDraft(ctx, cmd.DraftID)
	if err != nil {
		return Cart{}, err
	}

	if !draft.Cart.RemoveItem(strings.TrimSpace(cmd.Name)) {
		return draft.Cart, nil
	}

	draft.UpdatedAt = s.now()
	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return Cart{}, s.translateRepoError(err)
	}
	return saved.Cart, nil
}

// AttachReceipt stores the uploaded receipt's metadata on the named wallet
// variant, replacing any previous receipt.
func (s *draftService) AttachReceipt(ctx context.Context, cmd AttachReceiptCommand) (DraftResult, error) {
	if s == nil || s.repo == nil {
		return DraftResult{}, ErrDraftUnavailable
	}

	draft, err := s.loadOpenDraft(ctx, cmd.DraftID)
	if err != nil {
		return DraftResult{}, err
	}

	if err := validation.Receipt(cmd.ContentType, cmd.SizeBytes); err != nil {
		return DraftResult{}, err
	}

	receipt := &domain.ReceiptRef{
		Filename:    strings.TrimSpace(cmd.Filename),
		ContentType: strings.TrimSpace(cmd.ContentType),
		SizeBytes:   cmd.SizeBytes,
	}

	switch cmd.Method {
	case domain.PaymentMethodEasypaisa:
		draft.Payment.Easypaisa.Receipt = receipt
	case domain.PaymentMethodJazzcash:
		draft.Payment.Jazzcash.Receipt = receipt
	default:
		return DraftResult{}, fmt.Errorf("%w: receipts apply to wallet methods only", ErrDraftInvalidInput)
	}

	draft.UpdatedAt = s.now()
	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return DraftResult{}, s.translateRepoError(err)
	}

	s.mirrorPayment(ctx, saved)
	return DraftResult{Draft: saved}, nil
}

// SubmitDraft runs full validation across every section and, on success,
// hands the serialised draft to the submission log, marks the draft
// submitted, and clears the payment mirror entry.
func (s *draftService) SubmitDraft(ctx context.Context, draftID string) (SubmitResult, error) {
	if s == nil || s.repo == nil {
		return SubmitResult{}, ErrDraftUnavailable
	}

	draft, err := s.loadOpenDraft(ctx, draftID)
	if err != nil {
		return SubmitResult{}, err
	}

	if errs := s.validateDraft(draft); errs.HasErrors() {
		fields := FieldErrors(textutil.NormalizeStringMap(errs))
		return SubmitResult{}, &ValidationError{Fields: fields}
	}

	now := s.now()
	payload, err := json.Marshal(submissionRecord(draft, now))
	if err != nil {
		return SubmitResult{}, fmt.Errorf("draft service: serialise submission: %w", err)
	}
	s.logger(ctx, "checkout draft submitted", map[string]any{
		"draftId":    draft.ID,
		"totalCents": draft.Cart.TotalCents,
		"order":      json.RawMessage(payload),
	})

	draft.Status = domain.DraftStatusSubmitted
	draft.SubmittedAt = &now
	draft.UpdatedAt = now

	saved, err := s.repo.SaveDraft(ctx, draft)
	if err != nil {
		return SubmitResult{}, s.translateRepoError(err)
	}

	if err := s.mirror.Delete(ctx, s.mirrorKey(saved)); err != nil {
		s.logger(ctx, "failed to clear payment mirror after submit", map[string]any{
			"draftId": saved.ID,
			"error":   err.Error(),
		})
	}

	return SubmitResult{Draft: saved, ConfirmationRef: s.newID()}, nil
}

func (s *draftService) loadOpenDraft(ctx context.Context, draftID string) (domain.OrderDraft, error) {
	id := strings.TrimSpace(draftID)
	if id == "" {
		return domain.OrderDraft{}, ErrDraftInvalidInput
	}
	draft, err := s.repo.LoadDraft(ctx, id)
	if err != nil {
		return domain.OrderDraft{}, s.translateRepoError(err)
	}
	if draft.Status == domain.DraftStatusSubmitted {
		return domain.OrderDraft{}, ErrDraftSubmitted
	}
	return draft, nil
}

func (s *draftService) applyContactPatch(draft *domain.OrderDraft, patch *ContactPatch) (FieldErrors, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: contact patch is required", ErrDraftInvalidInput)
	}

	errs := FieldErrors{}
	vctx := validation.Context{Now: s.now()}
	if patch.FirstName != nil {
		draft.Contact.FirstName = strings.TrimSpace(*patch.FirstName)
		errs = errs.Merge(FieldErrors{"firstName": validation.ContactRules["firstName"](draft.Contact.FirstName, vctx)})
	}
	if patch.LastName != nil {
		draft.Contact.LastName = strings.TrimSpace(*patch.LastName)
		errs = errs.Merge(FieldErrors{"lastName": validation.ContactRules["lastName"](draft.Contact.LastName, vctx)})
	}
	if patch.Email != nil {
		draft.Contact.Email = strings.TrimSpace(*patch.Email)
		errs = errs.Merge(FieldErrors{"email": validation.ContactRules["email"](draft.Contact.Email, vctx)})
	}
	if patch.MarketingConsent != nil {
		draft.Contact.MarketingConsent = *patch.MarketingConsent
	}
	return errs, nil
}

func (s *draftService) applyDeliveryPatch(draft *domain.OrderDraft, patch *DeliveryPatch) (FieldErrors, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: delivery patch is required", ErrDraftInvalidInput)
	}

	if patch.CountryCode != nil {
		code := strings.TrimSpace(*patch.CountryCode)
		if code == "" {
			draft.Delivery.Country = nil
		} else {
			country, ok := refdata.CountryByCode(code)
			if !ok {
				return nil, fmt.Errorf("%w: unknown country code %q", ErrDraftInvalidInput, code)
			}
			draft.Delivery.Country = &country
		}
		// Switching countries always resets the state selection.
		draft.Delivery.State = ""
	}

	countryCode := ""
	if draft.Delivery.Country != nil {
		countryCode = draft.Delivery.Country.ISOCode
	}

	if patch.State != nil {
		state := strings.TrimSpace(*patch.State)
		if state != "" && refdata.HasStates(countryCode) && !refdata.IsValidState(countryCode, state) {
			return nil, fmt.Errorf("%w: unknown state %q for country %q", ErrDraftInvalidInput, state, countryCode)
		}
		draft.Delivery.State = state
	}

	errs := FieldErrors{}
	vctx := validation.Context{CountryCode: countryCode, Now: s.now()}
	assign := func(field string, target *string, value *string) {
		if value == nil {
			return
		}
		*target = strings.TrimSpace(*value)
		errs = errs.Merge(FieldErrors{field: validation.DeliveryField(field, *target, vctx)})
	}
	assign("firstName", &draft.Delivery.FirstName, patch.FirstName)
	assign("lastName", &draft.Delivery.LastName, patch.LastName)
	assign("company", &draft.Delivery.Company, patch.Company)
	assign("address", &draft.Delivery.Address, patch.Address)
	assign("apartment", &draft.Delivery.Apartment, patch.Apartment)
	assign("city", &draft.Delivery.City, patch.City)
	assign("zipCode", &draft.Delivery.ZipCode, patch.ZipCode)
	if patch.CountryCode != nil {
		errs = errs.Merge(FieldErrors{"country": validation.DeliveryField("country", countryCode, vctx)})
	}
	if patch.SMSConsent != nil {
		draft.Delivery.SMSConsent = *patch.SMSConsent
	}
	return errs, nil
}

func (s *draftService) applyPhonePatch(draft *domain.OrderDraft, patch *PhonePatch) (FieldErrors, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: phone patch is required", ErrDraftInvalidInput)
	}

	touched := false
	if patch.Combined != nil {
		// "+<code> <number>" splits by longest dialing-code prefix; no match
		// falls back to the default code with an empty number.
		code, number := refdata.SplitPhone(*patch.Combined)
		draft.Phone.CountryCode = code.Code
		draft.Phone.NationalNumber = validation.SanitizeNationalNumber(number)
		touched = true
	}
	if patch.CountryCode != nil {
		code := strings.TrimSpace(*patch.CountryCode)
		if _, ok := refdata.DialingCodeFor(code); !ok {
			return nil, fmt.Errorf("%w: unknown dialing code %q", ErrDraftInvalidInput, code)
		}
		draft.Phone.CountryCode = code
		touched = true
	}
	if patch.NationalNumber != nil {
		draft.Phone.NationalNumber = validation.SanitizeNationalNumber(*patch.NationalNumber)
		touched = true
	}

	errs := FieldErrors{}
	if touched {
		// A dialing-code change re-validates the existing number without
		// clearing it.
		errs = errs.Merge(FieldErrors{"phone": validation.Phone(draft.Phone.CountryCode, draft.Phone.NationalNumber)})
	}
	return errs, nil
}

func (s *draftService) applyShippingPatch(draft *domain.OrderDraft, patch *ShippingPatch) error {
	if patch == nil {
		return fmt.Errorf("%w: shipping patch is required", ErrDraftInvalidInput)
	}
	if patch.Method == nil {
		return nil
	}

	option, ok := refdata.ShippingOptionFor(strings.TrimSpace(*patch.Method))
	if !ok {
		return fmt.Errorf("%w: unknown shipping method %q", ErrDraftInvalidInput, *patch.Method)
	}
	draft.Shipping.Method = option.Method
	draft.Shipping.CostCents = option.CostCents
	return nil
}

func (s *draftService) applyPaymentPatch(draft *domain.OrderDraft, patch *PaymentPatch) (FieldErrors, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: payment patch is required", ErrDraftInvalidInput)
	}

	if patch.Method != nil {
		method, err := parsePaymentMethod(*patch.Method)
		if err != nil {
			return nil, err
		}
		// Switching the discriminant keeps every variant's draft intact.
		draft.Payment.Method = method
	}

	errs := FieldErrors{}
	if patch.Card != nil {
		vctx := validation.Context{Now: s.now()}
		card := &draft.Payment.Card
		if patch.Card.Number != nil {
			card.Number = validation.FormatCardNumber(*patch.Card.Number)
			errs = errs.Merge(FieldErrors{"number": validation.CardField("number", card.Number, vctx)})
		}
		if patch.Card.Expiry != nil {
			card.Expiry = validation.FormatExpiry(*patch.Card.Expiry)
			errs = errs.Merge(FieldErrors{"expiry": validation.CardField("expiry", card.Expiry, vctx)})
		}
		if patch.Card.CVV != nil {
			card.CVV = validation.SanitizeCVV(*patch.Card.CVV)
			errs = errs.Merge(FieldErrors{"securityCode": validation.CardField("securityCode", card.CVV, vctx)})
		}
		if patch.Card.NameOnCard != nil {
			card.NameOnCard = strings.TrimSpace(*patch.Card.NameOnCard)
			errs = errs.Merge(FieldErrors{"name": validation.CardField("name", card.NameOnCard, vctx)})
		}
		if patch.Card.BillingSameAsShipping != nil {
			card.BillingSameAsShipping = *patch.Card.BillingSameAsShipping
		}
	}
	return errs, nil
}

func (s *draftService) applyRememberMePatch(draft *domain.OrderDraft, patch *RememberMePatch) (FieldErrors, error) {
	if patch == nil {
		return nil, fmt.Errorf("%w: remember-me patch is required", ErrDraftInvalidInput)
	}

	if patch.SaveInfo != nil {
		draft.RememberMe.SaveInfo = *patch.SaveInfo
	}

	touched := false
	if patch.Combined != nil {
		code, number := refdata.SplitPhone(*patch.Combined)
		draft.RememberMe.Phone.CountryCode = code.Code
		draft.RememberMe.Phone.NationalNumber = validation.SanitizeNationalNumber(number)
		touched = true
	}
	if patch.CountryCode != nil {
		code := strings.TrimSpace(*patch.CountryCode)
		if _, ok := refdata.DialingCodeFor(code); !ok {
			return nil, fmt.Errorf("%w: unknown dialing code %q", ErrDraftInvalidInput, code)
		}
		draft.RememberMe.Phone.CountryCode = code
		touched = true
	}
	if patch.NationalNumber != nil {
		draft.RememberMe.Phone.NationalNumber = validation.SanitizeNationalNumber(*patch.NationalNumber)
		touched = true
	}

	errs := FieldErrors{}
	if touched && draft.RememberMe.SaveInfo {
		errs = errs.Merge(FieldErrors{"phone": validation.Phone(draft.RememberMe.Phone.CountryCode, draft.RememberMe.Phone.NationalNumber)})
	}
	return errs, nil
}

func (s *draftService) applyDiscountPatch(draft *domain.OrderDraft, patch *DiscountPatch) error {
	if patch == nil {
		return fmt.Errorf("%w: discount patch is required", ErrDraftInvalidInput)
	}
	if patch.Code != nil {
		draft.DiscountCode = strings.TrimSpace(*patch.Code)
	}
	return nil
}

// validateDraft runs every section's rules ahead of submission.
func (s *draftService) validateDraft(draft domain.OrderDraft) FieldErrors {
	vctx := validation.Context{Now: s.now()}

	errs := FieldErrors{}
	errs = errs.Merge(validation.Contact(draft.Contact, vctx))
	errs = errs.Merge(validation.Delivery(draft.Delivery, vctx))
	errs = errs.Merge(FieldErrors{"phone": validation.Phone(draft.Phone.CountryCode, draft.Phone.NationalNumber)})

	if strings.TrimSpace(draft.Shipping.Method) == "" {
		errs["shippingMethod"] = "Select a shipping method"
	}

	switch draft.Payment.Method {
	case domain.PaymentMethodCard:
		errs = errs.Merge(validation.Card(draft.Payment.Card, vctx))
	case domain.PaymentMethodEasypaisa, domain.PaymentMethodJazzcash:
		if draft.Payment.ActiveReceipt() == nil {
			errs["receipt"] = "Upload your payment receipt"
		}
	default:
		errs["paymentMethod"] = "Select a payment method"
	}

	return errs
}

func (s *draftService) mirrorKey(draft domain.OrderDraft) string {
	if key := strings.TrimSpace(draft.ClientKey); key != "" {
		return key
	}
	return draft.ID
}

// mirrorPayment caches the payment section after every payment change. Cache
// failures are logged and never surface to the caller.
func (s *draftService) mirrorPayment(ctx context.Context, draft domain.OrderDraft) {
	if err := s.mirror.Save(ctx, s.mirrorKey(draft), draft.Payment); err != nil {
		s.logger(ctx, "failed to mirror payment section", map[string]any{
			"draftId": draft.ID,
			"error":   err.Error(),
		})
	}
}

func (s *draftService) translateRepoError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrDraftNotFound) {
		return ErrDraftNotFound
	}
	var repoErr repositories.RepositoryError
	if errors.As(err, &repoErr) {
		switch {
		case repoErr.IsNotFound():
			return ErrDraftNotFound
		case repoErr.IsConflict():
			return ErrDraftUnavailable
		case repoErr.IsUnavailable():
			return ErrDraftUnavailable
		}
		return ErrDraftUnavailable
	}
	return ErrDraftUnavailable
}

func parsePaymentMethod(value string) (domain.PaymentMethod, error) {
	method := domain.PaymentMethod(strings.ToLower(strings.TrimSpace(value)))
	for _, candidate := range domain.KnownPaymentMethods {
		if method == candidate {
			return method, nil
		}
	}
	return "", fmt.Errorf("%w: unknown payment method %q", ErrDraftInvalidInput, value)
}

type submissionEnvelope struct {
	DraftID      string                   `json:"draftId"`
	SubmittedAt  time.Time                `json:"submittedAt"`
	Contact      domain.ContactInfo       `json:"contact"`
	Delivery     deliverySummary          `json:"delivery"`
	Phone        string                   `json:"phone"`
	Shipping     domain.ShippingSelection `json:"shipping"`
	Payment      paymentSummary           `json:"payment"`
	DiscountCode string                   `json:"discountCode,omitempty"`
	Items        []domain.LineItem        `json:"items"`
	TotalCents   int64                    `json:"totalCents"`
}

type deliverySummary struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

type paymentSummary struct {
	Method      string `json:"method"`
	ReceiptName string `json:"receiptName,omitempty"`
}

// submissionRecord flattens the draft for the submission log, the stand-in
// for the downstream order collaborator. Card secrets never enter the log.
func submissionRecord(draft domain.OrderDraft, submittedAt time.Time) submissionEnvelope {
	countryName := ""
	if draft.Delivery.Country != nil {
		countryName = draft.Delivery.Country.Name
	}
	receiptName := ""
	if receipt := draft.Payment.ActiveReceipt(); receipt != nil {
		receiptName = receipt.Filename
	}
	return submissionEnvelope{
		DraftID:     draft.ID,
		SubmittedAt: submittedAt,
		Contact:     draft.Contact,
		Delivery: deliverySummary{
			Name:    strings.TrimSpace(draft.Delivery.FirstName + " " + draft.Delivery.LastName),
			Address: draft.Delivery.Address,
			City:    draft.Delivery.City,
			State:   draft.Delivery.State,
			ZipCode: draft.Delivery.ZipCode,
			Country: countryName,
		},
		Phone:        strings.TrimSpace(draft.Phone.CountryCode + " " + draft.Phone.NationalNumber),
		Shipping:     draft.Shipping,
		Payment:      paymentSummary{Method: string(draft.Payment.Method), ReceiptName: receiptName},
		DiscountCode: draft.DiscountCode,
		Items:        draft.Cart.Items,
		TotalCents:   draft.Cart.TotalCents,
	}
}
