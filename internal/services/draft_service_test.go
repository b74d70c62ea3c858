package services

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/stethcare/checkout-api/internal/domain"
	"github.com/stethcare/checkout-api/internal/repositories"
	"github.com/stethcare/checkout-api/internal/validation"
)

type draftRepoStub struct {
	drafts   map[string]domain.OrderDraft
	saveErr  error
	loadErr  error
	saves    int
	lastSave domain.OrderDraft
}

func newDraftRepoStub(drafts ...domain.OrderDraft) *draftRepoStub {
	stub := &draftRepoStub{drafts: map[string]domain.OrderDraft{}}
	for _, d := range drafts {
		stub.drafts[d.ID] = d.Clone()
	}
	return stub
}

func (s *draftRepoStub) SaveDraft(_ context.Context, draft domain.OrderDraft) (domain.OrderDraft, error) {
	if s.saveErr != nil {
		return domain.OrderDraft{}, s.saveErr
	}
	s.saves++
	s.lastSave = draft.Clone()
	s.drafts[draft.ID] = draft.Clone()
	return draft.Clone(), nil
}

func (s *draftRepoStub) LoadDraft(_ context.Context, draftID string) (domain.OrderDraft, error) {
	if s.loadErr != nil {
		return domain.OrderDraft{}, s.loadErr
	}
	draft, ok := s.drafts[draftID]
	if !ok {
		return domain.OrderDraft{}, repositories.ErrDraftNotFound
	}
	return draft.Clone(), nil
}

func (s *draftRepoStub) DeleteDraft(_ context.Context, draftID string) error {
	delete(s.drafts, draftID)
	return nil
}

type mirrorStub struct {
	entries  map[string]domain.PaymentDraft
	loadErr  error
	saveErr  error
	delErr   error
	saves    int
	deletes  int
	lastKey  string
	lastSave domain.PaymentDraft
}

func newMirrorStub() *mirrorStub {
	return &mirrorStub{entries: map[string]domain.PaymentDraft{}}
}

func (m *mirrorStub) Save(_ context.Context, key string, payment domain.PaymentDraft) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.lastKey = key
	m.lastSave = payment.Clone()
	m.entries[key] = payment.Clone()
	return nil
}

func (m *mirrorStub) Load(_ context.Context, key string) (domain.PaymentDraft, error) {
	if m.loadErr != nil {
		return domain.PaymentDraft{}, m.loadErr
	}
	payment, ok := m.entries[key]
	if !ok {
		return domain.PaymentDraft{}, repositories.ErrMirrorNotFound
	}
	return payment.Clone(), nil
}

func (m *mirrorStub) Delete(_ context.Context, key string) error {
	if m.delErr != nil {
		return m.delErr
	}
	m.deletes++
	m.lastKey = key
	delete(m.entries, key)
	return nil
}

type logRecorder struct {
	messages []string
}

func (l *logRecorder) log(_ context.Context, msg string, _ map[string]any) {
	l.messages = append(l.messages, msg)
}

func (l *logRecorder) contains(msg string) bool {
	for _, m := range l.messages {
		if m == msg {
			return true
		}
	}
	return false
}

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func newTestService(t *testing.T, repo *draftRepoStub, mirror *mirrorStub, log *logRecorder) DraftService {
	t.Helper()
	deps := DraftServiceDeps{
		Repository: repo,
		Mirror:     mirror,
		Clock:      func() time.Time { return testNow },
	}
	if log != nil {
		deps.Logger = log.log
	}
	counter := 0
	deps.IDGenerator = func() string {
		counter++
		return "01TESTULID" + string(rune('A'+counter-1))
	}
	svc, err := NewDraftService(deps)
	if err != nil {
		t.Fatalf("NewDraftService: %v", err)
	}
	return svc
}

func validOpenDraft() domain.OrderDraft {
	return domain.OrderDraft{
		ID:     "draft-1",
		Status: domain.DraftStatusOpen,
		Contact: domain.ContactInfo{
			FirstName: "Sana",
			LastName:  "Khan",
			Email:     "sana@example.com",
		},
		Delivery: domain.DeliveryInfo{
			FirstName: "Sana",
			LastName:  "Khan",
			Address:   "14 Mall Road",
			City:      "Lahore",
			ZipCode:   "54000",
			Country:   &domain.CountryRef{Name: "Pakistan", ISOCode: "PK", FlagGlyph: "\U0001F1F5\U0001F1F0"},
		},
		Phone:    domain.PhoneNumber{CountryCode: "+92", NationalNumber: "3001234567"},
		Shipping: domain.ShippingSelection{Method: "standard", CostCents: 0},
		Payment: domain.PaymentDraft{
			Method: domain.PaymentMethodCard,
			Card: domain.CardDraft{
				Number:     "4111 1111 1111 1111",
				Expiry:     "12/28",
				CVV:        "123",
				NameOnCard: "Sana Khan",
			},
		},
		Cart: domain.Cart{
			Items:      []domain.LineItem{{Name: "Grey Lanyard", Color: "Grey", PriceCents: 1600}},
			TotalCents: 1600,
		},
		CreatedAt: testNow.Add(-time.Hour),
		UpdatedAt: testNow.Add(-time.Hour),
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewDraftServiceRequiresDeps(t *testing.T) {
	clock := func() time.Time { return testNow }

	if _, err := NewDraftService(DraftServiceDeps{Mirror: newMirrorStub(), Clock: clock}); err == nil {
		t.Fatal("expected error without repository")
	}
	if _, err := NewDraftService(DraftServiceDeps{Repository: newDraftRepoStub(), Clock: clock}); err == nil {
		t.Fatal("expected error without mirror")
	}
	if _, err := NewDraftService(DraftServiceDeps{Repository: newDraftRepoStub(), Mirror: newMirrorStub()}); err == nil {
		t.Fatal("expected error without clock")
	}
}

func TestCreateDraftSeedsDefaults(t *testing.T) {
	repo := newDraftRepoStub()
	mirror := newMirrorStub()
	svc := newTestService(t, repo, mirror, nil)

	result, err := svc.CreateDraft(context.Background(), CreateDraftCommand{})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	draft := result.Draft
	if draft.ID == "" {
		t.Fatal("expected generated draft ID")
	}
	if draft.Status != domain.DraftStatusOpen {
		t.Errorf("status = %q, want %q", draft.Status, domain.DraftStatusOpen)
	}
	if draft.Payment.Method != domain.PaymentMethodCard {
		t.Errorf("default payment method = %q, want card", draft.Payment.Method)
	}
	if draft.Phone.CountryCode != "+92" {
		t.Errorf("default dialing code = %q, want +92", draft.Phone.CountryCode)
	}
	if len(draft.Cart.Items) != 3 {
		t.Fatalf("seeded cart has %d items, want 3", len(draft.Cart.Items))
	}
	var want int64
	for _, item := range draft.Cart.Items {
		want += item.PriceCents
	}
	if draft.Cart.TotalCents != want {
		t.Errorf("cart total = %d, want %d", draft.Cart.TotalCents, want)
	}
	if !draft.CreatedAt.Equal(testNow) || !draft.UpdatedAt.Equal(testNow) {
		t.Errorf("timestamps = %v/%v, want %v", draft.CreatedAt, draft.UpdatedAt, testNow)
	}
}

func TestCreateDraftRehydratesMirroredPayment(t *testing.T) {
	repo := newDraftRepoStub()
	mirror := newMirrorStub()
	cached := domain.PaymentDraft{
		Method: domain.PaymentMethodEasypaisa,
		Card:   domain.CardDraft{Number: "4111 1111 1111 1111"},
		Easypaisa: domain.WalletDraft{
			Receipt: &domain.ReceiptRef{Filename: "receipt.png"},
		},
	}
	mirror.entries["shopper-7"] = cached

	svc := newTestService(t, repo, mirror, nil)
	result, err := svc.CreateDraft(context.Background(), CreateDraftCommand{ClientKey: "shopper-7"})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}

	if result.Draft.ClientKey != "shopper-7" {
		t.Errorf("client key = %q, want shopper-7", result.Draft.ClientKey)
	}
	if result.Draft.Payment.Method != domain.PaymentMethodEasypaisa {
		t.Errorf("rehydrated method = %q, want easypaisa", result.Draft.Payment.Method)
	}
	if result.Draft.Payment.Easypaisa.Receipt == nil || result.Draft.Payment.Easypaisa.Receipt.Filename != "receipt.png" {
		t.Error("rehydrated payment lost the receipt marker")
	}
}

func TestCreateDraftToleratesCorruptMirror(t *testing.T) {
	repo := newDraftRepoStub()
	mirror := newMirrorStub()
	mirror.loadErr = repositories.ErrMirrorCorrupt
	log := &logRecorder{}

	svc := newTestService(t, repo, mirror, log)
	result, err := svc.CreateDraft(context.Background(), CreateDraftCommand{ClientKey: "shopper-7"})
	if err != nil {
		t.Fatalf("CreateDraft: %v", err)
	}
	if result.Draft.Payment.Method != domain.PaymentMethodCard {
		t.Errorf("payment method = %q, want the card default", result.Draft.Payment.Method)
	}
	if !log.contains("payment mirror unusable, starting with empty payment section") {
		t.Error("expected a warning for the corrupt mirror entry")
	}
}

func TestGetDraft(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	t.Run("found", func(t *testing.T) {
		draft, err := svc.GetDraft(context.Background(), "draft-1")
		if err != nil {
			t.Fatalf("GetDraft: %v", err)
		}
		if draft.ID != "draft-1" {
			t.Errorf("draft ID = %q", draft.ID)
		}
	})

	t.Run("missing", func(t *testing.T) {
		if _, err := svc.GetDraft(context.Background(), "nope"); !errors.Is(err, ErrDraftNotFound) {
			t.Fatalf("err = %v, want ErrDraftNotFound", err)
		}
	})

	t.Run("blank id", func(t *testing.T) {
		if _, err := svc.GetDraft(context.Background(), "  "); !errors.Is(err, ErrDraftInvalidInput) {
			t.Fatalf("err = %v, want ErrDraftInvalidInput", err)
		}
	})
}

func TestUpdateSectionContact(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionContact,
		Contact: &ContactPatch{Email: strPtr("not-an-email")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.Contact.Email != "not-an-email" {
		t.Errorf("email = %q, the invalid value should still be stored", result.Draft.Contact.Email)
	}
	if result.FieldErrors["email"] == "" {
		t.Error("expected a validation message for the invalid email")
	}
	if result.Draft.Contact.FirstName != "Sana" {
		t.Errorf("untouched field changed: firstName = %q", result.Draft.Contact.FirstName)
	}
}

func TestUpdateSectionDeliveryCountryResetsState(t *testing.T) {
	draft := validOpenDraft()
	draft.Delivery.Country = &domain.CountryRef{Name: "United States", ISOCode: "US"}
	draft.Delivery.State = "California"
	repo := newDraftRepoStub(draft)
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:  "draft-1",
		Section:  SectionDelivery,
		Delivery: &DeliveryPatch{CountryCode: strPtr("PK")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.Delivery.Country == nil || result.Draft.Delivery.Country.ISOCode != "PK" {
		t.Fatalf("country not replaced: %+v", result.Draft.Delivery.Country)
	}
	if result.Draft.Delivery.State != "" {
		t.Errorf("state = %q, switching countries should clear it", result.Draft.Delivery.State)
	}
}

func TestUpdateSectionDeliveryRejectsUnknownCountry(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:  "draft-1",
		Section:  SectionDelivery,
		Delivery: &DeliveryPatch{CountryCode: strPtr("ZZ")},
	})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput", err)
	}
}

func TestUpdateSectionDeliveryRejectsInvalidState(t *testing.T) {
	draft := validOpenDraft()
	draft.Delivery.Country = &domain.CountryRef{Name: "United States", ISOCode: "US"}
	repo := newDraftRepoStub(draft)
	svc := newTestService(t, repo, newMirrorStub(), nil)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:  "draft-1",
		Section:  SectionDelivery,
		Delivery: &DeliveryPatch{State: strPtr("Narnia")},
	})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput", err)
	}
}

func TestUpdateSectionPaymentSwitchPreservesVariants(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	mirror := newMirrorStub()
	svc := newTestService(t, repo, mirror, nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionPayment,
		Payment: &PaymentPatch{Method: strPtr("easypaisa")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.Payment.Method != domain.PaymentMethodEasypaisa {
		t.Errorf("method = %q, want easypaisa", result.Draft.Payment.Method)
	}
	if result.Draft.Payment.Card.Number != "4111 1111 1111 1111" {
		t.Error("card variant was cleared by the method switch")
	}
	if mirror.saves != 1 {
		t.Errorf("mirror saves = %d, want 1", mirror.saves)
	}
	if mirror.lastSave.Method != domain.PaymentMethodEasypaisa {
		t.Errorf("mirrored method = %q", mirror.lastSave.Method)
	}
}

func TestUpdateSectionPaymentNormalisesCardInput(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	mirror := newMirrorStub()
	svc := newTestService(t, repo, mirror, nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionPayment,
		Payment: &PaymentPatch{Card: &CardPatch{
			Number: strPtr("4242-4242-4242-4242"),
			Expiry: strPtr("1227"),
			CVV:    strPtr("9x8y7"),
		}},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	card := result.Draft.Payment.Card
	if card.Number != "4242 4242 4242 4242" {
		t.Errorf("number = %q", card.Number)
	}
	if card.Expiry != "12/27" {
		t.Errorf("expiry = %q", card.Expiry)
	}
	if card.CVV != "987" {
		t.Errorf("cvv = %q", card.CVV)
	}
}

func TestUpdateSectionPaymentMirrorsFailuresAreLogOnly(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	mirror := newMirrorStub()
	mirror.saveErr = errors.New("cache down")
	log := &logRecorder{}
	svc := newTestService(t, repo, mirror, log)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionPayment,
		Payment: &PaymentPatch{Method: strPtr("jazzcash")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if !log.contains("failed to mirror payment section") {
		t.Error("expected a log entry for the mirror failure")
	}
}

func TestUpdateSectionShipping(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:  "draft-1",
		Section:  SectionShipping,
		Shipping: &ShippingPatch{Method: strPtr("Express")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.Shipping.Method != "express" || result.Draft.Shipping.CostCents != 2500 {
		t.Errorf("shipping = %+v", result.Draft.Shipping)
	}

	_, err = svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:  "draft-1",
		Section:  SectionShipping,
		Shipping: &ShippingPatch{Method: strPtr("teleport")},
	})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput for unknown method", err)
	}
}

func TestUpdateSectionPhone(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionPhone,
		Phone:   &PhonePatch{NationalNumber: strPtr("(300) 123-4567")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.Phone.NationalNumber != "(300) 123-4567" {
		t.Errorf("national number = %q", result.Draft.Phone.NationalNumber)
	}
	if result.FieldErrors["phone"] != "" {
		t.Errorf("phone error = %q, want none", result.FieldErrors["phone"])
	}

	_, err = svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionPhone,
		Phone:   &PhonePatch{CountryCode: strPtr("+999")},
	})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput for unknown dialing code", err)
	}
}

func TestUpdateSectionPhoneCombinedString(t *testing.T) {
	cases := []struct {
		name       string
		combined   string
		wantCode   string
		wantNumber string
		wantErr    bool
	}{
		{"nanp", "+1 2025550142", "+1", "2025550142", false},
		{"longest prefix wins", "+971 501234567", "+971", "501234567", false},
		{"no match falls back", "00 123", "+92", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newDraftRepoStub(validOpenDraft())
			svc := newTestService(t, repo, newMirrorStub(), nil)

			result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
				DraftID: "draft-1",
				Section: SectionPhone,
				Phone:   &PhonePatch{Combined: strPtr(tc.combined)},
			})
			if err != nil {
				t.Fatalf("UpdateSection: %v", err)
			}
			if result.Draft.Phone.CountryCode != tc.wantCode {
				t.Errorf("country code = %q, want %q", result.Draft.Phone.CountryCode, tc.wantCode)
			}
			if result.Draft.Phone.NationalNumber != tc.wantNumber {
				t.Errorf("national number = %q, want %q", result.Draft.Phone.NationalNumber, tc.wantNumber)
			}
			if tc.wantErr && result.FieldErrors["phone"] == "" {
				t.Error("expected a phone validation message")
			}
			if !tc.wantErr && result.FieldErrors["phone"] != "" {
				t.Errorf("phone error = %q, want none", result.FieldErrors["phone"])
			}
		})
	}
}

func TestUpdateSectionRememberMeCombinedString(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:    "draft-1",
		Section:    SectionRememberMe,
		RememberMe: &RememberMePatch{SaveInfo: boolPtr(true), Combined: strPtr("+44 20 7946 0958")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.Draft.RememberMe.Phone.CountryCode != "+44" {
		t.Errorf("country code = %q, want +44", result.Draft.RememberMe.Phone.CountryCode)
	}
	if result.Draft.RememberMe.Phone.NationalNumber != "20 7946 0958" {
		t.Errorf("national number = %q", result.Draft.RememberMe.Phone.NationalNumber)
	}
	if result.FieldErrors["phone"] != "" {
		t.Errorf("phone error = %q, want none", result.FieldErrors["phone"])
	}
}

func TestUpdateSectionRememberMeValidatesOnlyWhenSaving(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	result, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:    "draft-1",
		Section:    SectionRememberMe,
		RememberMe: &RememberMePatch{CountryCode: strPtr("+92"), NationalNumber: strPtr("12")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.FieldErrors.HasErrors() {
		t.Errorf("opt-out remember-me should skip validation, got %v", result.FieldErrors)
	}

	result, err = svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID:    "draft-1",
		Section:    SectionRememberMe,
		RememberMe: &RememberMePatch{SaveInfo: boolPtr(true), NationalNumber: strPtr("12")},
	})
	if err != nil {
		t.Fatalf("UpdateSection: %v", err)
	}
	if result.FieldErrors["phone"] == "" {
		t.Error("expected a phone validation message once save-info is on")
	}
}

func TestUpdateSectionRejectsUnknownSection(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{DraftID: "draft-1", Section: "billing"})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput", err)
	}
}

func TestUpdateSectionRequiresMatchingPatch(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{DraftID: "draft-1", Section: SectionContact})
	if !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput for a nil patch", err)
	}
}

func TestUpdateSectionRejectsSubmittedDraft(t *testing.T) {
	draft := validOpenDraft()
	draft.Status = domain.DraftStatusSubmitted
	repo := newDraftRepoStub(draft)
	svc := newTestService(t, repo, newMirrorStub(), nil)

	_, err := svc.UpdateSection(context.Background(), UpdateSectionCommand{
		DraftID: "draft-1",
		Section: SectionContact,
		Contact: &ContactPatch{Email: strPtr("a@b.com")},
	})
	if !errors.Is(err, ErrDraftSubmitted) {
		t.Fatalf("err = %v, want ErrDraftSubmitted", err)
	}
}

func TestAddLineItem(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	svc := newTestService(t, repo, newMirrorStub(), nil)

	cart, err := svc.AddLineItem(context.Background(), LineItemCommand{DraftID: "draft-1", Name: "Grey Lanyard"})
	if err != nil {
		t.Fatalf("AddLineItem: %v", err)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("cart has %d items, want 2 (duplicates express quantity)", len(cart.Items))
	}
	if cart.TotalCents != 3200 {
		t.Errorf("total = %d, want 3200", cart.TotalCents)
	}

	if _, err := svc.AddLineItem(context.Background(), LineItemCommand{DraftID: "draft-1", Name: "Mystery Box"}); !errors.Is(err, ErrDraftInvalidInput) {
		t.Fatalf("err = %v, want ErrDraftInvalidInput for unknown item", err)
	}
}

func TestRemoveLineItem(t *testing.T) {
	draft := validOpenDraft()
	draft.Cart.Items = append(draft.Cart.Items, domain.LineItem{Name: "Grey Lanyard", Color: "Grey", PriceCents: 1600})
	draft.Cart.Recalculate()
	repo := newDraftRepoStub(draft)
	svc := newTestService(t, repo, newMirrorStub(), nil)

	cart, err := svc.RemoveLineItem(context.Background(), LineItemCommand{DraftID: "draft-1", Name: "Grey Lanyard"})
	if err != nil {
		t.Fatalf("RemoveLineItem: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("cart has %d items, removal should drop every match", len(cart.Items))
	}

	saves := repo.saves
	cart, err = svc.RemoveLineItem(context.Background(), LineItemCommand{DraftID: "draft-1", Name: "Grey Lanyard"})
	if err != nil {
		t.Fatalf("RemoveLineItem no-op: %v", err)
	}
	if repo.saves != saves {
		t.Error("removing an absent item should not save the draft")
	}
	if cart.TotalCents != 0 {
		t.Errorf("total = %d, want 0", cart.TotalCents)
	}
}

func TestAttachReceipt(t *testing.T) {
	repo := newDraftRepoStub(validOpenDraft())
	mirror := newMirrorStub()
	svc := newTestService(t, repo, mirror, nil)

	result, err := svc.AttachReceipt(context.Background(), AttachReceiptCommand{
		DraftID:     "draft-1",
		Method:      domain.PaymentMethodEasypaisa,
		Filename:    "transfer.png",
		ContentType: "image/png",
		SizeBytes:   2048,
	})
	if err != nil {
		t.Fatalf("AttachReceipt: %v", err)
	}
	receipt := result.Draft.Payment.Easypaisa.Receipt
	if receipt == nil || receipt.Filename != "transfer.png" || receipt.SizeBytes != 2048 {
		t.Fatalf("receipt = %+v", receipt)
	}
	if mirror.saves != 1 {
		t.Errorf("mirror saves = %d, want 1 after a receipt change", mirror.saves)
	}

	t.Run("card method rejected", func(t *testing.T) {
		_, err := svc.AttachReceipt(context.Background(), AttachReceiptCommand{
			DraftID:     "draft-1",
			Method:      domain.PaymentMethodCard,
			Filename:    "transfer.png",
			ContentType: "image/png",
			SizeBytes:   2048,
		})
		if !errors.Is(err, ErrDraftInvalidInput) {
			t.Fatalf("err = %v, want ErrDraftInvalidInput", err)
		}
	})

	t.Run("wrong content type", func(t *testing.T) {
		_, err := svc.AttachReceipt(context.Background(), AttachReceiptCommand{
			DraftID:     "draft-1",
			Method:      domain.PaymentMethodJazzcash,
			Filename:    "transfer.zip",
			ContentType: "application/zip",
			SizeBytes:   2048,
		})
		if !errors.Is(err, validation.ErrReceiptType) {
			t.Fatalf("err = %v, want ErrReceiptType", err)
		}
	})

	t.Run("oversized", func(t *testing.T) {
		_, err := svc.AttachReceipt(context.Background(), AttachReceiptCommand{
			DraftID:     "draft-1",
			Method:      domain.PaymentMethodJazzcash,
			Filename:    "transfer.png",
			ContentType: "image/png",
			SizeBytes:   validation.MaxReceiptSize + 1,
		})
		if !errors.Is(err, validation.ErrReceiptTooLarge) {
			t.Fatalf("err = %v, want ErrReceiptTooLarge", err)
		}
	})
}

func TestSubmitDraftSuccess(t *testing.T) {
	draft := validOpenDraft()
	draft.ClientKey = "shopper-7"
	repo := newDraftRepoStub(draft)
	mirror := newMirrorStub()
	mirror.entries["shopper-7"] = draft.Payment
	log := &logRecorder{}
	svc := newTestService(t, repo, mirror, log)

	result, err := svc.SubmitDraft(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}
	if result.Draft.Status != domain.DraftStatusSubmitted {
		t.Errorf("status = %q, want submitted", result.Draft.Status)
	}
	if result.Draft.SubmittedAt == nil || !result.Draft.SubmittedAt.Equal(testNow) {
		t.Errorf("submittedAt = %v, want %v", result.Draft.SubmittedAt, testNow)
	}
	if result.ConfirmationRef == "" {
		t.Error("expected a confirmation reference")
	}
	if !log.contains("checkout draft submitted") {
		t.Error("expected the submission log entry")
	}
	if _, ok := mirror.entries["shopper-7"]; ok {
		t.Error("submit should clear the payment mirror entry")
	}
}

func TestSubmitDraftValidationErrors(t *testing.T) {
	t.Run("missing shipping", func(t *testing.T) {
		draft := validOpenDraft()
		draft.Shipping = domain.ShippingSelection{}
		svc := newTestService(t, newDraftRepoStub(draft), newMirrorStub(), nil)

		_, err := svc.SubmitDraft(context.Background(), "draft-1")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want *ValidationError", err)
		}
		if verr.Fields["shippingMethod"] != "Select a shipping method" {
			t.Errorf("shippingMethod = %q", verr.Fields["shippingMethod"])
		}
	})

	t.Run("wallet without receipt", func(t *testing.T) {
		draft := validOpenDraft()
		draft.Payment.Method = domain.PaymentMethodJazzcash
		svc := newTestService(t, newDraftRepoStub(draft), newMirrorStub(), nil)

		_, err := svc.SubmitDraft(context.Background(), "draft-1")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want *ValidationError", err)
		}
		if verr.Fields["receipt"] != "Upload your payment receipt" {
			t.Errorf("receipt = %q", verr.Fields["receipt"])
		}
	})

	t.Run("expired card", func(t *testing.T) {
		draft := validOpenDraft()
		draft.Payment.Card.Expiry = "01/20"
		svc := newTestService(t, newDraftRepoStub(draft), newMirrorStub(), nil)

		_, err := svc.SubmitDraft(context.Background(), "draft-1")
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("err = %v, want *ValidationError", err)
		}
		if verr.Fields["expiry"] == "" {
			t.Error("expected an expiry validation message")
		}
	})

	t.Run("validation errors leave the draft untouched", func(t *testing.T) {
		draft := validOpenDraft()
		draft.Shipping = domain.ShippingSelection{}
		repo := newDraftRepoStub(draft)
		svc := newTestService(t, repo, newMirrorStub(), nil)

		if _, err := svc.SubmitDraft(context.Background(), "draft-1"); err == nil {
			t.Fatal("expected validation error")
		}
		stored, _ := repo.LoadDraft(context.Background(), "draft-1")
		if stored.Status != domain.DraftStatusOpen {
			t.Errorf("status = %q, want open", stored.Status)
		}
	})
}

func TestSubmitDraftAlreadySubmitted(t *testing.T) {
	draft := validOpenDraft()
	draft.Status = domain.DraftStatusSubmitted
	svc := newTestService(t, newDraftRepoStub(draft), newMirrorStub(), nil)

	if _, err := svc.SubmitDraft(context.Background(), "draft-1"); !errors.Is(err, ErrDraftSubmitted) {
		t.Fatalf("err = %v, want ErrDraftSubmitted", err)
	}
}

func TestSubmitDraftMirrorDeleteFailureIsLogOnly(t *testing.T) {
	draft := validOpenDraft()
	repo := newDraftRepoStub(draft)
	mirror := newMirrorStub()
	mirror.delErr = errors.New("cache down")
	log := &logRecorder{}
	svc := newTestService(t, repo, mirror, log)

	result, err := svc.SubmitDraft(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("SubmitDraft: %v", err)
	}
	if result.Draft.Status != domain.DraftStatusSubmitted {
		t.Errorf("status = %q, want submitted", result.Draft.Status)
	}
	if !log.contains("failed to clear payment mirror after submit") {
		t.Error("expected a log entry for the mirror delete failure")
	}
}

type repoFailure struct {
	notFound    bool
	conflict    bool
	unavailable bool
}

func (e repoFailure) Error() string       { return "repo failure" }
func (e repoFailure) IsNotFound() bool    { return e.notFound }
func (e repoFailure) IsConflict() bool    { return e.conflict }
func (e repoFailure) IsUnavailable() bool { return e.unavailable }

func TestRepositoryErrorTranslation(t *testing.T) {
	cases := []struct {
		name    string
		loadErr error
		want    error
	}{
		{"sentinel not found", repositories.ErrDraftNotFound, ErrDraftNotFound},
		{"categorised not found", repoFailure{notFound: true}, ErrDraftNotFound},
		{"conflict", repoFailure{conflict: true}, ErrDraftUnavailable},
		{"unavailable", repoFailure{unavailable: true}, ErrDraftUnavailable},
		{"uncategorised", errors.New("boom"), ErrDraftUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newDraftRepoStub()
			repo.loadErr = tc.loadErr
			svc := newTestService(t, repo, newMirrorStub(), nil)

			if _, err := svc.GetDraft(context.Background(), "draft-1"); !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}
