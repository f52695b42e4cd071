package stepper

import (
	"context"
	"errors"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/dto/responses"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testPortalBaseURL = "https://portal.example.gov.ph"

type callLog struct {
	mu    sync.Mutex
	calls []string
}

func (l *callLog) add(call string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, call)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.calls...)
}

type builtinResolver struct {
	catalog *catalog.Catalog
}

func (r builtinResolver) Resolve(_ context.Context, serviceID string) catalog.Resolution {
	config, ok := r.catalog.Lookup(serviceID)
	if !ok {
		return catalog.Resolution{}
	}
	return catalog.Resolution{Config: config, Source: catalog.SourceBuiltin}
}

type fakeSettings struct {
	settings *models.ConvenienceFeeSettings
	err      error
}

func (f fakeSettings) GetPublicSettings(context.Context) (*models.ConvenienceFeeSettings, error) {
	return f.settings, f.err
}

type fakeUploads struct {
	log *callLog
	err error
}

func (f *fakeUploads) Upload(_ context.Context, field models.FormField, file models.LocalFile, serviceID string) (string, error) {
	f.log.add("upload:" + field.ID)
	if f.err != nil {
		return "", f.err
	}
	return "services/" + serviceID + "/" + field.ID + "/" + file.Name, nil
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) Initiate(ctx context.Context, request *requests.InitiatePayment) (*responses.InitiatePayment, error) {
	args := m.Called(ctx, request)
	response, _ := args.Get(0).(*responses.InitiatePayment)
	return response, args.Error(1)
}

func (m *mockPayments) Cancel(ctx context.Context, transactionID string) (*responses.CancelPayment, error) {
	args := m.Called(ctx, transactionID)
	response, _ := args.Get(0).(*responses.CancelPayment)
	return response, args.Error(1)
}

func (m *mockPayments) GetTransaction(ctx context.Context, transactionID string) (*responses.Transaction, error) {
	args := m.Called(ctx, transactionID)
	response, _ := args.Get(0).(*responses.Transaction)
	return response, args.Error(1)
}

type recordingNavigator struct {
	mu        sync.Mutex
	locations []Location
	redirects []string
}

func (n *recordingNavigator) Replace(location Location) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.locations = append(n.locations, location)
}

func (n *recordingNavigator) Redirect(checkoutURL string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.redirects = append(n.redirects, checkoutURL)
}

func (n *recordingNavigator) last() Location {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.locations[len(n.locations)-1]
}

type harness struct {
	stepper   *Stepper
	payments  *mockPayments
	uploads   *fakeUploads
	navigator *recordingNavigator
	log       *callLog
}

func newHarness(t *testing.T, settings fakeSettings) *harness {
	t.Helper()
	builtin, err := catalog.LoadBuiltinCatalog()
	require.NoError(t, err)

	log := &callLog{}
	h := &harness{
		payments:  new(mockPayments),
		uploads:   &fakeUploads{log: log},
		navigator: &recordingNavigator{},
		log:       log,
	}
	h.stepper = New(Dependencies{
		Resolver:  builtinResolver{catalog: builtin},
		Settings:  settings,
		Uploads:   h.uploads,
		Payments:  h.payments,
		Navigator: h.navigator,
		Log:       zap.NewNop(),
	}, Options{PortalBaseURL: testPortalBaseURL})
	return h
}

func zeroFees() fakeSettings {
	return fakeSettings{settings: &models.ConvenienceFeeSettings{
		Card: &models.FeeParams{Percent: 0, Fixed: 0, Min: 0},
	}}
}

func fillBusinessPermit(t *testing.T, s *Stepper, cost string) {
	t.Helper()
	require.NoError(t, s.SetInput("businessName", "Dela Cruz Store"))
	require.NoError(t, s.SetInput("ownerEmail", "owner@example.com"))
	require.NoError(t, s.SetInput("applicationType", "New"))
	require.NoError(t, s.SelectFile("dtiCertificate", models.LocalFile{
		Name:        "dti.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4"),
	}))
	require.NoError(t, s.SetInput("assessedAmount", cost))
}

func (h *harness) mountAtPayment(t *testing.T, cost string) {
	t.Helper()
	require.NoError(t, h.stepper.Mount(context.Background(), "business-permits", url.Values{}))
	fillBusinessPermit(t, h.stepper, cost)
	require.NoError(t, h.stepper.Submit())
	require.NoError(t, h.stepper.Confirm())
}

func TestStepper_Mount(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown service", func(t *testing.T) {
		h := newHarness(t, zeroFees())

		err := h.stepper.Mount(ctx, "does-not-exist", url.Values{})

		assert.ErrorIs(t, err, ErrServiceNotFound)
		assert.ErrorIs(t, h.stepper.Submit(), ErrNotMounted)
	})

	t.Run("fresh mount starts at form", func(t *testing.T) {
		h := newHarness(t, zeroFees())

		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepForm, state.CurrentStep)
		assert.Empty(t, state.CompletedSteps)
		assert.Equal(t, "Business Permit Application and Renewal", state.Config.Title)
		assert.Equal(t, Location{Step: StepForm}, h.navigator.last())
	})

	t.Run("reset ignores every other parameter", func(t *testing.T) {
		h := newHarness(t, zeroFees())

		query := url.Values{"reset": {"1"}, "step": {"receipt"}, "transactionId": {"tx-1"}}
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", query))
		h.stepper.Wait()

		assert.Equal(t, StepForm, h.stepper.Snapshot().CurrentStep)
		h.payments.AssertNotCalled(t, "GetTransaction", mock.Anything, mock.Anything)
		h.payments.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	})

	t.Run("receipt step loads the transaction", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		receipt := &responses.Transaction{TransactionID: "tx-1", Status: "paid"}
		h.payments.On("GetTransaction", mock.Anything, "tx-1").Return(receipt, nil)

		query := url.Values{"step": {"receipt"}, "transactionId": {"tx-1"}}
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", query))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReceipt, state.CurrentStep)
		assert.Equal(t, receipt, state.Receipt)
		assert.Equal(t, "tx-1", state.TransactionID)
		assert.Equal(t, Location{Step: StepReceipt, TransactionID: "tx-1"}, h.navigator.last())
	})

	t.Run("receipt lookup failure stays on receipt", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.payments.On("GetTransaction", mock.Anything, "tx-1").Return(nil, errors.New("502 bad gateway"))

		query := url.Values{"step": {"receipt"}, "transactionId": {"tx-1"}}
		err := h.stepper.Mount(ctx, "business-permits", query)

		assert.ErrorIs(t, err, ErrReceiptFailed)
		state := h.stepper.Snapshot()
		assert.Equal(t, StepReceipt, state.CurrentStep)
		assert.Nil(t, state.Receipt)
	})

	t.Run("cancel return always ends on receipt", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.payments.On("Cancel", mock.Anything, "tx-2").Return(nil, errors.New("timeout"))
		h.payments.On("GetTransaction", mock.Anything, "tx-2").
			Return(&responses.Transaction{TransactionID: "tx-2", Status: "awaiting_payment"}, nil)

		query := url.Values{"step": {"payment"}, "cancel": {"1"}, "transactionId": {"tx-2"}}
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", query))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReceipt, state.CurrentStep)
		assert.Equal(t, "awaiting_payment", state.Receipt.Status)
		h.payments.AssertNumberOfCalls(t, "Cancel", 1)
	})

	t.Run("stale transaction is cancelled in the background", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.payments.On("Cancel", mock.Anything, "tx-3").
			Return(&responses.CancelPayment{TransactionID: "tx-3", Status: "cancelled"}, nil)

		query := url.Values{"step": {"review"}, "transactionId": {"tx-3"}}
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", query))
		h.stepper.Wait()

		state := h.stepper.Snapshot()
		assert.Equal(t, StepForm, state.CurrentStep)
		assert.Empty(t, state.TransactionID)
		h.payments.AssertCalled(t, "Cancel", mock.Anything, "tx-3")
	})
}

func TestStepper_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("missing required fields are reported together", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		require.NoError(t, h.stepper.SetInput("businessName", "Dela Cruz Store"))

		err := h.stepper.Submit()

		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Please fill in the required fields: Owner Email, Application Type, DTI or SEC Registration, Assessed Amount (PHP).", err.Error())
		assert.Equal(t, []string{"ownerEmail", "applicationType", "dtiCertificate", "assessedAmount"}, validationErr.Fields)
		assert.Equal(t, StepForm, h.stepper.Snapshot().CurrentStep)
		assert.Len(t, h.navigator.locations, 1)
	})

	t.Run("whitespace does not satisfy a required field", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "500")
		require.NoError(t, h.stepper.SetInput("businessName", "   "))

		err := h.stepper.Submit()

		assert.Equal(t, "Please fill in the required fields: Registered Business Name.", err.Error())
	})

	t.Run("cost must be positive", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "0")

		err := h.stepper.Submit()

		assert.Equal(t, "Assessed Amount (PHP) must be an amount greater than zero.", err.Error())
		assert.Equal(t, StepForm, h.stepper.Snapshot().CurrentStep)
	})

	t.Run("valid form moves to review", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "1,500.50")

		require.NoError(t, h.stepper.Submit())

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReview, state.CurrentStep)
		assert.Equal(t, []Step{StepForm}, state.CompletedSteps)
		assert.Equal(t, Location{Step: StepReview}, h.navigator.last())
	})
}

func TestStepper_SetInput(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, zeroFees())
	require.NoError(t, h.stepper.Mount(ctx, "real-property-tax", url.Values{}))

	assert.ErrorIs(t, h.stepper.SetInput("nope", "x"), ErrUnknownField)
	assert.ErrorIs(t, h.stepper.SetInput("quarters", "Q5"), ErrFieldType)

	require.NoError(t, h.stepper.SetInput("quarters", "Q1", "Q3"))
	values, ok := h.stepper.Snapshot().Fields["quarters"].List()
	require.True(t, ok)
	assert.Equal(t, []string{"Q1", "Q3"}, values)

	assert.ErrorIs(t, h.stepper.SetInput("propertyOwner", "a", "b"), ErrFieldType)
	assert.ErrorIs(t, h.stepper.SelectFile("propertyOwner", models.LocalFile{Name: "x.pdf"}), ErrFieldType)
}

func TestStepper_Pay(t *testing.T) {
	ctx := context.Background()

	t.Run("breakdown without convenience fee", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")

		var initiated *requests.InitiatePayment
		h.payments.On("Initiate", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				h.log.add("initiate")
				initiated = args.Get(1).(*requests.InitiatePayment)
			}).
			Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-1", TransactionID: "tx-9"}, nil)

		result, err := h.stepper.Pay(ctx, "card")
		require.NoError(t, err)

		assert.Equal(t, "tx-9", result.TransactionID)
		h.payments.AssertNumberOfCalls(t, "Initiate", 1)
		assert.Equal(t, []requests.PaymentBreakdownItem{
			{Code: CodeBase, Label: "Business Permit Application and Renewal", AmountMinor: 50000},
			{Code: CodeProcessingFee, Label: "Processing fee", AmountMinor: 5000},
		}, initiated.Breakdown)
		assert.Equal(t, int64(55000), initiated.TotalAmountMinor)
		assert.Equal(t, "card", initiated.PaymentMethod)
		assert.Equal(t, testPortalBaseURL+"/services/business-permits?step=receipt&success=1", initiated.SuccessURL)
		assert.Equal(t, testPortalBaseURL+"/services/business-permits?cancel=1&step=payment", initiated.CancelURL)
		assert.Equal(t, "services/business-permits/dtiCertificate/dti.pdf", initiated.FormData["dtiCertificate"])
		assert.Equal(t, "500", initiated.FormData["assessedAmount"])

		assert.Equal(t, []string{"upload:dtiCertificate", "initiate"}, h.log.all())
		assert.Equal(t, []string{"https://checkout.example/inv-1"}, h.navigator.redirects)
		assert.Equal(t, Location{Step: StepPayment, TransactionID: "tx-9"}, h.navigator.last())

		state := h.stepper.Snapshot()
		assert.Equal(t, "tx-9", state.TransactionID)
		assert.Contains(t, state.CompletedSteps, StepPayment)
		key, ok := state.Fields["dtiCertificate"].UploadedKey()
		assert.True(t, ok)
		assert.Equal(t, "services/business-permits/dtiCertificate/dti.pdf", key)
	})

	t.Run("convenience fee is added when above zero", func(t *testing.T) {
		h := newHarness(t, fakeSettings{settings: &models.ConvenienceFeeSettings{
			Card: &models.FeeParams{Percent: 2.5, Fixed: 10, Min: 5},
		}})
		h.mountAtPayment(t, "500")

		breakdown, err := h.stepper.Quote(ctx, "card")
		require.NoError(t, err)

		require.Len(t, breakdown.Items, 3)
		assert.Equal(t, CodeConvenienceFee, breakdown.Items[2].Code)
		assert.Equal(t, int64(2375), breakdown.Items[2].AmountMinor)
		assert.Equal(t, int64(57375), breakdown.TotalAmountMinor)
	})

	t.Run("settings outage waives the fee", func(t *testing.T) {
		h := newHarness(t, fakeSettings{err: errors.New("connection refused")})
		h.mountAtPayment(t, "500")

		breakdown, err := h.stepper.Quote(ctx, "qrph")
		require.NoError(t, err)

		assert.Len(t, breakdown.Items, 2)
		assert.Equal(t, int64(55000), breakdown.TotalAmountMinor)
	})

	t.Run("upload failure never reaches initiation", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")
		h.uploads.err = errors.New("403 signature expired")

		_, err := h.stepper.Pay(ctx, "card")

		assert.ErrorIs(t, err, ErrUploadFailed)
		h.payments.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
		state := h.stepper.Snapshot()
		assert.Equal(t, StepPayment, state.CurrentStep)
		assert.Equal(t, KindPendingFile, state.Fields["dtiCertificate"].Kind())
		assert.Empty(t, h.navigator.redirects)
	})

	t.Run("initiation failure stays on payment", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")
		h.payments.On("Initiate", mock.Anything, mock.Anything).Return(nil, errors.New("500 internal"))

		_, err := h.stepper.Pay(ctx, "card")

		assert.ErrorIs(t, err, ErrInitiationFailed)
		assert.Equal(t, "We could not start the payment, please try again.", UserMessage(err))
		state := h.stepper.Snapshot()
		assert.Equal(t, StepPayment, state.CurrentStep)
		assert.Empty(t, state.TransactionID)
	})

	t.Run("unsupported method is rejected before any call", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")

		_, err := h.stepper.Pay(ctx, "cash")

		var validationErr *ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Empty(t, h.log.all())
	})

	t.Run("configured base amount when the service has no cost field", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "barangay-clearance", url.Values{}))
		require.NoError(t, h.stepper.SetInput("fullName", "Maria Santos"))
		require.NoError(t, h.stepper.SetInput("barangay", "Poblacion"))
		require.NoError(t, h.stepper.SetInput("purpose", "Employment"))
		require.NoError(t, h.stepper.Submit())
		require.NoError(t, h.stepper.Confirm())

		var initiated *requests.InitiatePayment
		h.payments.On("Initiate", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { initiated = args.Get(1).(*requests.InitiatePayment) }).
			Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-7", TransactionID: "tx-7"}, nil)

		result, err := h.stepper.Pay(ctx, "card")
		require.NoError(t, err)

		assert.Equal(t, []requests.PaymentBreakdownItem{
			{Code: CodeBase, Label: "Barangay Clearance", AmountMinor: 10000},
			{Code: CodeProcessingFee, Label: "Processing fee", AmountMinor: 0},
		}, initiated.Breakdown)
		assert.Equal(t, int64(10000), initiated.TotalAmountMinor)
		assert.Equal(t, int64(10000), result.Breakdown.TotalAmountMinor)
		assert.Empty(t, h.log.all())
	})

	t.Run("cost beyond the minor unit range is rejected", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "184467440737095517.16")

		err := h.stepper.Submit()
		require.Error(t, err)
		assert.Equal(t, "Assessed Amount (PHP) must be an amount greater than zero.", err.Error())
		assert.Equal(t, StepForm, h.stepper.Snapshot().CurrentStep)

		breakdown, err := h.stepper.Quote(ctx, "card")
		assert.Nil(t, breakdown)
		var validationErr *ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, []string{"assessedAmount"}, validationErr.Fields)
		h.payments.AssertNotCalled(t, "Initiate", mock.Anything, mock.Anything)
	})

	t.Run("configured amount beyond the minor unit range is rejected", func(t *testing.T) {
		config := &models.ServiceConfig{ID: "oversized", Title: "Oversized", BaseAmount: 1e18, FormFields: []models.FormField{}}

		_, validationErr := effectiveBase(config, map[string]FieldValue{})
		require.NotNil(t, validationErr)

		config.BaseAmount = 100
		config.ProcessingFee = 1e18
		_, validationErr = processingFee(config)
		require.NotNil(t, validationErr)
	})

	t.Run("pay is only available on the payment step", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))

		_, err := h.stepper.Pay(ctx, "card")

		assert.ErrorIs(t, err, ErrInvalidStep)
	})
}

func TestStepper_Busy(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, zeroFees())
	h.mountAtPayment(t, "500")

	started := make(chan struct{})
	release := make(chan struct{})
	h.payments.On("Initiate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-2", TransactionID: "tx-10"}, nil)

	done := make(chan error, 1)
	go func() {
		_, err := h.stepper.Pay(ctx, "card")
		done <- err
	}()
	<-started

	assert.True(t, h.stepper.Snapshot().Busy)
	_, err := h.stepper.Pay(ctx, "card")
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, h.stepper.Back(ctx), ErrBusy)
	assert.ErrorIs(t, h.stepper.Reset(), ErrBusy)
	assert.False(t, h.stepper.GoTo(ctx, StepForm))

	close(release)
	require.NoError(t, <-done)
	h.payments.AssertNumberOfCalls(t, "Initiate", 1)
	assert.False(t, h.stepper.Snapshot().Busy)
}

func TestStepper_Navigation(t *testing.T) {
	ctx := context.Background()

	t.Run("leaving payment cancels the transaction without waiting", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")
		h.payments.On("Initiate", mock.Anything, mock.Anything).
			Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-3", TransactionID: "tx-11"}, nil)
		h.payments.On("Cancel", mock.Anything, "tx-11").
			Return(&responses.CancelPayment{TransactionID: "tx-11", Status: "cancelled"}, nil)
		_, err := h.stepper.Pay(ctx, "card")
		require.NoError(t, err)

		require.NoError(t, h.stepper.Back(ctx))
		h.stepper.Wait()

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReview, state.CurrentStep)
		assert.Empty(t, state.TransactionID)
		assert.Equal(t, Location{Step: StepReview}, h.navigator.last())
		h.payments.AssertCalled(t, "Cancel", mock.Anything, "tx-11")
	})

	t.Run("back from review keeps the entered data", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "500")
		require.NoError(t, h.stepper.Submit())

		require.NoError(t, h.stepper.Back(ctx))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepForm, state.CurrentStep)
		text, _ := state.Fields["businessName"].Text()
		assert.Equal(t, "Dela Cruz Store", text)
		assert.ErrorIs(t, h.stepper.Back(ctx), ErrInvalidStep)
	})

	t.Run("breadcrumbs only reach completed steps", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		fillBusinessPermit(t, h.stepper, "500")
		require.NoError(t, h.stepper.Submit())
		replaced := len(h.navigator.locations)

		assert.False(t, h.stepper.GoTo(ctx, StepPayment))
		assert.False(t, h.stepper.GoTo(ctx, StepReview))
		assert.Len(t, h.navigator.locations, replaced)

		assert.True(t, h.stepper.GoTo(ctx, StepForm))
		assert.Equal(t, StepForm, h.stepper.Snapshot().CurrentStep)
	})

	t.Run("reset clears the session", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")

		require.NoError(t, h.stepper.Reset())

		state := h.stepper.Snapshot()
		assert.Equal(t, StepForm, state.CurrentStep)
		assert.Empty(t, state.CompletedSteps)
		assert.Empty(t, state.Fields)
		assert.Equal(t, "business-permits", state.ServiceID)
	})

	t.Run("reset after a successful payment drops the transaction and receipt", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")
		h.payments.On("Initiate", mock.Anything, mock.Anything).
			Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-8", TransactionID: "tx-8"}, nil)
		h.payments.On("GetTransaction", mock.Anything, "tx-8").
			Return(&responses.Transaction{TransactionID: "tx-8", Status: "paid"}, nil)

		_, err := h.stepper.Pay(ctx, "card")
		require.NoError(t, err)
		require.NoError(t, h.stepper.HandleReturn(ctx, url.Values{"step": {"receipt"}, "success": {"1"}}))
		require.NotNil(t, h.stepper.Snapshot().Receipt)

		require.NoError(t, h.stepper.Reset())

		state := h.stepper.Snapshot()
		assert.Equal(t, StepForm, state.CurrentStep)
		assert.Empty(t, state.TransactionID)
		assert.Nil(t, state.Receipt)
		assert.Empty(t, state.Fields)
		assert.Equal(t, Location{Step: StepForm}, h.navigator.last())
	})
}

func TestStepper_HandleReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("success loads the receipt of the current transaction", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		h.mountAtPayment(t, "500")
		h.payments.On("Initiate", mock.Anything, mock.Anything).
			Return(&responses.InitiatePayment{CheckoutURL: "https://checkout.example/inv-4", TransactionID: "tx-12"}, nil)
		h.payments.On("GetTransaction", mock.Anything, "tx-12").
			Return(&responses.Transaction{TransactionID: "tx-12", Status: "paid"}, nil)
		_, err := h.stepper.Pay(ctx, "card")
		require.NoError(t, err)

		require.NoError(t, h.stepper.HandleReturn(ctx, url.Values{"step": {"receipt"}, "success": {"1"}}))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReceipt, state.CurrentStep)
		assert.Equal(t, "paid", state.Receipt.Status)
	})

	t.Run("cancel falls back to the cancel response", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))
		h.payments.On("Cancel", mock.Anything, "tx-13").
			Return(&responses.CancelPayment{TransactionID: "tx-13", Status: "cancelled"}, nil)
		h.payments.On("GetTransaction", mock.Anything, "tx-13").Return(nil, errors.New("404"))

		require.NoError(t, h.stepper.HandleReturn(ctx, url.Values{"cancel": {"1"}, "transactionId": {"tx-13"}}))

		state := h.stepper.Snapshot()
		assert.Equal(t, StepReceipt, state.CurrentStep)
		assert.Equal(t, "cancelled", state.Receipt.Status)
	})

	t.Run("success without a transaction id", func(t *testing.T) {
		h := newHarness(t, zeroFees())
		require.NoError(t, h.stepper.Mount(ctx, "business-permits", url.Values{}))

		err := h.stepper.HandleReturn(ctx, url.Values{"success": {"1"}})

		assert.ErrorIs(t, err, ErrReceiptFailed)
	})
}

func TestEncodeLocation(t *testing.T) {
	query := url.Values{"reset": {"1"}, "cancel": {"1"}, "transactionId": {"old"}, "lang": {"fil"}}

	encoded := EncodeLocation(query, Location{Step: StepReview})

	assert.Equal(t, "lang=fil&step=review", encoded.Encode())
	assert.Equal(t, "old", query.Get("transactionId"))
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "Another action is still in progress.", UserMessage(ErrBusy))
	assert.Equal(t, "Something went wrong, please try again.", UserMessage(errors.New("boom")))
}
