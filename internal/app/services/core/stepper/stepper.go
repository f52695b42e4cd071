// Package stepper drives a citizen through form, review, payment and
// receipt for one payable service.
//
// A Stepper is the single owner of the session state. The page URL is only a
// projection of it: every accepted transition is written through the
// Navigator and the URL is read back once, in Mount.
package stepper

import (
	"context"
	"fmt"
	"lgu-portal-service/internal/app/contracts"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/catalog"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/responses"
	"lgu-portal-service/internal/pkg/utils"
	"net/url"
	"sync"

	"go.uber.org/zap"
)

type ConfigResolver interface {
	Resolve(ctx context.Context, serviceID string) catalog.Resolution
}

type Dependencies struct {
	Resolver  ConfigResolver
	Settings  contracts.SettingsClient
	Uploads   contracts.UploadClient
	Payments  contracts.PaymentClient
	Navigator Navigator
	Log       *zap.Logger
}

type Options struct {
	// PortalBaseURL is where the service pages live; the gateway sends the
	// citizen back to <PortalBaseURL>/services/<serviceId>.
	PortalBaseURL string
}

type Stepper struct {
	deps Dependencies
	opts Options

	mu            sync.Mutex
	busy          bool
	mounted       bool
	serviceID     string
	config        *models.ServiceConfig
	isCustom      bool
	current       Step
	completed     map[Step]bool
	fields        map[string]FieldValue
	transactionID string
	receipt       *responses.Transaction

	background sync.WaitGroup
}

// State is a copy of the session for rendering.
type State struct {
	ServiceID       string
	Config          *models.ServiceConfig
	IsCustomService bool
	CurrentStep     Step
	CompletedSteps  []Step
	Fields          map[string]FieldValue
	TransactionID   string
	Receipt         *responses.Transaction
	Busy            bool
}

func New(deps Dependencies, opts Options) *Stepper {
	if deps.Navigator == nil {
		deps.Navigator = NopNavigator{}
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	return &Stepper{
		deps:      deps,
		opts:      opts,
		current:   StepForm,
		completed: make(map[Step]bool),
		fields:    make(map[string]FieldValue),
	}
}

// Mount resolves the service and seeds the session from the page URL.
func (s *Stepper) Mount(ctx context.Context, serviceID string, query url.Values) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	requestID := utils.GetRequestID(ctx)
	s.deps.Log.Info("Stepper.Mount called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
	)

	resolution := s.deps.Resolver.Resolve(ctx, serviceID)

	s.mu.Lock()
	s.clearLocked()
	s.serviceID = serviceID
	if !resolution.Found() {
		s.config = nil
		s.mounted = false
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrServiceNotFound, serviceID)
	}
	s.config = resolution.Config
	s.isCustom = resolution.IsCustomService
	s.mounted = true
	s.mu.Unlock()

	signal := readQuery(query)
	switch {
	case signal.reset:
	case signal.step == StepReceipt && signal.transactionID != "":
		return s.loadReceipt(ctx, signal.transactionID)
	case signal.step == StepPayment && signal.cancel && signal.transactionID != "":
		return s.cancelAndShowReceipt(ctx, signal.transactionID)
	case signal.transactionID != "" && (signal.step == StepReview || signal.step == StepPayment):
		// The in-memory session that created this transaction is gone.
		s.deps.Log.Info("Stepper.Mount cancelling stale transaction",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTransactionIDKey, signal.transactionID),
		)
		s.cancelDetached(ctx, signal.transactionID)
	}

	s.publishLocation()
	return nil
}

// HandleReturn processes the query the gateway redirect brings back.
func (s *Stepper) HandleReturn(ctx context.Context, query url.Values) error {
	if err := s.begin(); err != nil {
		return err
	}
	defer s.end()

	s.mu.Lock()
	mounted := s.mounted
	transactionID := s.transactionID
	s.mu.Unlock()
	if !mounted {
		return ErrNotMounted
	}

	signal := readQuery(query)
	if signal.transactionID != "" {
		transactionID = signal.transactionID
	}

	switch {
	case signal.cancel:
		return s.cancelAndShowReceipt(ctx, transactionID)
	case signal.success || signal.step == StepReceipt:
		if transactionID == "" {
			return fmt.Errorf("%w: no transaction id in return url", ErrReceiptFailed)
		}
		return s.loadReceipt(ctx, transactionID)
	}
	return nil
}

// SetInput stores the value of a non file field. Checkbox fields keep every
// value, other fields take a single value; no values clears the field.
func (s *Stepper) SetInput(fieldID string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.editableFieldLocked(fieldID)
	if err != nil {
		return err
	}
	if field.Type == models.FieldTypeFile {
		return fmt.Errorf("%w: %s expects a file", ErrFieldType, fieldID)
	}

	if len(values) == 0 {
		s.fields[fieldID] = Unset()
		return nil
	}
	if len(field.Options) > 0 {
		for _, value := range values {
			if !containsOption(field.Options, value) {
				return fmt.Errorf("%w: %q is not an option of %s", ErrFieldType, value, fieldID)
			}
		}
	}

	if field.IsMultiValued() {
		s.fields[fieldID] = List(values...)
		return nil
	}
	if len(values) > 1 {
		return fmt.Errorf("%w: %s takes a single value", ErrFieldType, fieldID)
	}
	s.fields[fieldID] = Text(values[0])
	return nil
}

// SelectFile replaces the value of a file field with a local file that is
// uploaded when the citizen pays.
func (s *Stepper) SelectFile(fieldID string, file models.LocalFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	field, err := s.editableFieldLocked(fieldID)
	if err != nil {
		return err
	}
	if field.Type != models.FieldTypeFile {
		return fmt.Errorf("%w: %s does not accept files", ErrFieldType, fieldID)
	}
	s.fields[fieldID] = PendingFile(file)
	return nil
}

// Submit moves form to review once every required field is filled.
func (s *Stepper) Submit() error {
	s.mu.Lock()
	if err := s.guardLocked(StepForm); err != nil {
		s.mu.Unlock()
		return err
	}
	if validationErr := validateForm(s.config, s.fields); validationErr != nil {
		s.mu.Unlock()
		return validationErr
	}
	s.completed[StepForm] = true
	s.current = StepReview
	s.mu.Unlock()

	s.publishLocation()
	return nil
}

// Confirm moves review to payment.
func (s *Stepper) Confirm() error {
	s.mu.Lock()
	if err := s.guardLocked(StepReview); err != nil {
		s.mu.Unlock()
		return err
	}
	s.completed[StepReview] = true
	s.current = StepPayment
	s.mu.Unlock()

	s.publishLocation()
	return nil
}

// Back goes one step backwards without touching entered data. Leaving
// payment cancels the transaction created there without waiting for it.
func (s *Stepper) Back(ctx context.Context) error {
	s.mu.Lock()
	if err := s.guardLocked(""); err != nil {
		s.mu.Unlock()
		return err
	}

	var staleTransactionID string
	switch s.current {
	case StepReview:
		s.current = StepForm
	case StepPayment:
		staleTransactionID = s.transactionID
		s.transactionID = ""
		s.current = StepReview
	default:
		s.mu.Unlock()
		return ErrInvalidStep
	}
	s.mu.Unlock()

	s.publishLocation()
	if staleTransactionID != "" {
		s.cancelDetached(ctx, staleTransactionID)
	}
	return nil
}

// GoTo follows a breadcrumb. Only the current step or a completed step can
// be reached; anything else leaves the session untouched.
func (s *Stepper) GoTo(ctx context.Context, step Step) bool {
	s.mu.Lock()
	if s.busy || !s.mounted || step == s.current || !s.completed[step] {
		s.mu.Unlock()
		return false
	}

	var staleTransactionID string
	if s.current == StepPayment && s.transactionID != "" {
		staleTransactionID = s.transactionID
		s.transactionID = ""
	}
	s.current = step
	s.mu.Unlock()

	s.publishLocation()
	if staleTransactionID != "" {
		s.cancelDetached(ctx, staleTransactionID)
	}
	return true
}

// Reset clears the session and returns to the form.
func (s *Stepper) Reset() error {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.clearLocked()
	s.mu.Unlock()

	s.publishLocation()
	return nil
}

func (s *Stepper) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := State{
		ServiceID:       s.serviceID,
		Config:          s.config,
		IsCustomService: s.isCustom,
		CurrentStep:     s.current,
		Fields:          s.copyFieldsLocked(),
		TransactionID:   s.transactionID,
		Receipt:         s.receipt,
		Busy:            s.busy,
	}
	for _, step := range stepOrder {
		if s.completed[step] {
			state.CompletedSteps = append(state.CompletedSteps, step)
		}
	}
	return state
}

// Wait blocks until detached cancellations have finished.
func (s *Stepper) Wait() {
	s.background.Wait()
}

func (s *Stepper) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.busy = true
	return nil
}

func (s *Stepper) end() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}

// guardLocked rejects the call while another action runs, before mounting,
// or when the session is not on step. An empty step skips the step check.
func (s *Stepper) guardLocked(step Step) error {
	if s.busy {
		return ErrBusy
	}
	if !s.mounted {
		return ErrNotMounted
	}
	if step != "" && s.current != step {
		return ErrInvalidStep
	}
	return nil
}

func (s *Stepper) editableFieldLocked(fieldID string) (models.FormField, error) {
	if err := s.guardLocked(StepForm); err != nil {
		return models.FormField{}, err
	}
	field, ok := s.config.Field(fieldID)
	if !ok {
		return models.FormField{}, fmt.Errorf("%w: %s", ErrUnknownField, fieldID)
	}
	return field, nil
}

func (s *Stepper) clearLocked() {
	s.current = StepForm
	s.completed = make(map[Step]bool)
	s.fields = make(map[string]FieldValue)
	s.transactionID = ""
	s.receipt = nil
}

func (s *Stepper) copyFieldsLocked() map[string]FieldValue {
	fields := make(map[string]FieldValue, len(s.fields))
	for id, value := range s.fields {
		fields[id] = value
	}
	return fields
}

func (s *Stepper) publishLocation() {
	s.mu.Lock()
	location := Location{Step: s.current, TransactionID: s.transactionID}
	s.mu.Unlock()
	s.deps.Navigator.Replace(location)
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
