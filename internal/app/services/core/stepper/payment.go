package stepper

import (
	"context"
	"errors"
	"fmt"
	"lgu-portal-service/internal/app/models"
	"lgu-portal-service/internal/app/services/core/fees"
	"lgu-portal-service/internal/pkg/constvars"
	"lgu-portal-service/internal/pkg/dto/requests"
	"lgu-portal-service/internal/pkg/utils"
	"net/url"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type PaymentResult struct {
	CheckoutURL   string
	TransactionID string
	Breakdown     Breakdown
}

// Quote previews the breakdown for method without uploading or initiating
// anything. It is used by the payment step to show the total.
func (s *Stepper) Quote(ctx context.Context, method string) (*Breakdown, error) {
	s.mu.Lock()
	if err := s.guardLocked(""); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	config := s.config
	fields := s.copyFieldsLocked()
	s.mu.Unlock()

	breakdown, err := s.priceSession(ctx, config, fields, method)
	if err != nil {
		return nil, err
	}
	return &breakdown, nil
}

// Pay prices the session, uploads pending files and initiates the payment.
// Files are always uploaded and merged into the session before the
// initiation call. Any failure leaves the session on the payment step.
func (s *Stepper) Pay(ctx context.Context, method string) (*PaymentResult, error) {
	if err := s.begin(); err != nil {
		return nil, err
	}
	defer s.end()

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return nil, ErrNotMounted
	}
	if s.current != StepPayment {
		s.mu.Unlock()
		return nil, ErrInvalidStep
	}
	serviceID := s.serviceID
	config := s.config
	fields := s.copyFieldsLocked()
	previousTransactionID := s.transactionID
	s.mu.Unlock()

	requestID := utils.GetRequestID(ctx)
	s.deps.Log.Info("Stepper.Pay called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingServiceIDKey, serviceID),
		zap.String(constvars.LoggingPaymentMethodKey, method),
	)

	breakdown, err := s.priceSession(ctx, config, fields, method)
	if err != nil {
		return nil, err
	}

	successURL, cancelURL, err := s.returnURLs(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInitiationFailed, err)
	}

	uploaded, err := s.uploadPendingFiles(ctx, serviceID, config, fields)
	if err != nil {
		s.deps.Log.Error("Stepper.Pay error uploading files",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrUploadFailed, err)
	}

	s.mu.Lock()
	for fieldID, key := range uploaded {
		s.fields[fieldID] = UploadedFile(key)
		fields[fieldID] = UploadedFile(key)
	}
	s.mu.Unlock()

	response, err := s.deps.Payments.Initiate(ctx, &requests.InitiatePayment{
		ServiceID:        serviceID,
		ServiceName:      config.Title,
		Breakdown:        breakdown.Items,
		TotalAmountMinor: breakdown.TotalAmountMinor,
		FormData:         buildFormData(config, fields),
		PaymentMethod:    method,
		SuccessURL:       successURL,
		CancelURL:        cancelURL,
	})
	if err != nil {
		s.deps.Log.Error("Stepper.Pay error initiating payment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %w", ErrInitiationFailed, err)
	}
	if response.CheckoutURL == "" || response.TransactionID == "" {
		return nil, fmt.Errorf("%w: incomplete initiation response", ErrInitiationFailed)
	}

	s.mu.Lock()
	s.transactionID = response.TransactionID
	s.completed[StepPayment] = true
	s.mu.Unlock()

	if previousTransactionID != "" && previousTransactionID != response.TransactionID {
		s.cancelDetached(ctx, previousTransactionID)
	}

	s.publishLocation()
	s.deps.Navigator.Redirect(response.CheckoutURL)

	s.deps.Log.Info("Stepper.Pay succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingTransactionIDKey, response.TransactionID),
		zap.Int64(constvars.LoggingTotalAmountMinorKey, breakdown.TotalAmountMinor),
	)
	return &PaymentResult{
		CheckoutURL:   response.CheckoutURL,
		TransactionID: response.TransactionID,
		Breakdown:     breakdown,
	}, nil
}

// priceSession re-validates the fields and builds the breakdown. A settings
// failure waives the convenience fee instead of failing.
func (s *Stepper) priceSession(ctx context.Context, config *models.ServiceConfig, fields map[string]FieldValue, method string) (Breakdown, error) {
	if !utils.IsValidPaymentMethod(method) {
		validationErr := &ValidationError{}
		validationErr.add("", "Please choose a supported payment method.")
		return Breakdown{}, validationErr
	}
	if validationErr := validateForm(config, fields); validationErr != nil {
		return Breakdown{}, validationErr
	}

	base, validationErr := effectiveBase(config, fields)
	if validationErr != nil {
		return Breakdown{}, validationErr
	}
	processing, validationErr := processingFee(config)
	if validationErr != nil {
		return Breakdown{}, validationErr
	}

	settings, err := s.deps.Settings.GetPublicSettings(ctx)
	if err != nil {
		s.deps.Log.Warn("Stepper settings unavailable, convenience fee waived",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	quote := fees.ComputeConvenienceFee(fees.ScheduleFor(settings, err, method), base.Add(processing))

	breakdown, err := buildBreakdown(config.Title, base, processing, quote)
	if err != nil {
		validationErr := &ValidationError{}
		validationErr.add("", "The amount to pay is too large.")
		return Breakdown{}, validationErr
	}
	if breakdown.TotalAmountMinor <= 0 {
		validationErr := &ValidationError{}
		validationErr.add("", "The amount to pay must be greater than zero.")
		return Breakdown{}, validationErr
	}
	return breakdown, nil
}

type pendingUpload struct {
	field models.FormField
	file  models.LocalFile
}

// uploadPendingFiles uploads every pending file concurrently and returns the
// storage key per field. Nothing is returned unless all uploads succeed.
func (s *Stepper) uploadPendingFiles(ctx context.Context, serviceID string, config *models.ServiceConfig, fields map[string]FieldValue) (map[string]string, error) {
	var pending []pendingUpload
	for _, field := range config.FormFields {
		if file, ok := fields[field.ID].PendingFile(); ok {
			pending = append(pending, pendingUpload{field: field, file: file})
		}
	}
	if len(pending) == 0 {
		return nil, nil
	}

	keys := make([]string, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	for i, upload := range pending {
		i, upload := i, upload
		g.Go(func() error {
			key, err := s.deps.Uploads.Upload(gctx, upload.field, upload.file, serviceID)
			if err != nil {
				return fmt.Errorf("upload %s: %w", upload.field.ID, err)
			}
			if key == "" {
				return fmt.Errorf("upload %s: empty object key", upload.field.ID)
			}
			keys[i] = key
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	uploaded := make(map[string]string, len(pending))
	for i, upload := range pending {
		uploaded[upload.field.ID] = keys[i]
	}
	return uploaded, nil
}

// buildFormData keeps only values that can be submitted: text, lists and
// uploaded keys.
func buildFormData(config *models.ServiceConfig, fields map[string]FieldValue) map[string]interface{} {
	formData := make(map[string]interface{}, len(config.FormFields))
	for _, field := range config.FormFields {
		if value, ok := fields[field.ID].payload(); ok {
			formData[field.ID] = value
		}
	}
	return formData
}

func (s *Stepper) returnURLs(serviceID string) (string, string, error) {
	if s.opts.PortalBaseURL == "" {
		return "", "", errors.New("portal base url is not configured")
	}
	base, err := url.Parse(strings.TrimRight(s.opts.PortalBaseURL, "/"))
	if err != nil {
		return "", "", err
	}
	base.Path = base.Path + "/services/" + url.PathEscape(serviceID)

	success := *base
	success.RawQuery = url.Values{
		constvars.StepperQueryStep:    {string(StepReceipt)},
		constvars.StepperQuerySuccess: {"1"},
	}.Encode()

	cancel := *base
	cancel.RawQuery = url.Values{
		constvars.StepperQueryStep:   {string(StepPayment)},
		constvars.StepperQueryCancel: {"1"},
	}.Encode()

	return success.String(), cancel.String(), nil
}
