package stepper

import (
	"lgu-portal-service/internal/pkg/constvars"
	"net/url"
)

// Navigator receives the URL projection of the session. Replace is called
// after every accepted transition, Redirect when the browser must leave for
// the hosted checkout page.
type Navigator interface {
	Replace(location Location)
	Redirect(checkoutURL string)
}

// EncodeLocation writes location into query, dropping parameters that only
// matter for a single round trip.
func EncodeLocation(query url.Values, location Location) url.Values {
	encoded := url.Values{}
	for key, values := range query {
		encoded[key] = append([]string(nil), values...)
	}

	encoded.Del(constvars.StepperQueryReset)
	encoded.Del(constvars.StepperQueryCancel)
	encoded.Del(constvars.StepperQuerySuccess)
	encoded.Set(constvars.StepperQueryStep, string(location.Step))
	if location.TransactionID != "" {
		encoded.Set(constvars.StepperQueryTransactionID, location.TransactionID)
	} else {
		encoded.Del(constvars.StepperQueryTransactionID)
	}
	return encoded
}

type returnSignal struct {
	reset         bool
	cancel        bool
	success       bool
	step          Step
	transactionID string
}

func readQuery(query url.Values) returnSignal {
	step, _ := ParseStep(query.Get(constvars.StepperQueryStep))
	return returnSignal{
		reset:         isTruthy(query.Get(constvars.StepperQueryReset)),
		cancel:        isTruthy(query.Get(constvars.StepperQueryCancel)),
		success:       isTruthy(query.Get(constvars.StepperQuerySuccess)),
		step:          step,
		transactionID: query.Get(constvars.StepperQueryTransactionID),
	}
}

func isTruthy(value string) bool {
	return value == "1" || value == "true"
}

// NopNavigator discards the projection.
type NopNavigator struct{}

func (NopNavigator) Replace(Location) {}
func (NopNavigator) Redirect(string) {}
