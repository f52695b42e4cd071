package stepper

type Step string

const (
	StepForm    Step = "form"
	StepReview  Step = "review"
	StepPayment Step = "payment"
	StepReceipt Step = "receipt"
)

var stepOrder = []Step{StepForm, StepReview, StepPayment, StepReceipt}

func (s Step) index() int {
	for i, step := range stepOrder {
		if step == s {
			return i
		}
	}
	return -1
}

func (s Step) Valid() bool {
	return s.index() >= 0
}

func ParseStep(value string) (Step, bool) {
	step := Step(value)
	return step, step.Valid()
}

// Location is the part of the session that is mirrored into the page URL.
type Location struct {
	Step          Step
	TransactionID string
}
