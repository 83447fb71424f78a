package usecase

// ValidatedLead is the only shape a lead-creation body takes past validation.
// Phone and Urgency are nil when not provided, never "".
type ValidatedLead struct {
	Name             string
	Email            string
	PropertyLocation string
	PropertyType     string
	Phone            *string
	Urgency          *string
}
