package mail

// LeadEmailData feeds lead_notification.txt.
type LeadEmailData struct {
	ID               string
	Name             string
	Email            string
	Phone            string
	PropertyLocation string
	PropertyType     string
	Urgency          string
	CreatedAt        string
}
