package usecase

import (
	"github.com/escriturashoy/escrituras-api/internal/entity"
)

var requiredLeadFields = []string{"name", "email", "property_location", "property_type"}

// ValidateCreateLead checks a decoded POST /leads body. The raw payload is
// untrusted; only the returned ValidatedLead goes further.
//
// Email format is not checked here; the public form does that on its side.
func ValidateCreateLead(payload map[string]any) (ValidatedLead, error) {
	required := make(map[string]string, len(requiredLeadFields))
	for _, field := range requiredLeadFields {
		v, ok := nonEmptyString(payload, field)
		if !ok {
			return ValidatedLead{}, MissingFieldsError(requiredLeadFields)
		}
		required[field] = v
	}

	if !entity.IsOneOf(required["property_type"], entity.PropertyTypes) {
		return ValidatedLead{}, InvalidEnumError("property_type", entity.PropertyTypes)
	}

	urgency, err := optionalString(payload, "urgency")
	if err != nil {
		return ValidatedLead{}, InvalidEnumError("urgency", entity.Urgencies)
	}
	if urgency != nil && !entity.IsOneOf(*urgency, entity.Urgencies) {
		return ValidatedLead{}, InvalidEnumError("urgency", entity.Urgencies)
	}

	phone, err := optionalString(payload, "phone")
	if err != nil {
		return ValidatedLead{}, InvalidTypeError("phone", "string")
	}

	return ValidatedLead{
		Name:             required["name"],
		Email:            required["email"],
		PropertyLocation: required["property_location"],
		PropertyType:     required["property_type"],
		Phone:            phone,
		Urgency:          urgency,
	}, nil
}

func nonEmptyString(payload map[string]any, field string) (string, bool) {
	s, ok := payload[field].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// optionalString treats a missing key, JSON null and "" alike as absent.
func optionalString(payload map[string]any, field string) (*string, error) {
	raw, ok := payload[field]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, InvalidTypeError(field, "string")
	}
	if s == "" {
		return nil, nil
	}
	return &s, nil
}
