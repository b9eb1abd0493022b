package validator

// messages maps "<json path>.<rule>" to the message shown to the caller
var messages = map[string]string{
	"description.required":          "Description is required.",
	"description.min":               "Description must be at least 10 characters long.",
	"description.max":               "Description must not exceed 500 characters.",
	"amount.decimalgt":              "Amount must be greater than zero.",
	"amount.decimallte":             "Amount must not exceed 9999999999999999.99.",
	"amount.decimalscale":           "Amount must have at most 2 decimal places.",
	"dateOfIncident.required":       "Date of incident is required.",
	"dateOfIncident.notfuture":      "Date of incident cannot be in the future.",
	"incidentLocation.required":     "Incident location is required.",
	"incidentLocation.max":          "Incident location must not exceed 250 characters.",
	"policyNumber.required":         "Policy number is required.",
	"policyNumber.max":              "Policy number must not exceed 50 characters.",
	"policyType.required":           "Policy type is required.",
	"policyType.max":                "Policy type must not exceed 50 characters.",
	"claimantId.required":           "Claimant ID is required.",
	"startDate.required":            "Policy start date is required.",
	"endDate.required":              "Policy end date is required.",
	"endDate.gtefield":              "Policy end date must not be before the start date.",
	"claimant.required":             "Claimant information is required.",
	"claimant.firstName.required":   "Claimant first name is required.",
	"claimant.lastName.required":    "Claimant last name is required.",
	"claimant.email.required":       "Claimant email is required.",
	"claimant.email.email":          "A valid email address is required.",
	"claimant.confirmEmail.eqfield": "Confirm email must match email.",
	"claimant.phone.required":       "Claimant phone number is required.",
	"firstName.required":            "Claimant first name is required.",
	"lastName.required":             "Claimant last name is required.",
	"email.required":                "Claimant email is required.",
	"email.email":                   "A valid email address is required.",
	"confirmEmail.eqfield":          "Confirm email must match email.",
	"phone.required":                "Claimant phone number is required.",
	"dob.notfuture":                 "Date of birth cannot be in the future.",
	"claimant.dob.notfuture":        "Date of birth cannot be in the future.",
	"documents.fileName.required":   "Document file name is required.",
	"documents.filePath.required":   "Document file path is required.",
	"fileName.required":             "Document file name is required.",
	"filePath.required":             "Document file path is required.",
	"statusName.required":           "Status name is required.",
}
