package models

import "github.com/patrickwarner/smartdocs/internal/environment"

// Location is the coarse client location reported by the edge or derived
// from the client IP. Both fields are always populated after resolution.
type Location struct {
	Country string
	City    string
}

// Environment is everything detected about a single request. It is built
// once at request entry and never outlives the request.
type Environment struct {
	OS        environment.OS
	Browser   environment.Browser
	Location  Location
	UserAgent string
}

// EnvironmentReport is the JSON body of the environment diagnostic endpoint.
// Field order matches the wire format.
type EnvironmentReport struct {
	OS        environment.OS      `json:"os"`
	Browser   environment.Browser `json:"browser"`
	Country   string              `json:"country"`
	City      string              `json:"city"`
	UserAgent string              `json:"userAgent"`
}

// Report flattens e into its diagnostic form.
func (e Environment) Report() EnvironmentReport {
	return EnvironmentReport{
		OS:        e.OS,
		Browser:   e.Browser,
		Country:   e.Location.Country,
		City:      e.Location.City,
		UserAgent: e.UserAgent,
	}
}

// EnvironmentDetails is the JSON body of the extended diagnostic endpoint.
type EnvironmentDetails struct {
	EnvironmentReport
	Profile environment.Profile `json:"profile"`
	Agent   environment.Details `json:"agent"`
}
