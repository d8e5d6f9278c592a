package employeehandler

import (
	"hrportal/internal/domain/employee"
	"hrportal/internal/domain/payroll"
	"hrportal/internal/transport/http/shared"
)

// Date fields arrive as YYYY-MM-DD strings and shadow the domain fields.

type profilePayload struct {
	payroll.ProfileInput
	EffectiveDate string `json:"effectiveDate"`
}

func (p profilePayload) input(v *shared.Validator, prefix string) payroll.ProfileInput {
	in := p.ProfileInput
	in.EffectiveDate = v.OptionalDate(prefix+"effectiveDate", p.EffectiveDate)
	return in
}

type createPayload struct {
	employee.CreateInput
	DateOfBirth string          `json:"dateOfBirth"`
	HireDate    string          `json:"hireDate"`
	Payroll     *profilePayload `json:"payroll"`
}

func (p createPayload) input(v *shared.Validator) employee.CreateInput {
	in := p.CreateInput
	in.DateOfBirth = v.OptionalDatePtr("dateOfBirth", p.DateOfBirth)
	in.HireDate = v.OptionalDate("hireDate", p.HireDate)
	if p.Payroll != nil {
		profile := p.Payroll.input(v, "payroll.")
		in.Payroll = &profile
	}
	return in
}

type patchPayload struct {
	employee.Patch
	DateOfBirth     *string `json:"dateOfBirth"`
	HireDate        *string `json:"hireDate"`
	TerminationDate *string `json:"terminationDate"`
}

func (p patchPayload) patch(v *shared.Validator) employee.Patch {
	out := p.Patch
	if p.DateOfBirth != nil {
		out.DateOfBirth = v.OptionalDatePtr("dateOfBirth", *p.DateOfBirth)
	}
	if p.HireDate != nil {
		out.HireDate = v.OptionalDatePtr("hireDate", *p.HireDate)
	}
	if p.TerminationDate != nil {
		out.TerminationDate = v.OptionalDatePtr("terminationDate", *p.TerminationDate)
	}
	return out
}
