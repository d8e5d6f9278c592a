package validation

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type contactInput struct {
	FullName string `json:"fullName" validate:"required" label:"Contact name"`
	Phone    string `json:"phone" validate:"required"`
}

type sampleInput struct {
	Name          string           `json:"name" validate:"required" label:"Report name"`
	Email         string           `json:"email" validate:"omitempty,email"`
	Kind          string           `json:"kind" validate:"required,oneof=annual sick"`
	Cost          *decimal.Decimal `json:"cost" validate:"required"`
	EffectiveDate time.Time        `json:"effectiveDate" validate:"required"`
	EndDate       time.Time        `json:"endDate" validate:"omitempty,gtefield=EffectiveDate"`
	Contacts      []contactInput   `json:"contacts" validate:"dive"`
}

func validSample() sampleInput {
	cost := decimal.NewFromInt(0)
	return sampleInput{
		Name:          "PAYE return",
		Kind:          "annual",
		Cost:          &cost,
		EffectiveDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStructValid(t *testing.T) {
	in := validSample()
	require.NoError(t, Struct(in).Err())
}

func TestStructRequiredMessagesUseLabels(t *testing.T) {
	in := validSample()
	in.Name = ""
	in.Cost = nil
	in.EffectiveDate = time.Time{}

	verr := Struct(in)
	require.Error(t, verr.Err())
	require.Equal(t, "Report name is required", verr.Error())
	require.True(t, verr.Has("cost"))
	require.True(t, verr.Has("effectiveDate"))

	messages := map[string]string{}
	for _, issue := range verr.Issues {
		messages[issue.Field] = issue.Message
	}
	require.Equal(t, "Cost is required", messages["cost"])
	require.Equal(t, "Effective date is required", messages["effectiveDate"])
}

func TestStructNestedAndEnum(t *testing.T) {
	in := validSample()
	in.Kind = "holiday"
	in.Email = "not-an-email"
	in.Contacts = []contactInput{{Phone: "555"}}

	verr := Struct(in)
	messages := map[string]string{}
	for _, issue := range verr.Issues {
		messages[issue.Field] = issue.Message
	}
	require.Equal(t, "Kind must be one of: annual, sick", messages["kind"])
	require.Equal(t, "Email must be a valid email address", messages["email"])
	require.Equal(t, "Contact name is required", messages["contacts[0].fullName"])
}

func TestStructFieldOrdering(t *testing.T) {
	in := validSample()
	in.EndDate = in.EffectiveDate.AddDate(0, 0, -1)

	verr := Struct(in)
	require.Equal(t, "End date cannot be before effective date", verr.Error())
}

func TestAsUnwrapsWrappedErrors(t *testing.T) {
	verr := &Error{}
	verr.Add("endDate", "End date cannot be before start date.")
	wrapped := fmt.Errorf("submit leave: %w", verr.Err())

	got, ok := As(wrapped)
	require.True(t, ok)
	require.Equal(t, "End date cannot be before start date.", got.Error())

	_, ok = As(errors.New("boom"))
	require.False(t, ok)
}

func TestHumanize(t *testing.T) {
	require.Equal(t, "Effective date", humanize("effectiveDate"))
	require.Equal(t, "Bank name", humanize("bank_name"))
}
