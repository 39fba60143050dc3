package forms

import (
	"errors"
	"testing"
)

func fieldNames(t *testing.T, err error) []string {
	t.Helper()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T: %v", err, err)
	}
	names := make([]string, len(verr.Fields))
	for i, f := range verr.Fields {
		names[i] = f.Field
	}
	return names
}

func TestConsultationValidate_AllFieldsPresent(t *testing.T) {
	in := ConsultationInput{
		BusinessName:           "  Acme Plumbing  ",
		ContactName:            "Jane Doe",
		Email:                  "jane@acme.com",
		Phone:                  "555-0100",
		BusinessType:           "Home services",
		AutomationNeeds:        "Missed-call follow-up",
		PreferredContactMethod: "email",
	}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.BusinessName != "Acme Plumbing" {
		t.Errorf("BusinessName not trimmed: %q", in.BusinessName)
	}
}

func TestConsultationValidate_ReportsEveryMissingField(t *testing.T) {
	in := ConsultationInput{
		BusinessName: "Acme Plumbing",
		Email:        "jane@acme.com",
		Phone:        "555-0100",
	}
	err := in.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	names := fieldNames(t, err)
	want := []string{"contactName", "businessType", "automationNeeds", "preferredContactMethod"}
	if len(names) != len(want) {
		t.Fatalf("failed fields = %v, want %v", names, want)
	}
	for i, n := range want {
		if names[i] != n {
			t.Errorf("failed field[%d] = %q, want %q", i, names[i], n)
		}
	}
}

func TestConsultationValidate_BadEmail(t *testing.T) {
	in := ConsultationInput{
		BusinessName:           "Acme",
		ContactName:            "Jane",
		Email:                  "not-an-email",
		Phone:                  "555-0100",
		BusinessType:           "retail",
		AutomationNeeds:        "scheduling",
		PreferredContactMethod: "phone",
	}
	err := in.Validate()
	names := fieldNames(t, err)
	if len(names) != 1 || names[0] != "email" {
		t.Errorf("failed fields = %v, want [email]", names)
	}
}

func TestDemoCallValidate(t *testing.T) {
	tests := []struct {
		name    string
		in      DemoCallInput
		wantErr []string
	}{
		{
			name: "valid",
			in:   DemoCallInput{Name: "Jane", BusinessName: "Acme", Email: "jane@acme.com", Phone: "555-0100"},
		},
		{
			name:    "missing name",
			in:      DemoCallInput{BusinessName: "Acme", Email: "jane@acme.com", Phone: "555-0100"},
			wantErr: []string{"name"},
		},
		{
			name:    "whitespace-only phone",
			in:      DemoCallInput{Name: "Jane", BusinessName: "Acme", Email: "jane@acme.com", Phone: "   "},
			wantErr: []string{"phone"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			names := fieldNames(t, err)
			if len(names) != len(tt.wantErr) {
				t.Fatalf("failed fields = %v, want %v", names, tt.wantErr)
			}
			for i, n := range tt.wantErr {
				if names[i] != n {
					t.Errorf("failed field[%d] = %q, want %q", i, names[i], n)
				}
			}
		})
	}
}

func TestContactValidate_MissingMessage(t *testing.T) {
	in := ContactInput{Name: "Jane Doe", Email: "jane@x.com"}
	err := in.Validate()
	names := fieldNames(t, err)
	if len(names) != 1 || names[0] != "message" {
		t.Errorf("failed fields = %v, want [message]", names)
	}
}

func TestContactValidate_BlankPhoneBecomesAbsent(t *testing.T) {
	blank := "   "
	in := ContactInput{Name: "Jane", Email: "jane@x.com", Phone: &blank, Message: "Hi"}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Phone != nil {
		t.Errorf("blank phone should normalize to nil, got %q", *in.Phone)
	}
}

func TestContactValidate_PhoneKeptWhenPresent(t *testing.T) {
	phone := " 555-0100 "
	in := ContactInput{Name: "Jane", Email: "jane@x.com", Phone: &phone, Message: "Hi"}
	if err := in.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.Phone == nil || *in.Phone != "555-0100" {
		t.Errorf("phone = %v, want 555-0100", in.Phone)
	}
}
