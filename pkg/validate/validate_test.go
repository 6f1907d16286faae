package validate_test

import (
	"testing"

	"github.com/kdalam/furnidex/pkg/validate"
)

type priceEditInput struct {
	Code  string `json:"code"  validate:"required,max=50"`
	Price string `json:"price" validate:"required,max=50"`
	Note  string `json:"note"  validate:"nullable,max=200"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(priceEditInput{Code: "A1", Price: "100"})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(priceEditInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["code"]; !ok {
		t.Error("expected code to be required")
	}
	if _, ok := errs["price"]; !ok {
		t.Error("expected price to be required")
	}
}

func TestWhitespaceIsEmpty(t *testing.T) {
	errs := validate.Struct(priceEditInput{Code: "   ", Price: "1"})
	if _, ok := errs["code"]; !ok {
		t.Error("expected whitespace-only code to fail required")
	}
}

func TestMaxRuneLength(t *testing.T) {
	long := make([]rune, 51)
	for i := range long {
		long[i] = 'x'
	}
	errs := validate.Struct(priceEditInput{Code: string(long), Price: "1"})
	if _, ok := errs["code"]; !ok {
		t.Error("expected 51-char code to fail max=50")
	}
}

func TestNullableSkipsRules(t *testing.T) {
	errs := validate.Struct(priceEditInput{Code: "A1", Price: "1", Note: ""})
	if validate.HasErrors(errs) {
		t.Errorf("nullable empty field should pass, got: %v", errs)
	}
}

func TestInRuleKeepsParams(t *testing.T) {
	type in struct {
		Source string `json:"source" validate:"required,in=file,sheet,cli"`
	}
	if errs := validate.Struct(in{Source: "sheet"}); validate.HasErrors(errs) {
		t.Errorf("expected sheet to be allowed, got: %v", errs)
	}
	if errs := validate.Struct(in{Source: "ftp"}); !validate.HasErrors(errs) {
		t.Error("expected ftp to be rejected")
	}
}

func TestNumericRule(t *testing.T) {
	type in struct {
		Limit string `json:"limit" validate:"required,numeric"`
	}
	if errs := validate.Struct(in{Limit: "12.5"}); validate.HasErrors(errs) {
		t.Errorf("expected 12.5 to be numeric, got: %v", errs)
	}
	if errs := validate.Struct(in{Limit: "abc"}); !validate.HasErrors(errs) {
		t.Error("expected abc to fail numeric")
	}
}

func TestURLRule(t *testing.T) {
	type in struct {
		Sheet string `json:"sheet_url" validate:"required,url"`
	}
	if errs := validate.Struct(in{Sheet: "https://docs.google.com/spreadsheets/d/abc"}); validate.HasErrors(errs) {
		t.Errorf("expected https URL to pass, got: %v", errs)
	}
	if errs := validate.Struct(in{Sheet: "docs.google.com/abc"}); !validate.HasErrors(errs) {
		t.Error("expected schemeless URL to fail")
	}
}
