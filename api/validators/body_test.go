package validators

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/OmerAlfiel/Shahen-website/internal/quote"
	pkgerrors "github.com/OmerAlfiel/Shahen-website/pkg/errors"
)

const validQuoteBody = `{
	"deliveryType": "single",
	"pickupLocation": "Riyadh",
	"dropLocation1": "Jeddah",
	"truckLabel": "Lorry",
	"quantity": 1,
	"dateISO": "2024-05-01",
	"timeLabel": "8:00 AM - 10:00 AM",
	"loadType": "furniture",
	"somethingElse": true
}`

func newJSONRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestDecodeJSONBodyAcceptsValidQuote(t *testing.T) {
	var dest quote.EstimateRequest
	if err := DecodeJSONBody(newJSONRequest(validQuoteBody), &dest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dest.TruckLabel != "Lorry" {
		t.Fatalf("unexpected truck label %q", dest.TruckLabel)
	}
}

func TestDecodeJSONBodyReportsViolationsInOrder(t *testing.T) {
	var dest quote.EstimateRequest
	err := DecodeJSONBody(newJSONRequest(`{"deliveryType":"multiple","dropLocation1":"Jeddah","truckLabel":"x","dateISO":"d","timeLabel":"t","loadType":"l"}`), &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if typed.Message() != "Validation failed" {
		t.Fatalf("unexpected message %q", typed.Message())
	}

	details, ok := typed.Details().([]string)
	if !ok {
		t.Fatalf("expected []string details, got %T", typed.Details())
	}
	want := []string{
		"pickupLocation is required",
		"dropLocation2 is required for 'multiple' deliveryType",
	}
	if strings.Join(details, "; ") != strings.Join(want, "; ") {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONBodyDeliveryTypeMessage(t *testing.T) {
	var dest quote.EstimateRequest
	err := DecodeJSONBody(newJSONRequest(`{"deliveryType":"express"}`), &dest)
	details, _ := pkgerrors.As(err).Details().([]string)
	if len(details) == 0 || details[0] != "deliveryType must be 'single' or 'multiple'" {
		t.Fatalf("unexpected details %v", details)
	}
}

func TestDecodeJSONBodyRejectsMalformedJSON(t *testing.T) {
	var dest quote.EstimateRequest
	err := DecodeJSONBody(newJSONRequest(`{"deliveryType":`), &dest)
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyEmptyBodyListsRequiredFields(t *testing.T) {
	var dest quote.EstimateRequest
	err := DecodeJSONBody(newJSONRequest(""), &dest)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Message() != "Validation failed" {
		t.Fatalf("expected validation failure, got %v", err)
	}
	joined := strings.Join(typed.Details().([]string), "; ")
	for _, want := range []string{"deliveryType must be 'single' or 'multiple'", "pickupLocation is required", "truckLabel is required"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in %q", want, joined)
		}
	}
}

func TestDecodeJSONBodyTooLarge(t *testing.T) {
	req := newJSONRequest(validQuoteBody)
	req.Body = http.MaxBytesReader(httptest.NewRecorder(), req.Body, 8)
	var dest quote.EstimateRequest
	if err := DecodeJSONBody(req, &dest); !pkgerrors.IsCode(err, pkgerrors.CodePayloadTooLarge) {
		t.Fatalf("expected payload too large, got %v", err)
	}
}
