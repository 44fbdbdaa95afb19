package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDeriveWindowsReferenceScenario(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response := doJSONRequest(t, app, http.MethodPost, "/api/windows", referenceInputs(), "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	got := decodeJSONResponse[windowsResponse](t, response)
	want := windowsResponse{
		PeriodStart:        "2024-01-29",
		PeriodEnd:          "2024-02-03",
		OvulationDate:      "2024-02-12",
		FertilityStart:     "2024-02-08",
		FertilityEnd:       "2024-02-16",
		PreOvulationStart:  "2024-02-04",
		PreOvulationEnd:    "2024-02-07",
		PostOvulationStart: "2024-02-17",
		PostOvulationEnd:   "2024-01-28",
	}
	if got != want {
		t.Fatalf("expected windows %+v, got %+v", want, got)
	}
}

func TestDeriveWindowsAcceptsFormAndStringLengths(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	form := "last_period_start=2024-12-20&cycle_length=28&period_length=5"
	request := httptest.NewRequest(http.MethodPost, "/api/windows", strings.NewReader(form))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("form request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 for form body, got %d", response.StatusCode)
	}
	formWindows := decodeJSONResponse[windowsResponse](t, response)
	if formWindows.PeriodStart != "2025-01-17" || formWindows.OvulationDate != "2025-01-31" {
		t.Fatalf("expected rollover into 2025, got %+v", formWindows)
	}

	payload := map[string]any{"last_period_start": "2024-12-20", "cycle_length": "28", "period_length": "5"}
	response = doJSONRequest(t, app, http.MethodPost, "/api/windows", payload, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200 for string lengths, got %d", response.StatusCode)
	}
	jsonWindows := decodeJSONResponse[windowsResponse](t, response)
	if jsonWindows != formWindows {
		t.Fatalf("expected json and form bodies to agree, got %+v and %+v", jsonWindows, formWindows)
	}
}

func TestDeriveWindowsRejectsIncompleteOrMalformedInput(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	testCases := []struct {
		name       string
		payload    map[string]any
		wantStatus int
		wantError  string
	}{
		{
			name:       "empty body",
			payload:    nil,
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  errMessageInsufficientInput,
		},
		{
			name:       "zero cycle length",
			payload:    withFields(referenceInputs(), map[string]any{"cycle_length": 0}),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  errMessageInsufficientInput,
		},
		{
			name:       "missing period length",
			payload:    map[string]any{"last_period_start": "2024-01-01", "cycle_length": 28},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  errMessageInsufficientInput,
		},
		{
			name:       "blank date",
			payload:    withFields(referenceInputs(), map[string]any{"last_period_start": " "}),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  errMessageInsufficientInput,
		},
		{
			name:       "negative period length",
			payload:    withFields(referenceInputs(), map[string]any{"period_length": -5}),
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  errMessageInsufficientInput,
		},
		{
			name:       "malformed date",
			payload:    withFields(referenceInputs(), map[string]any{"last_period_start": "2024-13-01"}),
			wantStatus: http.StatusBadRequest,
			wantError:  errMessageInvalidLastPeriodStart,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			response := doJSONRequest(t, app, http.MethodPost, "/api/windows", testCase.payload, "")
			defer response.Body.Close()
			if response.StatusCode != testCase.wantStatus {
				t.Fatalf("expected status %d, got %d", testCase.wantStatus, response.StatusCode)
			}
			if got := readAPIError(t, response.Body); got != testCase.wantError {
				t.Fatalf("expected error %q, got %q", testCase.wantError, got)
			}
		})
	}
}

func TestDeriveWindowsRejectsMalformedJSON(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	request := httptest.NewRequest(http.MethodPost, "/api/windows", strings.NewReader(`{"cycle_length": [28]}`))
	request.Header.Set("Content-Type", "application/json")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}
	if got := readAPIError(t, response.Body); got != errMessageInvalidInput {
		t.Fatalf("expected error %q, got %q", errMessageInvalidInput, got)
	}
}

func TestClassifyDateReturnsPhaseAndSentence(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	testCases := []struct {
		date      string
		wantPhase string
		wantLabel string
	}{
		{date: "2024-01-29", wantPhase: "period", wantLabel: "Period"},
		{date: "2024-02-03", wantPhase: "period", wantLabel: "Period"},
		{date: "2024-02-12", wantPhase: "ovulation", wantLabel: "Ovulation"},
		{date: "2024-02-10", wantPhase: "fertility_window", wantLabel: "Fertility Window"},
		{date: "2024-02-05", wantPhase: "no_event", wantLabel: "No Event"},
		{date: "2024-02-17", wantPhase: "no_event", wantLabel: "No Event"},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.date, func(t *testing.T) {
			t.Parallel()

			payload := withFields(referenceInputs(), map[string]any{"date": testCase.date})
			response := doJSONRequest(t, app, http.MethodPost, "/api/classify", payload, "")
			if response.StatusCode != http.StatusOK {
				t.Fatalf("expected status 200, got %d", response.StatusCode)
			}

			got := decodeJSONResponse[phaseResponse](t, response)
			if got.Date != testCase.date {
				t.Fatalf("expected date %s, got %s", testCase.date, got.Date)
			}
			if got.Phase != testCase.wantPhase {
				t.Fatalf("expected phase %s, got %s", testCase.wantPhase, got.Phase)
			}
			if got.Label != testCase.wantLabel {
				t.Fatalf("expected label %q, got %q", testCase.wantLabel, got.Label)
			}
			wantDescription := "Selected date falls within the " + testCase.wantLabel + " phase of your cycle."
			if got.Description != wantDescription {
				t.Fatalf("expected description %q, got %q", wantDescription, got.Description)
			}
		})
	}
}

func TestClassifyDateLocalizesByQueryLanguage(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	payload := withFields(referenceInputs(), map[string]any{"date": "2024-02-12"})
	response := doJSONRequest(t, app, http.MethodPost, "/api/classify?lang=ru", payload, "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	if got := responseCookieValue(response.Cookies(), languageCookieName); got != "ru" {
		t.Fatalf("expected language cookie ru, got %q", got)
	}

	got := decodeJSONResponse[phaseResponse](t, response)
	if got.Label != "Овуляция" {
		t.Fatalf("expected russian label, got %q", got.Label)
	}
	if !strings.Contains(got.Description, "Овуляция") {
		t.Fatalf("expected russian description to embed the label, got %q", got.Description)
	}
}

func TestClassifyDateRequiresValidDate(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)

	for _, rawDate := range []string{"", "12/02/2024", "2024-02-30"} {
		payload := withFields(referenceInputs(), map[string]any{"date": rawDate})
		response := doJSONRequest(t, app, http.MethodPost, "/api/classify", payload, "")
		if response.StatusCode != http.StatusBadRequest {
			response.Body.Close()
			t.Fatalf("expected status 400 for date %q, got %d", rawDate, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != errMessageInvalidDate {
			t.Fatalf("expected error %q for date %q, got %q", errMessageInvalidDate, rawDate, got)
		}
		response.Body.Close()
	}
}

func TestClassifyDateChecksInputsBeforeDate(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response := doJSONRequest(t, app, http.MethodPost, "/api/classify", map[string]any{"date": "2024-02-12"}, "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", response.StatusCode)
	}
	payload := readAPIErrorPayload(t, response.Body)
	if payload["error"] != errMessageInsufficientInput {
		t.Fatalf("expected error %q, got %q", errMessageInsufficientInput, payload["error"])
	}
	if payload["message"] == "" {
		t.Fatal("expected localized message next to the error")
	}
}

func TestPhaseCalendarDefaultRange(t *testing.T) {
	t.Parallel()

	app, _ := newTestApp(t)
	response := doJSONRequest(t, app, http.MethodPost, "/api/calendar", referenceInputs(), "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	got := decodeJSONResponse[calendarResponse](t, response)
	if got.From != "2024-01-29" || got.To != "2024-02-17" {
		t.Fatalf("expected range 2024-01-29..2024-02-17, got %s..%s", got.From, got.To)
	}
	if len(got.Days) != 20 {
		t.Fatalf("expected 20 days, got %d", len(got.Days))
	}

	wantCounts := map[string]int{
		"period":           6,
		"ovulation":        1,
		"fertility_window": 8,
		"pre_ovulation":    0,
		"post_ovulation":   0,
		"no_event":         5,
	}
	for phase, want := range wantCounts {
		if got.Counts[phase] != want {
			t.Fatalf("expected %d %s days, got %d", want, phase, got.Counts[phase])
		}
	}
	if got.Days[14].Date != "2024-02-12" || got.Days[14].Phase != "ovulation" || got.Days[14].Label != "Ovulation" {
		t.Fatalf("expected ovulation entry on 2024-02-12, got %+v", got.Days[14])
	}
}

func TestPhaseCalendarExplicitRangeAndValidation(t *testing.T) {
	t.Parallel()

	app, handler := newTestApp(t)
	handler.WithMaxCalendarDays(30)

	response := doJSONRequest(t, app, http.MethodPost, "/api/calendar", withFields(referenceInputs(), map[string]any{
		"from": "2024-02-11",
		"to":   "2024-02-13",
	}), "")
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
	got := decodeJSONResponse[calendarResponse](t, response)
	phases := make([]string, 0, len(got.Days))
	for _, day := range got.Days {
		phases = append(phases, day.Phase)
	}
	if strings.Join(phases, ",") != "fertility_window,ovulation,fertility_window" {
		t.Fatalf("unexpected phases for explicit range: %v", phases)
	}

	testCases := []struct {
		name      string
		from      string
		to        string
		wantError string
	}{
		{name: "reversed", from: "2024-02-13", to: "2024-02-11", wantError: errMessageInvalidRange},
		{name: "too long", from: "2024-01-01", to: "2024-03-01", wantError: errMessageRangeTooLong},
		{name: "malformed", from: "yesterday", wantError: errMessageInvalidDate},
	}
	for _, testCase := range testCases {
		response := doJSONRequest(t, app, http.MethodPost, "/api/calendar", withFields(referenceInputs(), map[string]any{
			"from": testCase.from,
			"to":   testCase.to,
		}), "")
		if response.StatusCode != http.StatusBadRequest {
			response.Body.Close()
			t.Fatalf("%s: expected status 400, got %d", testCase.name, response.StatusCode)
		}
		if got := readAPIError(t, response.Body); got != testCase.wantError {
			t.Fatalf("%s: expected error %q, got %q", testCase.name, testCase.wantError, got)
		}
		response.Body.Close()
	}
}
