package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tilehouse/staffing-engine/api"
	"github.com/tilehouse/staffing-engine/factory"
	"github.com/tilehouse/staffing-engine/store/sqlite"
)

// =============================================================================
// TEST HARNESS
// =============================================================================

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	h := api.NewHandler(store, factory.DefaultVenueConfig(), time.UTC)
	srv := httptest.NewServer(api.NewRouter(h))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func futureDate(t *testing.T, days int) string {
	t.Helper()
	return time.Now().UTC().AddDate(0, 0, days).Format("2006-01-02")
}

// =============================================================================
// SHIFT LIFECYCLE
// =============================================================================

func TestShiftLifecycle(t *testing.T) {
	srv := newServer(t)
	workDate := futureDate(t, 7)

	// Create
	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "09:00", "end_time": "18:00",
		"breaks": []map[string]string{{"start": "12:00", "end": "13:00"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, resp)
	id := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "early", created["slot"])

	// Read
	resp = do(t, srv, http.MethodGet, "/api/shifts/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, "09:00", got["start_time"])

	// Replace
	resp = do(t, srv, http.MethodPut, "/api/shifts/"+id, map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "10:00", "end_time": "19:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Delete
	resp = do(t, srv, http.MethodDelete, "/api/shifts/"+id, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/shifts/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateShift_OverlapConflict(t *testing.T) {
	srv := newServer(t)
	workDate := futureDate(t, 7)

	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "09:00", "end_time": "18:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Overlapping second shift for the same worker/date.
	resp = do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "17:00", "end_time": "22:00",
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[map[string]any](t, resp)
	assert.Equal(t, "validation", body["code"])

	// Boundary touch is fine.
	resp = do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "18:00", "end_time": "22:00",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestPatchShift_NullClearsSpecialWage(t *testing.T) {
	srv := newServer(t)
	workDate := futureDate(t, 7)

	wageResp := do(t, srv, http.MethodPost, "/api/special-wages", map[string]any{
		"store_id": "main-floor", "label": "Head dealer", "unit_price": 200,
	})
	require.Equal(t, http.StatusCreated, wageResp.StatusCode)
	wage := decode[map[string]any](t, wageResp)
	wageID := wage["id"].(string)

	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "09:00", "end_time": "18:00",
		"special_wage_id": wageID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[map[string]any](t, resp)["id"].(string)

	// A patch that doesn't mention special_wage_id keeps it.
	resp = do(t, srv, http.MethodPatch, "/api/shifts/"+id, map[string]any{
		"end_time": "19:00",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[map[string]any](t, resp)
	assert.Equal(t, "19:00", got["end_time"])
	assert.Equal(t, wageID, got["special_wage_id"])

	// An explicit null clears it.
	resp = do(t, srv, http.MethodPatch, "/api/shifts/"+id, map[string]any{
		"special_wage_id": nil,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got = decode[map[string]any](t, resp)
	assert.Nil(t, got["special_wage_id"])
}

func TestPatchShift_InvalidBreakRejected(t *testing.T) {
	srv := newServer(t)
	workDate := futureDate(t, 7)

	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "09:00", "end_time": "18:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := decode[map[string]any](t, resp)["id"].(string)

	resp = do(t, srv, http.MethodPatch, "/api/shifts/"+id, map[string]any{
		"breaks": []map[string]string{{"start": "19:00", "end": "20:00"}},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListStaffShifts_SegmentedMinutes(t *testing.T) {
	srv := newServer(t)
	workDate := futureDate(t, 7)

	// 21:00-03:00 with a 23:00-23:30 break: 60 day minutes, 270 night.
	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": workDate, "start_time": "21:00", "end_time": "03:00",
		"breaks": []map[string]string{{"start": "23:00", "end": "23:30"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// Another worker's shift must not leak into the listing.
	resp = do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "beni", "store_id": "main-floor",
		"work_date": workDate, "start_time": "09:00", "end_time": "18:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/staff/akira/shifts?from=%s&to=%s", workDate, workDate), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	shifts := decode[[]map[string]any](t, resp)
	require.Len(t, shifts, 1)

	got := shifts[0]
	assert.Equal(t, "akira", got["staff_id"])
	assert.Equal(t, "late", got["slot"])
	assert.Equal(t, float64(60), got["day_minutes"])
	assert.Equal(t, float64(270), got["night_minutes"])
	assert.Equal(t, float64(330), got["total_minutes"])
}

// =============================================================================
// BOARD AND REQUIREMENTS
// =============================================================================

func TestBoard_DefaultsAndOverride(t *testing.T) {
	srv := newServer(t)
	day := futureDate(t, 7)

	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": day, "start_time": "09:00", "end_time": "18:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/requirements", map[string]any{
		"store_id": "main-floor", "target_date": day, "slot": "late",
		"start_required": 7, "end_required": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, fmt.Sprintf("/api/board?store=main-floor&from=%s&to=%s", day, day), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	board := decode[map[string]any](t, resp)
	rows := board["rows"].([]any)
	require.Len(t, rows, 2)

	early := rows[0].(map[string]any)
	assert.Equal(t, "early", early["slot"])
	assert.Equal(t, float64(1), early["start_actual"])
	assert.Equal(t, false, early["has_override"])
	assert.Equal(t, true, early["editable"])

	late := rows[1].(map[string]any)
	assert.Equal(t, true, late["has_override"])
	assert.Equal(t, float64(7), late["start_required"])
}

func TestPutRequirement_PastDateConflict(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodPut, "/api/requirements", map[string]any{
		"store_id": "main-floor", "target_date": futureDate(t, -3), "slot": "early",
		"start_required": 3, "end_required": 3,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

// =============================================================================
// PAYROLL
// =============================================================================

func TestPayroll_EndToEnd(t *testing.T) {
	srv := newServer(t)

	// Next month so every seeded date is safely inside one month.
	month := time.Now().UTC().AddDate(0, 1, 0)
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)

	// The reference shift: 21:00-03:00 with a 23:00-23:30 break gives
	// 60 day minutes and 270 night minutes.
	resp := do(t, srv, http.MethodPost, "/api/shifts", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"work_date": first.Format("2006-01-02"), "start_time": "21:00", "end_time": "03:00",
		"breaks": []map[string]string{{"start": "23:00", "end": "23:30"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPut, "/api/staff/akira/wage-policy", map[string]any{
		"kind": "hourly", "hourly_wage": 1200, "night_rate_multiplier": 1.25,
		"transport_per_shift": 500, "income_tax_rate": 0.1,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/incomes", map[string]any{
		"staff_id": "akira", "store_id": "main-floor",
		"played_on": first.AddDate(0, 0, 1).Format("2006-01-02"), "amount": 3000,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, srv, http.MethodPost, "/api/advances", map[string]any{
		"staff_id": "akira", "month": first.Format("2006-01"), "amount": 5000,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/staff/akira/payroll?month="+first.Format("2006-01"), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pay := decode[map[string]any](t, resp)

	assert.Equal(t, float64(330), pay["total_work_minutes"])
	assert.Equal(t, float64(6600), pay["base_wage_total"])
	assert.Equal(t, float64(1350), pay["night_extra_total"])
	assert.Equal(t, float64(500), pay["transport_total"])
	assert.Equal(t, float64(3000), pay["game_income_total"])
	assert.Equal(t, float64(5000), pay["advance_amount"])
	assert.Equal(t, float64(11450), pay["gross_salary"])
	assert.Equal(t, float64(1095), pay["income_tax"])
	assert.Equal(t, float64(5355), pay["net_salary"])
}

func TestPayroll_EmptyMonthIsZero(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/staff/nobody/payroll?month=2030-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pay := decode[map[string]any](t, resp)
	assert.Equal(t, float64(0), pay["total_work_minutes"])
	assert.Equal(t, float64(0), pay["net_salary"])
}

func TestSetWagePolicy_FixedWithoutAmountRejected(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodPut, "/api/staff/akira/wage-policy", map[string]any{
		"kind": "fixed",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// =============================================================================
// SCENARIOS
// =============================================================================

func TestScenarios_ListAndLoad(t *testing.T) {
	srv := newServer(t)

	resp := do(t, srv, http.MethodGet, "/api/scenarios", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]map[string]any](t, resp)
	assert.NotEmpty(t, list)

	// Nothing loaded yet.
	resp = do(t, srv, http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[map[string]any](t, resp))

	resp = do(t, srv, http.MethodPost, "/api/scenarios/load", map[string]any{
		"scenario_id": "payday",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, srv, http.MethodGet, "/api/scenarios/current", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	current := decode[map[string]any](t, resp)
	assert.Equal(t, "payday", current["id"])

	month := time.Now().UTC().Format("2006-01")
	resp = do(t, srv, http.MethodGet, "/api/staff/akira/payroll?month="+month, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	pay := decode[map[string]any](t, resp)
	assert.Greater(t, pay["total_work_minutes"], float64(0))
	assert.NotEmpty(t, pay["allowances"])

	resp = do(t, srv, http.MethodPost, "/api/scenarios/load", map[string]any{
		"scenario_id": "no-such-scenario",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
