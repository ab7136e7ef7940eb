package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "naftwatch.dz/fuel-monitor-service/pkg/testing"

	"naftwatch.dz/fuel-monitor-service/pkg/common"
	"naftwatch.dz/fuel-monitor-service/pkg/fuel"
	"naftwatch.dz/fuel-monitor-service/pkg/models"
)

func dialLive(t *testing.T, serverURL, token string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(serverURL, "http") + "/live"
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	return websocket.DefaultDialer.Dial(wsURL, header)
}

func TestLiveStreamRequiresToken(t *testing.T) {
	common.SetTestLoggerNop()
	t.Setenv(common.EnvKeyJwtSecret, "test-secret")

	rs := setupTestServer()
	server := httptest.NewServer(rs.Server)
	defer server.Close()

	_, resp, err := dialLive(t, server.URL, "")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLiveStreamDeliversScopedChanges(t *testing.T) {
	common.SetTestLoggerNop()
	t.Setenv(common.EnvKeyJwtSecret, "test-secret")

	rs := setupTestServer()
	server := httptest.NewServer(rs.Server)
	defer server.Close()

	company := createCompany(t, rs)
	station := createStation(t, rs, company.ID, 40000, 85000)

	operator := tokenFor(t, models.RoleStationOperator, nil, &station.ID)

	conn, _, err := dialLive(t, server.URL, operator)
	require.NoError(t, err)
	defer conn.Close()

	// give the hub time to register its bus subscription
	time.Sleep(200 * time.Millisecond)

	w := doJSON(rs, "POST", fmt.Sprintf("/stations/%d/stock", station.ID), operator, stockPayload(5000))
	require.Equal(t, http.StatusOK, w.Code)

	// the stock write and the reconciled alert both arrive as change events
	var sawStation, sawAlert bool
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	for !(sawStation && sawAlert) {
		var msg struct {
			Type  string            `json:"type"`
			Event *fuel.ChangeEvent `json:"event"`
		}
		require.NoError(t, conn.ReadJSON(&msg))
		require.Equal(t, "change", msg.Type)
		require.NotNil(t, msg.Event)
		switch msg.Event.Table {
		case fuel.TableStations:
			assert.Equal(t, station.ID, msg.Event.ID)
			sawStation = true
		case fuel.TableAlerts:
			require.NotNil(t, msg.Event.Alert)
			assert.Equal(t, models.AlertTypeStockCritical, msg.Event.Alert.Type)
			sawAlert = true
		}
	}
}

func TestLiveStreamFiltersOutOfScopeChanges(t *testing.T) {
	common.SetTestLoggerNop()
	t.Setenv(common.EnvKeyJwtSecret, "test-secret")

	rs := setupTestServer()
	server := httptest.NewServer(rs.Server)
	defer server.Close()

	companyA := createCompany(t, rs)
	companyB := createCompany(t, rs)
	stationA := createStation(t, rs, companyA.ID, 40000, 85000)
	stationB := createStation(t, rs, companyB.ID, 40000, 85000)

	// the client watches company A only
	managerA := tokenFor(t, models.RoleCompanyManager, &companyA.ID, nil)
	conn, _, err := dialLive(t, server.URL, managerA)
	require.NoError(t, err)
	defer conn.Close()

	time.Sleep(200 * time.Millisecond)

	// a write in company B, then one in company A
	managerB := tokenFor(t, models.RoleCompanyManager, &companyB.ID, nil)
	require.Equal(t, http.StatusOK,
		doJSON(rs, "POST", fmt.Sprintf("/stations/%d/stock", stationB.ID), managerB, stockPayload(30000)).Code)
	require.Equal(t, http.StatusOK,
		doJSON(rs, "POST", fmt.Sprintf("/stations/%d/stock", stationA.ID), managerA, stockPayload(30000)).Code)

	// the first event the client sees must already be company A's
	var msg struct {
		Type  string            `json:"type"`
		Event *fuel.ChangeEvent `json:"event"`
	}
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(3*time.Second)))
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "change", msg.Type)
	require.NotNil(t, msg.Event)
	assert.Equal(t, fuel.TableStations, msg.Event.Table)
	assert.Equal(t, stationA.ID, msg.Event.ID)
}
