package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/middlewares"
	"github.com/danyunou/taco-platform/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newHubServer(t *testing.T) (*KitchenHub, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewKitchenHub()
	go hub.Run()

	r := gin.New()
	auth := middlewares.AuthMiddleware(testSecret, entity.RoleAdmin, entity.RoleMesera, entity.RoleTaquero)
	r.GET("/ws/kitchen", auth, hub.Serve)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, srv
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/kitchen"
}

func TestPublishNilHub(t *testing.T) {
	var hub *KitchenHub
	require.NotPanics(t, func() { hub.Publish("order_created", nil) })
}

func TestKitchenWSRejectsAnonymous(t *testing.T) {
	_, srv := newHubServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv)+"?token=not-a-jwt", nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestKitchenHubBroadcast(t *testing.T) {
	hub, srv := newHubServer(t)

	token, err := utils.GenerateToken(1, entity.RoleTaquero, testSecret, time.Hour)
	require.NoError(t, err)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL(srv)+"?token="+token, nil)
	require.NoError(t, err)
	if resp != nil {
		resp.Body.Close()
	}
	defer conn.Close()

	// wait for the hub to pick up the registration before publishing
	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		return len(hub.clients) == 1
	}, time.Second, 10*time.Millisecond)

	hub.Publish("order_status_changed", map[string]any{"orderId": 7, "status": "ready"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	require.Equal(t, "order_status_changed", ev.Type)
}
