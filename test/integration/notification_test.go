package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"zakup_backend/internal/models"
	"zakup_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type notificationListResponse struct {
	Notifications []struct {
		ID     string `json:"id"`
		Type   string `json:"type"`
		IsRead bool   `json:"is_read"`
	} `json:"notifications"`
	Total       int64 `json:"total"`
	UnreadCount int64 `json:"unread_count"`
}

// TestNotifications - лента уведомлений и отметки о прочтении.
func TestNotifications(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, buyer := helpers.CreateAndLoginBuyer(t, ts)
	supplierToken, _ := helpers.CreateAndLoginSupplier(t, ts)
	otherToken, _ := helpers.CreateAndLoginSupplier(t, ts)

	rfq := CreateTestRFQ(t, ts.DB, buyer.ID, "Закуп с уведомлениями", models.RFQStatusOpen, FutureDeadline(10))

	// Два предложения от двух поставщиков дают закупщику два уведомления
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+rfq.ID+"/bids", supplierToken, submitBidBody(100000, 7))
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)
	res, bodyStr = ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+rfq.ID+"/bids", otherToken, submitBidBody(120000, 9))
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var notifications notificationListResponse

	t.Run("List", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		require.NoError(t, json.Unmarshal([]byte(bodyStr), &notifications))
		assert.Equal(t, int64(2), notifications.Total)
		assert.Equal(t, int64(2), notifications.UnreadCount)
		for _, n := range notifications.Notifications {
			assert.Equal(t, "new_bid", n.Type)
			assert.False(t, n.IsRead)
		}
	})

	t.Run("Unread Count", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var resp struct {
			UnreadCount int64 `json:"unread_count"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, int64(2), resp.UnreadCount)
	})

	t.Run("Mark One Read", func(t *testing.T) {
		id := notifications.Notifications[0].ID
		res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+id+"/read", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var resp struct {
			UnreadCount int64 `json:"unread_count"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, int64(1), resp.UnreadCount)
	})

	t.Run("Foreign Notification Inaccessible", func(t *testing.T) {
		id := notifications.Notifications[0].ID
		res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/"+id+"/read", supplierToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "Чужое уведомление недоступно")
	})

	t.Run("Mark All Read", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/notifications/read-all", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var resp struct {
			UnreadCount int64 `json:"unread_count"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, int64(0), resp.UnreadCount)
	})

	t.Run("Delete", func(t *testing.T) {
		id := notifications.Notifications[0].ID
		res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/notifications/"+id, buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var after notificationListResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &after))
		assert.Equal(t, int64(1), after.Total)
	})
}

// TestUserAdministration - профиль пользователя и админские операции.
func TestUserAdministration(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	adminToken, _ := helpers.CreateAndLoginAdmin(t, ts)
	supplierToken, supplier := helpers.CreateAndLoginSupplier(t, ts)

	t.Run("Update Own Profile", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPut, "/api/v1/users/me", supplierToken,
			map[string]interface{}{"company_name": "Renamed Supplier LLP"})
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, "Renamed Supplier LLP")
	})

	t.Run("Admin List Users", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, supplier.Email)
	})

	t.Run("Non-Admin Cannot List Users", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/admin/users", supplierToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("Suspend Blocks Login", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/"+supplier.ID+"/suspend", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "",
			map[string]interface{}{"email": supplier.Email, "password": "password123"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "Заблокированный аккаунт не логинится")
	})

	t.Run("Activate Restores Login", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/admin/users/"+supplier.ID+"/activate", adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "",
			map[string]interface{}{"email": supplier.Email, "password": "password123"})
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("Admin Delete User", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodDelete, "/api/v1/admin/users/"+supplier.ID, adminToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "",
			map[string]interface{}{"email": supplier.Email, "password": "password123"})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode, "Удаленный пользователь не логинится")
	})
}
