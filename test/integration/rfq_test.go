package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"zakup_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rfqResponse struct {
	ID       string `json:"id"`
	BuyerID  string `json:"buyer_id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Criteria struct {
		PriceWeight          float64 `json:"price_weight"`
		DeliveryWeight       float64 `json:"delivery_weight"`
		QualityWeight        float64 `json:"quality_weight"`
		ExperienceWeight     float64 `json:"experience_weight"`
		SustainabilityWeight float64 `json:"sustainability_weight"`
	} `json:"criteria"`
	BidCount int64 `json:"bid_count"`
}

// TestRFQCreation - создание RFQ и валидация весов критериев.
func TestRFQCreation(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, buyer := helpers.CreateAndLoginBuyer(t, ts)
	supplierToken, _ := helpers.CreateAndLoginSupplier(t, ts)

	t.Run("Create - Unauthorized", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", "",
			map[string]interface{}{"title": "No token RFQ"})
		assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	})

	t.Run("Create - Supplier Forbidden", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", supplierToken,
			map[string]interface{}{"title": "Supplier RFQ"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "Поставщик не может создавать RFQ")
	})

	t.Run("Create - Default Criteria", func(t *testing.T) {
		body := map[string]interface{}{
			"title":       "Поставка серверного оборудования",
			"description": "20 стоечных серверов для ЦОД",
			"category":    "it_equipment",
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, body)
		require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

		var rfq rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &rfq))
		assert.Equal(t, buyer.ID, rfq.BuyerID)
		assert.Equal(t, "draft", rfq.Status)
		assert.Equal(t, 30.0, rfq.Criteria.PriceWeight)
		assert.Equal(t, 20.0, rfq.Criteria.DeliveryWeight)
		assert.Equal(t, 25.0, rfq.Criteria.QualityWeight)
		assert.Equal(t, 15.0, rfq.Criteria.ExperienceWeight)
		assert.Equal(t, 10.0, rfq.Criteria.SustainabilityWeight)
	})

	t.Run("Create - Custom Criteria", func(t *testing.T) {
		body := map[string]interface{}{
			"title": "Закуп с нестандартными весами",
			"criteria": map[string]float64{
				"price_weight":          50,
				"delivery_weight":       10,
				"quality_weight":        20,
				"experience_weight":     10,
				"sustainability_weight": 10,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, body)
		require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

		var rfq rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &rfq))
		assert.Equal(t, 50.0, rfq.Criteria.PriceWeight)
	})

	t.Run("Create - Weights Do Not Sum To 100", func(t *testing.T) {
		body := map[string]interface{}{
			"title": "Некорректные веса",
			"criteria": map[string]float64{
				"price_weight":          50,
				"delivery_weight":       10,
				"quality_weight":        20,
				"experience_weight":     5,
				"sustainability_weight": 5,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Сумма 90 должна быть отклонена. Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, "INVALID_CRITERIA")
	})

	t.Run("Create - Fractional Tolerance", func(t *testing.T) {
		// 33.33 + 16.67 + 25 + 15 + 10 = 100.00, в пределах допуска
		body := map[string]interface{}{
			"title": "Дробные веса в пределах допуска",
			"criteria": map[string]float64{
				"price_weight":          33.33,
				"delivery_weight":       16.67,
				"quality_weight":        25,
				"experience_weight":     15,
				"sustainability_weight": 10,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, body)
		assert.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)
	})
}

// TestRFQLifecycle - переходы статусов draft -> open -> closed и правила владения.
func TestRFQLifecycle(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, _ := helpers.CreateAndLoginBuyer(t, ts)
	otherBuyerToken, _ := helpers.CreateAndLoginBuyer(t, ts)

	// Создаем черновик через API
	createBody := map[string]interface{}{
		"title":    "Жизненный цикл RFQ",
		"deadline": time.Now().AddDate(0, 0, 14).Format(time.RFC3339),
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, createBody)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Ответ: "+bodyStr)

	var rfq rfqResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &rfq))
	rfqPath := "/api/v1/rfqs/" + rfq.ID

	t.Run("Update Draft By Stranger", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, rfqPath, otherBuyerToken,
			map[string]interface{}{"title": "Чужой заголовок"})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "Чужой RFQ редактировать нельзя")
	})

	t.Run("Update Draft Criteria", func(t *testing.T) {
		body := map[string]interface{}{
			"criteria": map[string]float64{
				"price_weight":          40,
				"delivery_weight":       20,
				"quality_weight":        20,
				"experience_weight":     10,
				"sustainability_weight": 10,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPut, rfqPath, buyerToken, body)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var updated rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &updated))
		assert.Equal(t, 40.0, updated.Criteria.PriceWeight)
	})

	t.Run("Close Draft Rejected", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, rfqPath+"/close", buyerToken, nil)
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Черновик нельзя закрыть")
	})

	t.Run("Publish", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPut, rfqPath+"/publish", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		res, bodyStr = ts.SendRequest(t, http.MethodGet, rfqPath, "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var fetched rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &fetched))
		assert.Equal(t, "open", fetched.Status)
	})

	t.Run("Publish Twice Rejected", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPut, rfqPath+"/publish", buyerToken, nil)
		assert.Equal(t, http.StatusConflict, res.StatusCode)
	})

	t.Run("Criteria Frozen After Publish", func(t *testing.T) {
		body := map[string]interface{}{
			"criteria": map[string]float64{
				"price_weight":          100,
				"delivery_weight":       0,
				"quality_weight":        0,
				"experience_weight":     0,
				"sustainability_weight": 0,
			},
		}
		res, _ := ts.SendRequest(t, http.MethodPut, rfqPath, buyerToken, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Веса меняются только в черновике")
	})

	t.Run("Delete Open Rejected", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodDelete, rfqPath, buyerToken, nil)
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Удалять можно только черновик")
	})

	t.Run("Close", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPut, rfqPath+"/close", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		res, bodyStr = ts.SendRequest(t, http.MethodGet, rfqPath, "", nil)
		var fetched rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &fetched))
		assert.Equal(t, "closed", fetched.Status)
	})

	t.Run("Cancel Draft", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken,
			map[string]interface{}{"title": "RFQ на отмену"})
		require.Equal(t, http.StatusCreated, res.StatusCode)
		var draft rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &draft))

		res, _ = ts.SendRequest(t, http.MethodPut, "/api/v1/rfqs/"+draft.ID+"/cancel", buyerToken, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("Delete Draft", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken,
			map[string]interface{}{"title": "RFQ на удаление"})
		require.Equal(t, http.StatusCreated, res.StatusCode)
		var draft rfqResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &draft))

		res, _ = ts.SendRequest(t, http.MethodDelete, "/api/v1/rfqs/"+draft.ID, buyerToken, nil)
		assert.Equal(t, http.StatusOK, res.StatusCode)

		res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs/"+draft.ID, "", nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}

// TestRFQSearch - публичный поиск и список своих RFQ.
func TestRFQSearch(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, buyer := helpers.CreateAndLoginBuyer(t, ts)

	for i := 0; i < 3; i++ {
		body := map[string]interface{}{
			"title":    fmt.Sprintf("Канцелярские товары, партия %d", i+1),
			"category": "office_supplies",
		}
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs", buyerToken, body)
		require.Equal(t, http.StatusCreated, res.StatusCode)
	}
	CreateTestRFQ(t, ts.DB, buyer.ID, "Открытый тендер на мебель", "open", FutureDeadline(7))

	t.Run("Public Search - No Token Needed", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs?category=office_supplies", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var resp struct {
			RFQs  []rfqResponse `json:"rfqs"`
			Total int64         `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, int64(3), resp.Total)
	})

	t.Run("Search By Status", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs?status=open", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, "Открытый тендер на мебель")
	})

	t.Run("My RFQs", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs/my", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var resp struct {
			RFQs  []rfqResponse `json:"rfqs"`
			Total int64         `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, int64(4), resp.Total, "Все 4 RFQ принадлежат закупщику")
	})

	t.Run("View Counter", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs?category=office_supplies", "", nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var resp struct {
			RFQs []rfqResponse `json:"rfqs"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		require.NotEmpty(t, resp.RFQs)
		id := resp.RFQs[0].ID

		ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs/"+id, "", nil)
		_, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs/"+id, "", nil)

		var fetched struct {
			Views int `json:"views"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &fetched))
		assert.GreaterOrEqual(t, fetched.Views, 1, "Просмотры должны накапливаться")
	})
}
