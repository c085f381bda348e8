package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"zakup_backend/internal/models"
	"zakup_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type evaluationResponse struct {
	ID          string `json:"id"`
	RFQID       string `json:"rfq_id"`
	EvaluatorID string `json:"evaluator_id"`
	Criteria    struct {
		PriceWeight float64 `json:"price_weight"`
	} `json:"criteria"`
	Evaluations []struct {
		BidID               string  `json:"bid_id"`
		SupplierID          string  `json:"supplier_id"`
		PriceScore          float64 `json:"price_score"`
		DeliveryScore       float64 `json:"delivery_score"`
		QualityScore        float64 `json:"quality_score"`
		ExperienceScore     float64 `json:"experience_score"`
		SustainabilityScore float64 `json:"sustainability_score"`
		TotalScore          float64 `json:"total_score"`
		Ranking             int     `json:"ranking"`
		Recommendation      string  `json:"recommendation"`
	} `json:"evaluations"`
	Summary struct {
		TotalBids         int     `json:"total_bids"`
		RecommendedAwards int     `json:"recommended_awards"`
		Shortlisted       int     `json:"shortlisted"`
		Rejected          int     `json:"rejected"`
		WinningBidID      string  `json:"winning_bid_id"`
		WinningScore      float64 `json:"winning_score"`
	} `json:"summary"`
}

func submitDetailedBid(t *testing.T, ts *helpers.TestServer, token, rfqID string, price float64, deliveryDays int, compliance []map[string]interface{}, certs []string, sustainability float64) bidResponse {
	body := map[string]interface{}{
		"price":                     price,
		"delivery_date":             time.Now().AddDate(0, 0, deliveryDays).Format(time.RFC3339),
		"specifications_compliance": compliance,
		"certifications":            certs,
		"sustainability_score":      sustainability,
	}
	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+rfqID+"/bids", token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "Подача предложения должна пройти. Ответ: "+bodyStr)

	var bid bidResponse
	require.NoError(t, json.Unmarshal([]byte(bodyStr), &bid))
	return bid
}

// TestEvaluationFlow - сквозной сценарий оценки: нормализация цены и сроков,
// качество по чек-листу и сертификатам, ранжирование и классификация.
func TestEvaluationFlow(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, buyer := helpers.CreateAndLoginBuyer(t, ts)
	supplierAToken, _ := helpers.CreateAndLoginSupplier(t, ts)
	supplierBToken, _ := helpers.CreateAndLoginSupplier(t, ts)
	supplierCToken, _ := helpers.CreateAndLoginSupplier(t, ts)
	supplierDToken, _ := helpers.CreateAndLoginSupplier(t, ts)

	rfq := CreateTestRFQ(t, ts.DB, buyer.ID, "Закуп серверов для оценки", models.RFQStatusOpen, FutureDeadline(30))
	evalPath := "/api/v1/rfqs/" + rfq.ID

	fullCompliance := []map[string]interface{}{
		{"requirement": "Гарантия 36 месяцев", "compliant": true},
		{"requirement": "Доставка до склада", "compliant": true},
	}
	halfCompliance := []map[string]interface{}{
		{"requirement": "Гарантия 36 месяцев", "compliant": true},
		{"requirement": "Доставка до склада", "compliant": false},
	}
	noCompliance := []map[string]interface{}{
		{"requirement": "Гарантия 36 месяцев", "compliant": false},
		{"requirement": "Доставка до склада", "compliant": false},
	}

	// A: лучшая цена, лучший срок, полное соответствие, 3 сертификата
	bidA := submitDetailedBid(t, ts, supplierAToken, rfq.ID, 800000, 10, fullCompliance,
		[]string{"ISO 9001", "ISO 14001", "ISO 45001"}, 90)
	// B: середина по цене и срокам, половина чек-листа, 1 сертификат
	bidB := submitDetailedBid(t, ts, supplierBToken, rfq.ID, 840000, 20, halfCompliance,
		[]string{"ISO 9001"}, 70)
	// C: худшая цена и срок, ничего не соответствует
	bidC := submitDetailedBid(t, ts, supplierCToken, rfq.ID, 1000000, 30, noCompliance, nil, 50)

	// D подает и отзывает: отозванные предложения в оценку не попадают
	bidD := submitDetailedBid(t, ts, supplierDToken, rfq.ID, 700000, 5, fullCompliance, nil, 95)
	res, _ := ts.SendRequest(t, http.MethodPut, "/api/v1/bids/"+bidD.ID+"/withdraw", supplierDToken, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)

	var firstEval evaluationResponse

	t.Run("Evaluate - Default RFQ Criteria", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, evalPath+"/evaluate", buyerToken, map[string]interface{}{})
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &firstEval))

		require.Len(t, firstEval.Evaluations, 3, "Отозванное предложение не оценивается")
		assert.Equal(t, 3, firstEval.Summary.TotalBids)
		assert.Equal(t, 30.0, firstEval.Criteria.PriceWeight, "Веса берутся с RFQ")

		rows := firstEval.Evaluations
		assert.Equal(t, bidA.ID, rows[0].BidID, "Лучшее предложение первое")
		assert.Equal(t, 1, rows[0].Ranking)
		assert.Equal(t, 2, rows[1].Ranking)
		assert.Equal(t, 3, rows[2].Ranking)
		assert.Equal(t, bidB.ID, rows[1].BidID)
		assert.Equal(t, bidC.ID, rows[2].BidID)

		// Мин-макс нормализация цены: 800к -> 100, 840к -> 80, 1000к -> 0
		assert.Equal(t, 100.0, rows[0].PriceScore)
		assert.Equal(t, 80.0, rows[1].PriceScore)
		assert.Equal(t, 0.0, rows[2].PriceScore)

		// Сроки поставки: 10 дней -> 100, 20 -> ~50, 30 -> 0
		assert.Equal(t, 100.0, rows[0].DeliveryScore)
		assert.InDelta(t, 50.0, rows[1].DeliveryScore, 0.1)
		assert.Equal(t, 0.0, rows[2].DeliveryScore)

		// Качество: 100% чек-лист + 3 серта (бонус 30, потолок) = 100
		assert.Equal(t, 100.0, rows[0].QualityScore)
		// 50% чек-листа (35) + 1 серт (10) = 45
		assert.Equal(t, 45.0, rows[1].QualityScore)
		assert.Equal(t, 0.0, rows[2].QualityScore)

		// Заявленная оценка устойчивости используется как есть
		assert.Equal(t, 90.0, rows[0].SustainabilityScore)
		assert.Equal(t, 70.0, rows[1].SustainabilityScore)
		assert.Equal(t, 50.0, rows[2].SustainabilityScore)

		// Опыт детерминирован по поставщику и лежит в [75, 100]
		for _, row := range rows {
			assert.GreaterOrEqual(t, row.ExperienceScore, 75.0)
			assert.LessOrEqual(t, row.ExperienceScore, 100.0)
		}

		assert.Greater(t, rows[0].TotalScore, rows[1].TotalScore)
		assert.Greater(t, rows[1].TotalScore, rows[2].TotalScore)

		assert.Equal(t, "Award", rows[0].Recommendation)
		assert.Equal(t, "Reject", rows[1].Recommendation)
		assert.Equal(t, "Reject", rows[2].Recommendation)

		assert.Equal(t, bidA.ID, firstEval.Summary.WinningBidID)
		assert.Equal(t, rows[0].TotalScore, firstEval.Summary.WinningScore)
		assert.Equal(t, 1, firstEval.Summary.RecommendedAwards)
		assert.Equal(t, 2, firstEval.Summary.Rejected)
	})

	t.Run("Evaluate - Price Only Override", func(t *testing.T) {
		body := map[string]interface{}{
			"criteria": map[string]float64{
				"price_weight":          100,
				"delivery_weight":       0,
				"quality_weight":        0,
				"experience_weight":     0,
				"sustainability_weight": 0,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, evalPath+"/evaluate", buyerToken, body)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var eval evaluationResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &eval))
		require.Len(t, eval.Evaluations, 3)

		// Итог равен оценке цены, пороги отрабатывают точно:
		// 100 -> Award, 80 -> Shortlist, 0 -> Reject
		assert.Equal(t, 100.0, eval.Evaluations[0].TotalScore)
		assert.Equal(t, "Award", eval.Evaluations[0].Recommendation)
		assert.Equal(t, 80.0, eval.Evaluations[1].TotalScore)
		assert.Equal(t, "Shortlist", eval.Evaluations[1].Recommendation)
		assert.Equal(t, 0.0, eval.Evaluations[2].TotalScore)
		assert.Equal(t, "Reject", eval.Evaluations[2].Recommendation)

		assert.Equal(t, 1, eval.Summary.RecommendedAwards)
		assert.Equal(t, 1, eval.Summary.Shortlisted)
		assert.Equal(t, 1, eval.Summary.Rejected)
	})

	t.Run("Evaluate - Invalid Override Weights", func(t *testing.T) {
		body := map[string]interface{}{
			"criteria": map[string]float64{
				"price_weight":          60,
				"delivery_weight":       20,
				"quality_weight":        10,
				"experience_weight":     5,
				"sustainability_weight": 4,
			},
		}
		res, bodyStr := ts.SendRequest(t, http.MethodPost, evalPath+"/evaluate", buyerToken, body)
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, "INVALID_CRITERIA")
	})

	t.Run("Bids Marked Evaluated", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/bids/"+bidA.ID, supplierAToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		var bid bidResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &bid))
		assert.Equal(t, "evaluated", bid.Status)
	})

	t.Run("Suppliers Get Outcome Notifications", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", supplierAToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, bodyStr, "bid_awarded", "Победителю приходит bid_awarded")

		res, bodyStr = ts.SendRequest(t, http.MethodGet, "/api/v1/notifications", supplierCToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, bodyStr, "bid_rejected")
	})

	t.Run("Get Latest Evaluation", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, evalPath+"/evaluation", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var latest evaluationResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &latest))
		assert.Equal(t, rfq.ID, latest.RFQID)
		assert.Equal(t, 100.0, latest.Criteria.PriceWeight, "Последний запуск был с ценой 100%")
	})

	t.Run("List Evaluations", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, evalPath+"/evaluations", buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var resp struct {
			Evaluations []evaluationResponse `json:"evaluations"`
			Total       int                  `json:"total"`
		}
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &resp))
		assert.Equal(t, 2, resp.Total, "Оба запуска сохранены")
	})

	t.Run("Get Evaluation By ID", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodGet, "/api/v1/evaluations/"+firstEval.ID, buyerToken, nil)
		require.Equal(t, http.StatusOK, res.StatusCode, "Ответ: "+bodyStr)

		var stored evaluationResponse
		require.NoError(t, json.Unmarshal([]byte(bodyStr), &stored))
		require.Len(t, stored.Evaluations, 3)
		assert.Equal(t, firstEval.Evaluations[0].TotalScore, stored.Evaluations[0].TotalScore,
			"Сохраненный результат совпадает с рассчитанным")
		assert.Equal(t, firstEval.Summary.WinningBidID, stored.Summary.WinningBidID)
	})

	t.Run("Supplier Cannot Read Evaluation", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/evaluations/"+firstEval.ID, supplierAToken, nil)
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})
}

// TestEvaluationAccessRules - права доступа и граничные случаи запуска оценки.
func TestEvaluationAccessRules(t *testing.T) {
	ts := GetTestServer(t)
	ts.ClearTables(t)

	buyerToken, buyer := helpers.CreateAndLoginBuyer(t, ts)
	otherBuyerToken, _ := helpers.CreateAndLoginBuyer(t, ts)
	supplierToken, _ := helpers.CreateAndLoginSupplier(t, ts)

	emptyRFQ := CreateTestRFQ(t, ts.DB, buyer.ID, "Закуп без предложений", models.RFQStatusOpen, FutureDeadline(10))
	draftRFQ := CreateTestRFQ(t, ts.DB, buyer.ID, "Черновик без оценки", models.RFQStatusDraft, nil)

	t.Run("No Bids - Empty Bid Set", func(t *testing.T) {
		res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+emptyRFQ.ID+"/evaluate", buyerToken, map[string]interface{}{})
		assert.Equal(t, http.StatusBadRequest, res.StatusCode, "Ответ: "+bodyStr)
		assert.Contains(t, bodyStr, "EMPTY_BID_SET")
	})

	t.Run("Draft RFQ Rejected", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+draftRFQ.ID+"/evaluate", buyerToken, map[string]interface{}{})
		assert.Equal(t, http.StatusConflict, res.StatusCode, "Черновик оценивать нельзя")
	})

	t.Run("Supplier Role Forbidden", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+emptyRFQ.ID+"/evaluate", supplierToken, map[string]interface{}{})
		assert.Equal(t, http.StatusForbidden, res.StatusCode)
	})

	t.Run("Foreign Buyer Forbidden", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodPost, "/api/v1/rfqs/"+emptyRFQ.ID+"/evaluate", otherBuyerToken, map[string]interface{}{})
		assert.Equal(t, http.StatusForbidden, res.StatusCode, "Оценивает только владелец RFQ")
	})

	t.Run("Latest Evaluation - None Yet", func(t *testing.T) {
		res, _ := ts.SendRequest(t, http.MethodGet, "/api/v1/rfqs/"+emptyRFQ.ID+"/evaluation", buyerToken, nil)
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})
}
