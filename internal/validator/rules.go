package validator

import (
	"log"

	"zakup_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует все кастомные функции валидации в
// переданном экземпляре валидатора.
func registerCustomRules(v *validator.Validate) {

	// Обертка для обработки ошибок регистрации
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Если правило не удалось зарегистрировать, приложение
			// не должно запускаться, так как это критическая ошибка.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// -----------------------------------------------------------------
	// Правила, основанные на 'statuses.go'
	// -----------------------------------------------------------------

	// 'is-user-role': Проверяет, что роль пользователя валидна
	mustRegister("is-user-role", validateUserRole)

	// 'is-rfq-status': Проверяет, что статус RFQ валиден
	mustRegister("is-rfq-status", validateRFQStatus)

	// 'is-bid-status': Проверяет, что статус предложения валиден
	mustRegister("is-bid-status", validateBidStatus)

	// 'is-recommendation': Проверяет итоговую классификацию
	mustRegister("is-recommendation", validateRecommendation)
}

// --- Функции валидации ---

func validateUserRole(fl validator.FieldLevel) bool {
	// Получаем значение поля как строку
	value := fl.Field().String()
	if value == "" {
		return true // Не проверяем пустые значения, для этого есть 'required'
	}

	// Проверяем, соответствует ли строка одному из наших типов
	switch models.UserRole(value) {
	case models.UserRoleBuyer, models.UserRoleSupplier, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateRFQStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	switch models.RFQStatus(value) {
	case models.RFQStatusDraft, models.RFQStatusOpen, models.RFQStatusClosed,
		models.RFQStatusAwarded, models.RFQStatusCancelled:
		return true
	default:
		return false
	}
}

func validateBidStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.BidStatus(value) {
	case models.BidStatusSubmitted, models.BidStatusWithdrawn, models.BidStatusEvaluated:
		return true
	default:
		return false
	}
}

func validateRecommendation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.Recommendation(value) {
	case models.RecommendationAward, models.RecommendationShortlist, models.RecommendationReject:
		return true
	default:
		return false
	}
}
