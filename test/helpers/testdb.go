package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"zakup_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// CreateUser создает пользователя напрямую в БД с хешированием пароля.
// Пользователь сразу активный и верифицированный, чтобы логин работал.
func CreateUser(t *testing.T, db *gorm.DB, user *models.User) {
	if user.PasswordHash != "" && !strings.HasPrefix(user.PasswordHash, "$2a$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.PasswordHash), bcrypt.DefaultCost)
		if err != nil {
			t.Fatalf("Не удалось хешировать пароль: %v", err)
		}
		user.PasswordHash = string(hashedPassword)
	}

	if user.Status == "" {
		user.Status = models.UserStatusActive
	}
	user.IsVerified = true

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Не удалось создать пользователя %s: %v", user.Email, err)
	}
}

// CreateAndLoginUser создает пользователя и логинит его через API.
// Возвращает access token и объект пользователя.
func CreateAndLoginUser(t *testing.T, ts *TestServer, email, password string, role models.UserRole, companyName string) (string, *models.User) {
	user := &models.User{
		Email:        email,
		PasswordHash: password,
		Role:         role,
		CompanyName:  companyName,
	}
	CreateUser(t, ts.DB, user)

	loginBody := map[string]interface{}{
		"email":    email,
		"password": password,
	}

	res, bodyStr := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", loginBody)
	require.Equal(t, http.StatusOK, res.StatusCode, "Логин должен быть успешным. Ответ: "+bodyStr)

	var loginResponse struct {
		Token string `json:"access_token"`
	}
	err := json.Unmarshal([]byte(bodyStr), &loginResponse)
	require.NoError(t, err, "Не удалось распарсить JSON ответа логина")
	require.NotEmpty(t, loginResponse.Token, "Токен не должен быть пустым")

	return loginResponse.Token, user
}

// CreateAndLoginBuyer создает закупщика с уникальным email.
func CreateAndLoginBuyer(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("buyer_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "password123", models.UserRoleBuyer, "Test Buyer LLP")
}

// CreateAndLoginSupplier создает поставщика с уникальным email.
func CreateAndLoginSupplier(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("supplier_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "password123", models.UserRoleSupplier, "Test Supplier LLP")
}

// CreateAndLoginAdmin создает администратора с уникальным email.
func CreateAndLoginAdmin(t *testing.T, ts *TestServer) (string, *models.User) {
	email := fmt.Sprintf("admin_%d@test.com", time.Now().UnixNano())
	return CreateAndLoginUser(t, ts, email, "password123", models.UserRoleAdmin, "Zakup Administration")
}
