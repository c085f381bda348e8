package apperrors

import (
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена закупок.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
// Используется, когда ошибка репозитория (типа gorm.ErrRecordNotFound)
// должна быть преобразована в AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation - фабрика для невалидных операций (400)
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrInvalidStatus - фабрика для невалидных статусов (400)
func ErrInvalidStatus(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusBadRequest)
}

// =========================================================================
// Движок оценки предложений (evaluation)
// =========================================================================

// ErrInvalidCriteria - веса критериев не сходятся к 100.
// details заполняется фактической суммой на стороне сервиса.
func ErrInvalidCriteria(err error) *AppError {
	return Wrap(err, CodeInvalidCriteria, "evaluation",
		"Evaluation criteria weights must sum to 100", http.StatusBadRequest)
}

// ErrEmptyBidSet - на RFQ нет ни одного активного предложения.
func ErrEmptyBidSet(err error) *AppError {
	return Wrap(err, CodeEmptyBidSet, "evaluation",
		"At least one bid is required for evaluation", http.StatusBadRequest)
}

// ErrMalformedBid - предложение с нечитаемой ценой или датой поставки.
func ErrMalformedBid(err error) *AppError {
	return Wrap(err, CodeMalformedBid, "evaluation",
		"Bid contains an unparseable price or delivery date", http.StatusBadRequest)
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrInvalidUserRole - используется, когда операция не предусмотрена для роли пользователя.
var ErrInvalidUserRole = New(
	CodeInvalidOperation,
	"business_logic",
	"Invalid user role for this operation",
	http.StatusBadRequest,
)

// ErrInsufficientPermissions - используется, когда не-админ пытается выполнить админ-действие.
var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- RFQ ---

// ErrInvalidRFQStatus - операция невозможна в текущем статусе RFQ.
var ErrInvalidRFQStatus = New(
	CodeInvalidStatus,
	"rfq",
	"Operation not allowed for the current RFQ status",
	http.StatusConflict,
)

// ErrRFQDeadlinePassed - срок подачи предложений истек.
var ErrRFQDeadlinePassed = New(
	CodeInvalidOperation,
	"rfq",
	"Submission deadline for this RFQ has passed",
	http.StatusConflict,
)

// --- Bids ---

// ErrBidAlreadySubmitted - у поставщика уже есть активное предложение на этот RFQ.
var ErrBidAlreadySubmitted = New(
	CodeAlreadyExists,
	"bid",
	"An active bid for this RFQ already exists",
	http.StatusConflict,
)

// ErrBidWithdrawn - предложение уже отозвано.
var ErrBidWithdrawn = New(
	CodeInvalidStatus,
	"bid",
	"Bid has been withdrawn",
	http.StatusConflict,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер для одного запроса.
var ErrFileTooLarge = New(
	CodeLimitExceeded,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusRequestEntityTooLarge,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnsupportedMediaType,
)

// --- Auth & User Status ---

// ErrWeakPassword - пароль слишком слабый.
var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password is too weak. Minimum 8 characters required.",
	http.StatusBadRequest,
)

// ErrEmailAlreadyExists - email уже используется.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - неверный или просроченный токен (refresh, verify, reset).
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// ErrUserSuspended - аккаунт временно заблокирован.
var ErrUserSuspended = New(
	CodeForbidden,
	"auth",
	"Your account has been suspended",
	http.StatusForbidden,
)

// ErrUserNotVerified - email не подтвержден.
var ErrUserNotVerified = New(
	CodeForbidden,
	"auth",
	"Please verify your email address",
	http.StatusForbidden,
)
