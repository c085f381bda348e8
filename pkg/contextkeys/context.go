package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - это ключ, по которому мы будем хранить *gorm.DB в context
// (пул соединений или транзакцию в интеграционных тестах)
const DBContextKey = contextKey("db")
