package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому *gorm.DB хранится в gin.Context на время запроса
const DBContextKey = contextKey("db")

// UserIDKey - id аутентифицированного пользователя (string uuid)
const UserIDKey = contextKey("userID")
