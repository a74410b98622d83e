package contextkeys

// Используем кастомный тип, чтобы избежать коллизий
type contextKey string

// DBContextKey - ключ, по которому хранится *gorm.DB в context
const DBContextKey = contextKey("db")

// PrincipalKey - ключ для аутентифицированного пользователя (auth.Principal)
const PrincipalKey = contextKey("principal")
