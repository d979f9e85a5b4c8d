package apperrors

// Violation — одно нарушение валидации входных данных.
type Violation struct {
	Message string `json:"message"`
}

// Error — ошибка резолвера с HTTP-подобным кодом.
// Code == 0 означает, что код не задан (транспорт трактует как 500).
type Error struct {
	Message string
	Code    int
	Data    []Violation
}

func (e *Error) Error() string {
	return e.Message
}

// Validation — 422, несет полный список нарушений.
func Validation(message string, data []Violation) *Error {
	return &Error{Message: message, Code: 422, Data: data}
}

// Authentication — 401, не аутентифицирован.
func Authentication(message string) *Error {
	return &Error{Message: message, Code: 401}
}

// Authorization — 403, не владелец ресурса.
func Authorization(message string) *Error {
	return &Error{Message: message, Code: 403}
}

// NotFound — 404.
func NotFound(message string) *Error {
	return &Error{Message: message, Code: 404}
}

// Conflict — конфликт без явного кода (например, дубликат email).
func Conflict(message string) *Error {
	return &Error{Message: message}
}
