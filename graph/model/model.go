package model

// User — публичная проекция пользователя.
// Хеш пароля сюда никогда не попадает — он живет только в хранилище.
type User struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
	Status string   `json:"status"`
	Posts  []string `json:"posts"`
}

// Post — публичная проекция поста.
// CreatorID — "сырая" ссылка на владельца; Creator заполняется только
// при чтении с populate (FindByIDWithCreator, List).
type Post struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ImageURL  string `json:"imageUrl"`
	CreatorID string `json:"-"`
	Creator   *User  `json:"creator,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AuthData — результат логина.
type AuthData struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// PostPage — страница списка постов.
type PostPage struct {
	Posts      []*Post `json:"posts"`
	TotalPosts int     `json:"totalPosts"`
}

// UserInput — входные данные регистрации.
type UserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=5"`
}

// PostInput — входные данные создания/обновления поста.
// ImageURL не валидируется.
type PostInput struct {
	Title    string `json:"title" validate:"required,min=5"`
	Content  string `json:"content" validate:"required,min=5"`
	ImageURL string `json:"imageUrl"`
}
