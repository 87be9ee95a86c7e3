package cli

// maskToken оставляет видимыми только последние 4 символа токена
func maskToken(token string) string {
	if len(token) < 12 {
		return "****" // короткие значения скрываем полностью
	}
	return "****" + token[len(token)-4:]
}
