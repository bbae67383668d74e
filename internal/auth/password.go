package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost - стоимость хеширования пароля.
const bcryptCost = 12

// HashPassword хеширует пароль через bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword проверяет пароль против хеша.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
