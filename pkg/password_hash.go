package pkg

import "golang.org/x/crypto/bcrypt"

const tokenHashCost = 12

// HashToken is used by operators to produce the value for GYMBOT_API_TOKEN_HASH.
func HashToken(token string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(token), tokenHashCost)
	return string(bytes), err
}

func CheckTokenHash(token, hash string) bool {
	if token == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(token)) == nil
}
