package utility

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	jwt "github.com/dgrijalva/jwt-go"
)

// CreateToken tạo JWT token từ claims với thuật toán HS256
// @params - secret ký token, claims chứa thông tin phiên
// @returns - chuỗi token đã ký và lỗi nếu có
func CreateToken(secret string, claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("không thể ký token: %w", err)
	}
	return signed, nil
}

// VerifyToken parse và verify JWT token, decode vào claims được truyền vào
// @params - secret ký token, chuỗi token, con trỏ claims nhận dữ liệu
// @returns - lỗi nếu token không hợp lệ hoặc hết hạn
func VerifyToken(secret string, tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("thuật toán ký không được hỗ trợ: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("token không hợp lệ")
	}
	return nil
}

// GenerateRandomHex sinh chuỗi hex ngẫu nhiên độ dài n byte (dùng làm nonce trong token)
func GenerateRandomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	return hex.EncodeToString(b)
}
