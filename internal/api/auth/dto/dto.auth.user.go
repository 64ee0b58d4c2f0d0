// Package authdto chứa DTO cho domain auth.
// File: dto.auth.user.go
package authdto

// FirebaseLoginInput là DTO cho đăng nhập bằng Firebase ID token
type FirebaseLoginInput struct {
	IDToken string `json:"idToken" validate:"required"` // ID token do Firebase cấp sau khi đăng nhập phía client
	Hwid    string `json:"hwid" validate:"required"`    // Mã định danh thiết bị đăng nhập
}

// UserLogoutInput là DTO cho đăng xuất (xóa token của thiết bị tương ứng)
type UserLogoutInput struct {
	Hwid string `json:"hwid" validate:"required"`
}

// UserCreateInput là DTO cho tạo mới người dùng (chỉ dùng cho CRUD quản trị)
type UserCreateInput struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"phone,omitempty"`
	FirebaseUID string `json:"firebaseUid" validate:"required"`
}

// UserUpdateInput là DTO cho cập nhật người dùng
type UserUpdateInput struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatarUrl,omitempty"`
}
