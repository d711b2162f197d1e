package Models

import (
	"NirapodTika/Utils/Token"
	"errors"
	"html"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Phone             string        `gorm:"size:15;not null;unique" json:"phone"`
	NID               string        `gorm:"size:20;not null;unique" json:"nid"`
	Email             string        `gorm:"size:255;not null;unique" json:"email"`
	Password          string        `gorm:"size:255;not null" json:"password"`
	FirstName         string        `json:"first_name"`
	LastName          string        `json:"last_name"`
	Address           string        `json:"address"`
	Role              string        `gorm:"size:10;default:patient" json:"role"`
	MedicalDetails    string        `json:"medical_details"`
	Specialization    string        `json:"specialization"`
	ProfilePictureURL string        `json:"profile_picture_url"`
	IsActive          bool          `json:"is_active"`
	ActivationToken   string        `json:"-"`
	Tokens            []DeviceToken `gorm:"foreignKey:UserID" json:"-"`
}

type DeviceToken struct {
	gorm.Model
	UserID uint
	Value  string `json:"value" gorm:"unique"`
}

func GetUserByID(uid uint) (User, error) {
	var user User

	if err := DB.First(&user, uid).Error; err != nil {
		return user, errors.New("User not found")
	}

	user.PrepareGive()

	return user, nil
}

func GetUserByEmail(email string) (User, error) {
	var user User
	if err := DB.Where("email = ?", email).First(&user).Error; err != nil {
		return user, errors.New("User not found")
	}
	return user, nil
}

func GetStaffFCMs() ([]string, error) {
	var fcms []string
	err := DB.Model(&DeviceToken{}).
		Joins("JOIN users ON users.id = device_tokens.user_id").
		Where("users.role IN ?", []string{RoleDoctor, RoleAdmin}).
		Select("device_tokens.value").Find(&fcms).Error
	if err != nil {
		return nil, err
	}
	return fcms, nil
}

func GetFCMsByUserID(uid uint) ([]string, error) {
	var fcms []string
	if err := DB.Model(&DeviceToken{}).Where("user_id = ?", uid).Select("value").Find(&fcms).Error; err != nil {
		return nil, err
	}
	return fcms, nil
}

func (user *User) PrepareGive() {
	user.Password = ""
}

func VerifyPassword(password, hashedPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// LoginCheck authenticates by phone number, the account identifier of this
// system, and hands back a signed JWT.
func LoginCheck(phone string, password string) (uint, string, error) {

	var err error

	user := User{}

	err = DB.Model(User{}).Where("phone = ?", phone).Take(&user).Error

	if err != nil {
		return 0, "", err
	}

	err = VerifyPassword(password, user.Password)

	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return 0, "", err
	}

	token, err := Token.GenerateToken(user.ID)

	if err != nil {
		return 0, "", err
	}

	return user.ID, token, nil
}

func (user *User) SaveUser() (*User, error) {

	if err := user.BeforeSave(); err != nil {
		return &User{}, err
	}

	if err := DB.Create(&user).Error; err != nil {
		return &User{}, err
	}

	return user, nil
}

func (user *User) BeforeSave() error {

	//turn password into hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)

	user.Email = html.EscapeString(strings.TrimSpace(user.Email))
	user.Phone = strings.TrimSpace(user.Phone)

	return nil
}
