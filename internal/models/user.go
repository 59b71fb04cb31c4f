package models

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
	"gorm.io/gorm"
)

// ErrPasswordNotReadable is the panic value raised when code tries to read a
// user's plaintext password.
var ErrPasswordNotReadable = errors.New("password is not a readable attribute")

type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"type:varchar(64);uniqueIndex" json:"email"`
	FirstName    string     `gorm:"type:varchar(64)" json:"first_name"`
	LastName     string     `gorm:"type:varchar(64)" json:"last_name"`
	Username     string     `gorm:"type:varchar(64);uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"type:varchar(128)" json:"-"`
	Location     string     `gorm:"type:varchar(64)" json:"location"`
	AboutMe      string     `gorm:"type:text" json:"about_me"`
	Confirmed    bool       `json:"confirmed"`
	RegisteredOn time.Time  `gorm:"autoCreateTime" json:"registered_on"`
	Approved     bool       `json:"approved"`
	ApprovedOn   *time.Time `json:"approved_on"`
	ApprovedBy   *uint64    `json:"approved_by"`
	LastSeen     time.Time  `json:"last_seen"`
	AvatarHash   string     `gorm:"type:varchar(32)" json:"-"`

	// Relations
	Groups []Group `gorm:"many2many:user_group;" json:"-"`
	Skills []Skill `gorm:"many2many:user_skill;" json:"-"`
}

// BeforeSave keeps the derived columns in step with the email address.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Email != "" {
		u.AvatarHash = EmailHash(u.Email)
		if u.Username == "" {
			u.Username = u.Email
		}
	}
	if u.LastSeen.IsZero() {
		u.LastSeen = time.Now().UTC()
	}
	return nil
}

// SetEmail updates the email and its avatar hash together.
func (u *User) SetEmail(email string) {
	u.Email = email
	u.AvatarHash = EmailHash(email)
}

// Password panics: the plaintext password is write-only.
func (u *User) Password() string {
	panic(ErrPasswordNotReadable)
}

// SetPassword stores a bcrypt hash of the given plaintext.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hashed)
	return nil
}

// VerifyPassword reports whether password matches the stored hash. Hashes in
// the legacy "pbkdf2:<digest>:<iterations>$<salt>$<hex>" format are accepted
// alongside bcrypt.
func (u *User) VerifyPassword(password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	if strings.HasPrefix(u.PasswordHash, "pbkdf2:") {
		return checkPBKDF2Hash(u.PasswordHash, password)
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// Ping records activity.
func (u *User) Ping(now time.Time) {
	u.LastSeen = now
}

// DisplayName is the full name when both parts are known, otherwise the
// username, otherwise the email.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return strings.TrimSpace(u.FirstName + " " + u.LastName)
	case u.Username != "":
		return u.Username
	default:
		return u.Email
	}
}

func (u *User) String() string {
	return u.DisplayName()
}

// Gravatar builds the avatar image URL. secure selects the https host and
// should mirror whether the inbound request was itself secure.
func (u *User) Gravatar(secure bool, size int, defaultStyle, rating string) string {
	base := "http://www.gravatar.com/avatar"
	if secure {
		base = "https://secure.gravatar.com/avatar"
	}
	h := u.AvatarHash
	if h == "" {
		h = EmailHash(u.Email)
	}
	return fmt.Sprintf("%s/%s?s=%d&d=%s&r=%s", base, h, size, defaultStyle, rating)
}

// EmailHash is the md5 hex digest of the lowercased email.
func EmailHash(email string) string {
	sum := md5.Sum([]byte(strings.ToLower(email)))
	return hex.EncodeToString(sum[:])
}

// LegacyPasswordHash produces a "pbkdf2:<digest>:<iterations>$<salt>$<hex>"
// hash, the format carried by seeded accounts.
func LegacyPasswordHash(password, digest, salt string, iterations int) (string, error) {
	newHash, size, err := legacyDigest(digest)
	if err != nil {
		return "", err
	}
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, size, newHash)
	return fmt.Sprintf("pbkdf2:%s:%d$%s$%s", digest, iterations, salt, hex.EncodeToString(key)), nil
}

func checkPBKDF2Hash(encoded, password string) bool {
	parts := strings.SplitN(encoded, "$", 3)
	if len(parts) != 3 {
		return false
	}
	method := strings.Split(parts[0], ":")
	if len(method) != 3 {
		return false
	}
	iterations, err := strconv.Atoi(method[2])
	if err != nil || iterations <= 0 {
		return false
	}
	expected, err := LegacyPasswordHash(password, method[1], parts[1], iterations)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(encoded)) == 1
}

func legacyDigest(name string) (func() hash.Hash, int, error) {
	switch name {
	case "sha1":
		return sha1.New, sha1.Size, nil
	case "sha256":
		return sha256.New, sha256.Size, nil
	default:
		return nil, 0, fmt.Errorf("unsupported pbkdf2 digest %q", name)
	}
}
