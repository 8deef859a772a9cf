package models

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// User categories. Each one owns a dashboard at /dashboard/<category>.
const (
	CategoryOwnerOperator = "owner-operator"
	CategoryCarrier       = "carrier"
	CategoryBrokerShipper = "broker-shipper"
)

const (
	SubscriptionTrial   = "trial"
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// TrialPeriod is granted to every new account.
const TrialPeriod = 14 * 24 * time.Hour

type User struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Password           string     `json:"password,omitempty"`
	DisplayName        string     `json:"displayName,omitempty"`
	Category           string     `json:"category"`
	CompanyName        string     `json:"companyName,omitempty"`
	DOTNumber          string     `json:"dotNumber,omitempty"`
	MCNumber           string     `json:"mcNumber,omitempty"`
	Keycode            string     `json:"-"`
	IsAdmin            bool       `json:"isAdmin"`
	TrialEndsAt        *time.Time `json:"trialEndsAt,omitempty"`
	SubscriptionTier   string     `json:"subscriptionTier,omitempty"`
	SubscriptionStatus string     `json:"subscriptionStatus,omitempty"`
	FCMToken           string     `json:"-"`
	CreatedAt          time.Time  `json:"createdAt"`
}

// ValidCategory reports whether c names one of the three dashboards.
func ValidCategory(c string) bool {
	switch c {
	case CategoryOwnerOperator, CategoryCarrier, CategoryBrokerShipper:
		return true
	}
	return false
}

type Claims struct {
	UserID   string `json:"user_id"`
	Category string `json:"category"`
	IsAdmin  bool   `json:"is_admin"`
	jwt.StandardClaims
}

type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Session struct {
	UserID       string    `json:"userId"`
	Category     string    `json:"category"`
	IsAdmin      bool      `json:"isAdmin"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

type SignUpRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName"`
	Category    string `json:"category"`
	CompanyName string `json:"companyName"`
	DOTNumber   string `json:"dotNumber"`
	MCNumber    string `json:"mcNumber"`
	Keycode     string `json:"keycode"`
}

type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthState mirrors the payload of the front-end auth subscription.
type AuthState struct {
	User          *User  `json:"user"`
	IsLoading     bool   `json:"isLoading"`
	DashboardPath string `json:"dashboardPath,omitempty"`
}
