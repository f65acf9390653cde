package models

import "time"

// VerificationStatus gates which menu a customer sees.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusApproved VerificationStatus = "approved"
	StatusRejected VerificationStatus = "rejected"
)

// Valid reports whether s is one of the known statuses.
func (s VerificationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// DocumentType is the physical form of the passport a customer photographs.
type DocumentType string

const (
	DocumentBiometric DocumentType = "id_card" // two images, front and back
	DocumentBooklet   DocumentType = "booklet" // one image
)

// Language is a supported interface language.
type Language string

const (
	LanguageUz Language = "uz"
	LanguageRu Language = "ru"
)

// ParseLanguage returns the language for code, falling back to Uzbek.
func ParseLanguage(code string) Language {
	if Language(code) == LanguageRu {
		return LanguageRu
	}
	return LanguageUz
}

type Customer struct {
	ID               int64
	TelegramID       *int64 // nil for imported customers who never logged in
	Username         string
	ClientCode       string
	FullName         string
	Phone            string
	DocumentNumber   string
	BirthDate        string // dd.mm.yyyy
	DocumentExpiry   *string
	Pinfl            string
	Address          string
	AddressConfirmed bool
	DocumentType     DocumentType
	FrontImageID     string
	BackImageID      string
	FrontArchiveKey  string
	BackArchiveKey   string
	Status           VerificationStatus
	RejectionReason  *string
	IsActive         bool
	Language         Language
	RegisteredAt     time.Time
	VerifiedAt       *time.Time
	LastLoginAt      *time.Time
}

// StatusCounts is the per-status tally of active customers.
type StatusCounts struct {
	Pending  int
	Approved int
	Rejected int
}

func (c StatusCounts) Total() int {
	return c.Pending + c.Approved + c.Rejected
}
