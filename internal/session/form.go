// Package session keeps the per-user conversation state: the preferred
// language, the customer the user logged in as, and the form currently being
// filled in. A form is one variant of the Form union; each variant carries
// exactly the answers collected before its step.
package session

import "github.com/dmitrijs2005/cargobot/internal/models"

// FormKind discriminates Form variants in the stored envelope.
type FormKind string

// Form is a step of a multi-message conversation.
type Form interface {
	Kind() FormKind
}

const (
	KindFullName     FormKind = "reg_full_name"
	KindPhone        FormKind = "reg_phone"
	KindDocumentType FormKind = "reg_document_type"
	KindFrontImage   FormKind = "reg_front_image"
	KindBackImage    FormKind = "reg_back_image"
	KindBookletImage FormKind = "reg_booklet_image"
	KindDocNumber    FormKind = "reg_document_number"
	KindBirthDate    FormKind = "reg_birth_date"
	KindPinfl        FormKind = "reg_pinfl"
	KindAddress      FormKind = "reg_address"
	KindConfirm      FormKind = "reg_confirm"

	KindLoginCode  FormKind = "login_code"
	KindLoginPhone FormKind = "login_phone"

	KindFeedback         FormKind = "feedback"
	KindTrack            FormKind = "track"
	KindWarehouseConfirm FormKind = "warehouse_confirm"
	KindLogoutConfirm    FormKind = "logout_confirm"

	KindAdminSearch    FormKind = "admin_search"
	KindAdminTrack     FormKind = "admin_track"
	KindAdminShipments FormKind = "admin_shipments"
	KindAdminCustomers FormKind = "admin_customers"
	KindAdminBroadcast FormKind = "admin_broadcast"
	KindAdminClear     FormKind = "admin_clear"

	KindRejectReason  FormKind = "staff_reject_reason"
	KindFeedbackReply FormKind = "staff_feedback_reply"
)

// Registration steps.

type FullNameStep struct{}

type PhoneStep struct {
	FullName string `json:"full_name"`
}

type DocumentTypeStep struct {
	PhoneStep
	Phone string `json:"phone"`
}

type FrontImageStep struct {
	DocumentTypeStep
}

type BackImageStep struct {
	FrontImageStep
	FrontImageID string `json:"front_image_id"`
}

type BookletImageStep struct {
	DocumentTypeStep
}

type DocNumberStep struct {
	DocumentTypeStep
	DocumentType models.DocumentType `json:"document_type"`
	FrontImageID string              `json:"front_image_id"`
	BackImageID  string              `json:"back_image_id"`
}

type BirthDateStep struct {
	DocNumberStep
	DocumentNumber string `json:"document_number"`
}

type PinflStep struct {
	BirthDateStep
	BirthDate      string  `json:"birth_date"`
	DocumentExpiry *string `json:"document_expiry,omitempty"`
}

type AddressStep struct {
	PinflStep
	Pinfl string `json:"pinfl"`
}

type ConfirmStep struct {
	AddressStep
	Address string `json:"address"`
}

// Customer builds the record a confirmed form registers.
func (c ConfirmStep) Customer() *models.Customer {
	return &models.Customer{
		FullName:       c.FullName,
		Phone:          c.Phone,
		DocumentType:   c.DocumentType,
		FrontImageID:   c.FrontImageID,
		BackImageID:    c.BackImageID,
		DocumentNumber: c.DocumentNumber,
		BirthDate:      c.BirthDate,
		DocumentExpiry: c.DocumentExpiry,
		Pinfl:          c.Pinfl,
		Address:        c.Address,
	}
}

// Login steps.

type LoginCodeStep struct{}

type LoginPhoneStep struct {
	ClientCode string `json:"client_code"`
}

// Customer menu prompts.

type FeedbackStep struct{}
type TrackStep struct{}
type WarehouseConfirmStep struct{}
type LogoutConfirmStep struct{}

// Admin prompts.

type AdminSearchStep struct{}
type AdminTrackStep struct{}
type AdminShipmentsStep struct{}
type AdminCustomersStep struct{}
type AdminBroadcastStep struct{}
type AdminClearStep struct{}

// Staff prompts.

// RejectReasonStep waits for the reason a staff member rejects a customer
// with. ChannelID and MessageID point at the verification message.
type RejectReasonStep struct {
	CustomerID int64 `json:"customer_id"`
	ChannelID  int64 `json:"channel_id"`
	MessageID  int   `json:"message_id"`
}

type FeedbackReplyStep struct {
	FeedbackID int64 `json:"feedback_id"`
}

func (FullNameStep) Kind() FormKind     { return KindFullName }
func (PhoneStep) Kind() FormKind        { return KindPhone }
func (DocumentTypeStep) Kind() FormKind { return KindDocumentType }
func (FrontImageStep) Kind() FormKind   { return KindFrontImage }
func (BackImageStep) Kind() FormKind    { return KindBackImage }
func (BookletImageStep) Kind() FormKind { return KindBookletImage }
func (DocNumberStep) Kind() FormKind    { return KindDocNumber }
func (BirthDateStep) Kind() FormKind    { return KindBirthDate }
func (PinflStep) Kind() FormKind        { return KindPinfl }
func (AddressStep) Kind() FormKind      { return KindAddress }
func (ConfirmStep) Kind() FormKind      { return KindConfirm }

func (LoginCodeStep) Kind() FormKind  { return KindLoginCode }
func (LoginPhoneStep) Kind() FormKind { return KindLoginPhone }

func (FeedbackStep) Kind() FormKind         { return KindFeedback }
func (TrackStep) Kind() FormKind            { return KindTrack }
func (WarehouseConfirmStep) Kind() FormKind { return KindWarehouseConfirm }
func (LogoutConfirmStep) Kind() FormKind    { return KindLogoutConfirm }

func (AdminSearchStep) Kind() FormKind    { return KindAdminSearch }
func (AdminTrackStep) Kind() FormKind     { return KindAdminTrack }
func (AdminShipmentsStep) Kind() FormKind { return KindAdminShipments }
func (AdminCustomersStep) Kind() FormKind { return KindAdminCustomers }
func (AdminBroadcastStep) Kind() FormKind { return KindAdminBroadcast }
func (AdminClearStep) Kind() FormKind     { return KindAdminClear }

func (RejectReasonStep) Kind() FormKind  { return KindRejectReason }
func (FeedbackReplyStep) Kind() FormKind { return KindFeedbackReply }

var registry = map[FormKind]func() Form{
	KindFullName:     func() Form { return &FullNameStep{} },
	KindPhone:        func() Form { return &PhoneStep{} },
	KindDocumentType: func() Form { return &DocumentTypeStep{} },
	KindFrontImage:   func() Form { return &FrontImageStep{} },
	KindBackImage:    func() Form { return &BackImageStep{} },
	KindBookletImage: func() Form { return &BookletImageStep{} },
	KindDocNumber:    func() Form { return &DocNumberStep{} },
	KindBirthDate:    func() Form { return &BirthDateStep{} },
	KindPinfl:        func() Form { return &PinflStep{} },
	KindAddress:      func() Form { return &AddressStep{} },
	KindConfirm:      func() Form { return &ConfirmStep{} },

	KindLoginCode:  func() Form { return &LoginCodeStep{} },
	KindLoginPhone: func() Form { return &LoginPhoneStep{} },

	KindFeedback:         func() Form { return &FeedbackStep{} },
	KindTrack:            func() Form { return &TrackStep{} },
	KindWarehouseConfirm: func() Form { return &WarehouseConfirmStep{} },
	KindLogoutConfirm:    func() Form { return &LogoutConfirmStep{} },

	KindAdminSearch:    func() Form { return &AdminSearchStep{} },
	KindAdminTrack:     func() Form { return &AdminTrackStep{} },
	KindAdminShipments: func() Form { return &AdminShipmentsStep{} },
	KindAdminCustomers: func() Form { return &AdminCustomersStep{} },
	KindAdminBroadcast: func() Form { return &AdminBroadcastStep{} },
	KindAdminClear:     func() Form { return &AdminClearStep{} },

	KindRejectReason:  func() Form { return &RejectReasonStep{} },
	KindFeedbackReply: func() Form { return &FeedbackReplyStep{} },
}
