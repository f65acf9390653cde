package session

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/cargobot/internal/models"
)

// Session is the state kept for one chat user between updates.
type Session struct {
	// Language is the interface language, remembered even before the user
	// has a customer record. Empty until the user picks one.
	Language models.Language
	// CustomerID is set after registration or a successful login.
	CustomerID *int64
	// Form is the step in progress, nil when the user is at a menu.
	Form Form
}

// Idle reports whether no multi-step form is in progress.
func (s *Session) Idle() bool {
	return s.Form == nil
}

// Empty reports whether s holds nothing worth keeping in the store.
func (s *Session) Empty() bool {
	return s.Language == "" && s.CustomerID == nil && s.Form == nil
}

// Lang returns the session language with the Uzbek default applied.
func (s *Session) Lang() models.Language {
	if s.Language == "" {
		return models.LanguageUz
	}
	return s.Language
}

type envelope struct {
	Language   models.Language `json:"language,omitempty"`
	CustomerID *int64          `json:"customer_id,omitempty"`
	Kind       FormKind        `json:"kind,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	env := envelope{Language: s.Language, CustomerID: s.CustomerID}
	if s.Form != nil {
		data, err := json.Marshal(s.Form)
		if err != nil {
			return nil, fmt.Errorf("encode form %s: %w", s.Form.Kind(), err)
		}
		env.Kind = s.Form.Kind()
		env.Data = data
	}
	return json.Marshal(env)
}

func (s *Session) UnmarshalJSON(b []byte) error {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}

	s.Language = env.Language
	s.CustomerID = env.CustomerID
	s.Form = nil

	if env.Kind == "" {
		return nil
	}

	newForm, ok := registry[env.Kind]
	if !ok {
		return fmt.Errorf("unknown form kind %q", env.Kind)
	}
	form := newForm()
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, form); err != nil {
			return fmt.Errorf("decode form %s: %w", env.Kind, err)
		}
	}
	s.Form = deref(form)
	return nil
}

// deref turns the registry's pointer back into the value form the
// workflow switches on.
func deref(f Form) Form {
	switch v := f.(type) {
	case *FullNameStep:
		return *v
	case *PhoneStep:
		return *v
	case *DocumentTypeStep:
		return *v
	case *FrontImageStep:
		return *v
	case *BackImageStep:
		return *v
	case *BookletImageStep:
		return *v
	case *DocNumberStep:
		return *v
	case *BirthDateStep:
		return *v
	case *PinflStep:
		return *v
	case *AddressStep:
		return *v
	case *ConfirmStep:
		return *v
	case *LoginCodeStep:
		return *v
	case *LoginPhoneStep:
		return *v
	case *FeedbackStep:
		return *v
	case *TrackStep:
		return *v
	case *WarehouseConfirmStep:
		return *v
	case *LogoutConfirmStep:
		return *v
	case *AdminSearchStep:
		return *v
	case *AdminTrackStep:
		return *v
	case *AdminShipmentsStep:
		return *v
	case *AdminCustomersStep:
		return *v
	case *AdminBroadcastStep:
		return *v
	case *AdminClearStep:
		return *v
	case *RejectReasonStep:
		return *v
	case *FeedbackReplyStep:
		return *v
	}
	return f
}
