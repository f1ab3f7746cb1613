package model

import "time"

// Account types
const (
	AccountIndividual = "individual"
	AccountBusiness   = "business"
)

// Settings defaults applied when a field was never written
const (
	DefaultTimezone          = "UTC"
	DefaultNotificationHours = 24.0
)

// UserSettings is the per-user configuration record. The document id is the
// user id.
type UserSettings struct {
	UserID            string   `bson:"_id" json:"userId"`
	Name              *string  `bson:"name,omitempty" json:"name,omitempty"`
	Email             *string  `bson:"email,omitempty" json:"email,omitempty"`
	CompanyName       *string  `bson:"companyName,omitempty" json:"companyName,omitempty"`
	Timezone          *string  `bson:"timezone,omitempty" json:"timezone,omitempty"`
	AccountType       *string  `bson:"accountType,omitempty" json:"accountType,omitempty"`
	NotificationHours *float64 `bson:"notificationHours,omitempty" json:"notificationHours,omitempty"`
	TeamID            *string  `bson:"teamId,omitempty" json:"teamId"`
}

// TimezoneName returns the configured zone or DefaultTimezone.
func (s *UserSettings) TimezoneName() string {
	if s == nil || s.Timezone == nil || *s.Timezone == "" {
		return DefaultTimezone
	}
	return *s.Timezone
}

// Location resolves TimezoneName, falling back to UTC for unknown zones.
func (s *UserSettings) Location() *time.Location {
	loc, err := time.LoadLocation(s.TimezoneName())
	if err != nil {
		return time.UTC
	}
	return loc
}

// Hours returns the reminder lead time or DefaultNotificationHours.
func (s *UserSettings) Hours() float64 {
	if s == nil || s.NotificationHours == nil {
		return DefaultNotificationHours
	}
	return *s.NotificationHours
}

// Team returns the team pointer, or "" when the user has no team.
func (s *UserSettings) Team() string {
	if s == nil || s.TeamID == nil {
		return ""
	}
	return *s.TeamID
}

// DisplayName returns the stored name, if any.
func (s *UserSettings) DisplayName() string {
	if s == nil || s.Name == nil {
		return ""
	}
	return *s.Name
}

// EmailAddress returns the stored e-mail, if any.
func (s *UserSettings) EmailAddress() string {
	if s == nil || s.Email == nil {
		return ""
	}
	return *s.Email
}

// SettingsPatch lists the fields to write in a merge-write. Nil fields are
// left untouched. A non-nil TeamID holding "" clears the team pointer.
// Email and TeamID are never read from a request body: the e-mail comes from
// the sign-in identity and the team pointer from the invite flow.
type SettingsPatch struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Email             *string  `json:"-" validate:"omitempty,email"`
	CompanyName       *string  `json:"companyName,omitempty" validate:"omitempty,max=200,companyname"`
	Timezone          *string  `json:"timezone,omitempty" validate:"omitempty,min=1,timezone"`
	AccountType       *string  `json:"accountType,omitempty" validate:"omitempty,oneof=individual business"`
	NotificationHours *float64 `json:"notificationHours,omitempty" validate:"omitempty,gte=0,lte=8760"`
	TeamID            *string  `json:"-"`
}

// IsEmpty reports whether the patch writes nothing.
func (p *SettingsPatch) IsEmpty() bool {
	return p == nil || (p.Name == nil && p.Email == nil && p.CompanyName == nil && p.Timezone == nil &&
		p.AccountType == nil && p.NotificationHours == nil && p.TeamID == nil)
}

// ApplyTo merges the patch into s.
func (p *SettingsPatch) ApplyTo(s *UserSettings) {
	if p.Name != nil {
		s.Name = Ptr(*p.Name)
	}
	if p.Email != nil {
		s.Email = Ptr(*p.Email)
	}
	if p.CompanyName != nil {
		s.CompanyName = Ptr(*p.CompanyName)
	}
	if p.Timezone != nil {
		s.Timezone = Ptr(*p.Timezone)
	}
	if p.AccountType != nil {
		s.AccountType = Ptr(*p.AccountType)
	}
	if p.NotificationHours != nil {
		s.NotificationHours = Ptr(*p.NotificationHours)
	}
	if p.TeamID != nil {
		if *p.TeamID == "" {
			s.TeamID = nil
		} else {
			s.TeamID = Ptr(*p.TeamID)
		}
	}
}

// SettingsView is the stored record plus the values in effect after
// defaults are applied.
type SettingsView struct {
	*UserSettings
	EffectiveTimezone string  `json:"effectiveTimezone"`
	EffectiveHours    float64 `json:"effectiveNotificationHours"`
}

// RegisterRequest is written once when an account is created with a password.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=200"`
	AccountType string `json:"accountType" validate:"required,oneof=individual business"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }
