package model

import "time"

// Appointment is a client appointment placed in the owner's timezone.
type Appointment struct {
	ClientID string    `json:"clientId"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Phone    string    `json:"phone,omitempty"`
	Start    time.Time `json:"start"`
	Date     string    `json:"date"`
	Time     string    `json:"time"`
}

// CalendarDay holds the appointments of one local day, earliest first.
type CalendarDay struct {
	Date         string        `json:"date"`
	Appointments []Appointment `json:"appointments"`
}

// CalendarView is the list of days with at least one appointment.
type CalendarView struct {
	Timezone string        `json:"timezone"`
	Days     []CalendarDay `json:"days"`
}

// PeriodCount is the number of clients created in a month or week.
type PeriodCount struct {
	Period  string `json:"period"`
	Clients int    `json:"clients"`
}

// StatusCount is a bucket of the appointment status chart.
type StatusCount struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Analytics summarises the clients visible to a user.
type Analytics struct {
	TotalClients          int           `json:"totalClients"`
	UpcomingAppointments  int           `json:"upcomingAppointments"`
	CompletedAppointments int           `json:"completedAppointments"`
	Monthly               []PeriodCount `json:"monthly"`
	AppointmentStatus     []StatusCount `json:"appointmentStatus"`
}

// Dashboard is the landing summary for a user.
type Dashboard struct {
	TotalClients    int           `json:"totalClients"`
	ActiveClients   int           `json:"activeClients"`
	NextAppointment *Appointment  `json:"nextAppointment"`
	CompanyName     string        `json:"companyName"`
	Timezone        string        `json:"timezone"`
	TimezoneLabel   string        `json:"timezoneLabel"`
	AccountType     string        `json:"accountType,omitempty"`
	WeeklyClients   []PeriodCount `json:"weeklyClients"`
	RecentClients   []*Client     `json:"recentClients"`
}
