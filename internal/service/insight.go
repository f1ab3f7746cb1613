package service

import (
	"context"
	"sort"
	"time"

	"clientbook/internal/apperr"
	"clientbook/internal/model"
)

const (
	monthLabel = "Jan 2006"
	weekLabel  = "Jan 2"

	// history shown by the analytics and dashboard charts
	analyticsMonths = 6
	dashboardWeeks  = 6
	recentClients   = 5
)

// InsightService derives the calendar, analytics and dashboard views from
// the clients a user can see. Appointment times are read in the user's
// timezone.
type InsightService struct {
	clients  *ClientService
	settings *SettingsService
	now      func() time.Time
}

// NewInsightService creates a new insight service
func NewInsightService(clients *ClientService, settings *SettingsService) *InsightService {
	return &InsightService{clients: clients, settings: settings, now: time.Now}
}

type scope struct {
	settings *model.UserSettings
	loc      *time.Location
	clients  []*model.Client
}

func (s *InsightService) load(ctx context.Context, userID string) (*scope, error) {
	st, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	clients, err := s.clients.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &scope{settings: st, loc: st.Location(), clients: clients}, nil
}

func appointmentOf(c *model.Client, loc *time.Location) (model.Appointment, bool) {
	start, ok := c.AppointmentIn(loc)
	if !ok {
		return model.Appointment{}, false
	}
	return model.Appointment{
		ClientID: c.ID.Hex(),
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Start:    start,
		Date:     start.Format(model.DateLayout),
		Time:     start.Format("15:04"),
	}, true
}

// Calendar lists appointments between from and to (inclusive, YYYY-MM-DD)
// grouped by day. Empty bounds default to the current month.
func (s *InsightService) Calendar(ctx context.Context, userID, from, to string) (*model.CalendarView, error) {
	sc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().In(sc.loc)
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, sc.loc)
	start, end := first, first.AddDate(0, 1, -1)
	if from != "" {
		if start, err = time.ParseInLocation(model.DateLayout, from, sc.loc); err != nil {
			return nil, apperr.Invalid("from", "must use the format YYYY-MM-DD")
		}
	}
	if to != "" {
		if end, err = time.ParseInLocation(model.DateLayout, to, sc.loc); err != nil {
			return nil, apperr.Invalid("to", "must use the format YYYY-MM-DD")
		}
	}
	if end.Before(start) {
		return nil, apperr.Invalid("to", "must not be before from")
	}
	end = end.AddDate(0, 0, 1)

	byDay := map[string][]model.Appointment{}
	for _, c := range sc.clients {
		a, ok := appointmentOf(c, sc.loc)
		if !ok || a.Start.Before(start) || !a.Start.Before(end) {
			continue
		}
		byDay[a.Date] = append(byDay[a.Date], a)
	}

	view := &model.CalendarView{Timezone: sc.settings.TimezoneName(), Days: []model.CalendarDay{}}
	for day, appts := range byDay {
		sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
		view.Days = append(view.Days, model.CalendarDay{Date: day, Appointments: appts})
	}
	sort.Slice(view.Days, func(i, j int) bool { return view.Days[i].Date < view.Days[j].Date })
	return view, nil
}

// Analytics counts clients, past and future appointments, and new clients
// per month over the last six months.
func (s *InsightService) Analytics(ctx context.Context, userID string) (*model.Analytics, error) {
	sc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().In(sc.loc)

	out := &model.Analytics{TotalClients: len(sc.clients)}
	for _, c := range sc.clients {
		a, ok := appointmentOf(c, sc.loc)
		if !ok {
			continue
		}
		if a.Start.After(now) {
			out.UpcomingAppointments++
		} else {
			out.CompletedAppointments++
		}
	}

	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, sc.loc)
	index := map[string]int{}
	for i := analyticsMonths - 1; i >= 0; i-- {
		label := thisMonth.AddDate(0, -i, 0).Format(monthLabel)
		index[label] = len(out.Monthly)
		out.Monthly = append(out.Monthly, model.PeriodCount{Period: label})
	}
	for _, c := range sc.clients {
		if c.CreatedAt.IsZero() {
			continue
		}
		if i, ok := index[c.CreatedAt.In(sc.loc).Format(monthLabel)]; ok {
			out.Monthly[i].Clients++
		}
	}

	out.AppointmentStatus = []model.StatusCount{}
	if out.CompletedAppointments > 0 {
		out.AppointmentStatus = append(out.AppointmentStatus, model.StatusCount{Name: "Completed", Value: out.CompletedAppointments})
	}
	if out.UpcomingAppointments > 0 {
		out.AppointmentStatus = append(out.AppointmentStatus, model.StatusCount{Name: "Upcoming", Value: out.UpcomingAppointments})
	}
	return out, nil
}

// Dashboard summarises the user's account: totals, the next appointment,
// weekly new clients and the most recent clients.
func (s *InsightService) Dashboard(ctx context.Context, userID string) (*model.Dashboard, error) {
	sc, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now().In(sc.loc)
	zone := sc.settings.TimezoneName()

	out := &model.Dashboard{
		TotalClients:  len(sc.clients),
		Timezone:      zone,
		TimezoneLabel: model.TimezoneLabel(zone),
	}
	if st := sc.settings; st != nil {
		if st.CompanyName != nil {
			out.CompanyName = *st.CompanyName
		}
		if st.AccountType != nil {
			out.AccountType = *st.AccountType
		}
	}

	for _, c := range sc.clients {
		if c.Status == model.ClientStatusActive {
			out.ActiveClients++
		}
		a, ok := appointmentOf(c, sc.loc)
		if !ok || !a.Start.After(now) {
			continue
		}
		if out.NextAppointment == nil || a.Start.Before(out.NextAppointment.Start) {
			next := a
			out.NextAppointment = &next
		}
	}

	// weeks start on Sunday
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, sc.loc)
	weekStart := today.AddDate(0, 0, -int(today.Weekday()))
	first := weekStart.AddDate(0, 0, -7*(dashboardWeeks-1))
	for i := 0; i < dashboardWeeks; i++ {
		out.WeeklyClients = append(out.WeeklyClients, model.PeriodCount{Period: first.AddDate(0, 0, 7*i).Format(weekLabel)})
	}
	for _, c := range sc.clients {
		created := c.CreatedAt.In(sc.loc)
		if c.CreatedAt.IsZero() || created.Before(first) || created.After(now) {
			continue
		}
		for i := dashboardWeeks - 1; i >= 0; i-- {
			if !created.Before(first.AddDate(0, 0, 7*i)) {
				out.WeeklyClients[i].Clients++
				break
			}
		}
	}

	n := recentClients
	if len(sc.clients) < n {
		n = len(sc.clients)
	}
	out.RecentClients = sc.clients[:n]
	return out, nil
}
