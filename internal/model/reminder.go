package model

import "time"

// ReminderLog records that an appointment reminder went out, so a client is
// reminded once per appointment.
type ReminderLog struct {
	Key                 string    `bson:"_id" json:"key"`
	ClientID            string    `bson:"clientId" json:"clientId"`
	UserID              string    `bson:"userId" json:"userId"`
	AppointmentDateTime string    `bson:"appointmentDateTime" json:"appointmentDateTime"`
	SentAt              time.Time `bson:"sentAt" json:"sentAt"`
}

// ReminderKey identifies one appointment of one client.
func ReminderKey(clientID, appointment string) string {
	return clientID + "|" + appointment
}
