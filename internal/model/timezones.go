package model

// Timezone is an entry of the timezone picker.
type Timezone struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	CountryCode string `json:"countryCode"`
}

// Timezones offered to users. Any valid IANA zone is accepted on save.
var Timezones = []Timezone{
	{Label: "Madrid", Value: "Europe/Madrid", CountryCode: "ES"},
	{Label: "Belgium", Value: "Europe/Brussels", CountryCode: "BE"},
	{Label: "Istanbul", Value: "Europe/Istanbul", CountryCode: "TR"},
	{Label: "London", Value: "Europe/London", CountryCode: "GB"},
	{Label: "Washington, DC", Value: "America/New_York", CountryCode: "US"},
	{Label: "Cupertino", Value: "America/Los_Angeles", CountryCode: "US"},
	{Label: "Bogota", Value: "America/Bogota", CountryCode: "CO"},
	{Label: "Beijing", Value: "Asia/Shanghai", CountryCode: "CN"},
	{Label: "Colombo", Value: "Asia/Colombo", CountryCode: "LK"},
	{Label: "Riyadh", Value: "Asia/Riyadh", CountryCode: "SA"},
	{Label: "Cape Verde", Value: "Atlantic/Cape_Verde", CountryCode: "CV"},
	{Label: "Mexico City", Value: "America/Mexico_City", CountryCode: "MX"},
	{Label: "Guatemala City", Value: "America/Guatemala", CountryCode: "GT"},
	{Label: "Caracas", Value: "America/Caracas", CountryCode: "VE"},
	{Label: "Brasilia", Value: "America/Sao_Paulo", CountryCode: "BR"},
	{Label: "Sao Paulo", Value: "America/Sao_Paulo", CountryCode: "BR"},
	{Label: "Santiago de Chile", Value: "America/Santiago", CountryCode: "CL"},
	{Label: "Canary Islands", Value: "Atlantic/Canary", CountryCode: "ES"},
	{Label: "Prague", Value: "Europe/Prague", CountryCode: "CZ"},
	{Label: "Moscow", Value: "Europe/Moscow", CountryCode: "RU"},
	{Label: "Ottawa", Value: "America/Toronto", CountryCode: "CA"},
	{Label: "Alaska", Value: "America/Anchorage", CountryCode: "US"},
	{Label: "Nuuk", Value: "America/Nuuk", CountryCode: "GL"},
	{Label: "New Delhi", Value: "Asia/Kolkata", CountryCode: "IN"},
	{Label: "Java", Value: "Asia/Jakarta", CountryCode: "ID"},
	{Label: "Sydney", Value: "Australia/Sydney", CountryCode: "AU"},
	{Label: "Western Australia", Value: "Australia/Perth", CountryCode: "AU"},
	{Label: "Auckland", Value: "Pacific/Auckland", CountryCode: "NZ"},
	{Label: "Caribbean", Value: "America/Port_of_Spain", CountryCode: "TT"},
	{Label: "French Polynesia", Value: "Pacific/Tahiti", CountryCode: "PF"},
	{Label: "Tokyo", Value: "Asia/Tokyo", CountryCode: "JP"},
	{Label: "Hong Kong", Value: "Asia/Hong_Kong", CountryCode: "HK"},
	{Label: "Singapore", Value: "Asia/Singapore", CountryCode: "SG"},
	{Label: "Mogadishu", Value: "Africa/Mogadishu", CountryCode: "SO"},
	{Label: "Madagascar", Value: "Indian/Antananarivo", CountryCode: "MG"},
}

// TimezoneLabel returns the picker label for zone, or zone itself.
func TimezoneLabel(zone string) string {
	for _, tz := range Timezones {
		if tz.Value == zone {
			return tz.Label
		}
	}
	return zone
}
